package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JDODER260/pickupform/internal/companydb"
	"github.com/JDODER260/pickupform/internal/config"
	"github.com/JDODER260/pickupform/internal/delivery"
	"github.com/JDODER260/pickupform/internal/nav"
	"github.com/JDODER260/pickupform/internal/porecord"
	"github.com/JDODER260/pickupform/internal/session"
	"github.com/JDODER260/pickupform/internal/settings"
)

type stubFetcher struct{}

func (stubFetcher) FetchCompanyDB(ctx context.Context, endpoint string) (companydb.Database, error) {
	return nil, errors.New("not wired in test")
}
func (stubFetcher) FetchDeliveries(ctx context.Context, endpoint, route string) (delivery.Dataset, error) {
	return delivery.Dataset{}, errors.New("not wired in test")
}
func (stubFetcher) UploadEntries(ctx context.Context, endpoint string, entries []porecord.Entry) error {
	return errors.New("not wired in test")
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Config{DataDir: t.TempDir(), PDFDir: t.TempDir()}
	sess, err := session.New(cfg, zap.NewNop(), stubFetcher{})
	require.NoError(t, err)
	return New(sess)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestStartsOnRouteSelection(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, nav.ScreenRouteSelection, m.nav.Current())
	assert.Contains(t, m.View(), "Select Route")
}

func TestResumesOnHomeWithSavedRoute(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir(), PDFDir: t.TempDir()}
	sess, err := session.New(cfg, zap.NewNop(), stubFetcher{})
	require.NoError(t, err)
	sess.SelectRoute("Mercer")

	m := New(sess)
	assert.Equal(t, nav.ScreenDeliveryHome, m.nav.Current())
}

func TestSelectRouteLandsOnHome(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "enter")
	// Default mode is delivery; the first default route is offered
	// while the database is still empty.
	assert.Equal(t, nav.ScreenDeliveryHome, m.nav.Current())
	assert.Equal(t, "Mercer", m.sess.Settings().SelectedRoute)
}

func TestModeSwitchPersists(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "tab")
	assert.Equal(t, settings.ModePickup, m.sess.Settings().AppMode)
	m = press(m, "enter")
	assert.Equal(t, nav.ScreenPickupHome, m.nav.Current())
}

func TestAddPOGatedWithoutBlades(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.sess.AddRoute("Mercer"))
	require.NoError(t, m.sess.AddCompany("Mercer", "Acme Saw"))
	m.sess.SelectRoute("Mercer")
	m.nav.SetMode(settings.ModePickup)
	m.nav.GoHome()

	// Pick the company from the selection screen; with no blades on
	// file the form is replaced by company management.
	m = press(m, "a", "enter")
	assert.Equal(t, nav.ScreenCompanyManagement, m.nav.Current())
}

func TestAddPOOpensWithBlades(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.sess.AddRoute("Mercer"))
	require.NoError(t, m.sess.AddCompany("Mercer", "Acme Saw"))
	require.NoError(t, m.sess.AddOrEditBlade("Mercer", "Acme Saw", "10in carbide", ""))
	m.sess.SelectRoute("Mercer")
	m.nav.SetMode(settings.ModePickup)
	m.nav.GoHome()

	m = press(m, "a", "enter")
	assert.Equal(t, nav.ScreenAddPO, m.nav.Current())
	assert.Contains(t, m.View(), "10in carbide")
}

func TestEditRejectsBlankedFields(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.sess.AddRoute("Mercer"))
	require.NoError(t, m.sess.AddCompany("Mercer", "Acme Saw"))
	m.sess.SelectRoute("Mercer")
	m.sess.SelectCompany("Acme Saw")
	e, err := m.sess.AddEntry("10in carbide", "4")
	require.NoError(t, err)

	// Open the record for editing, clear both fields, and save.
	m.form = addPOForm(e.ID)
	m.form.onBlades = false
	next, _ := m.saveAddPO()
	m = next.(Model)

	assert.True(t, m.statusErr)
	assert.Equal(t, "10in carbide", m.sess.Entries()[0].Description)
	assert.Equal(t, "4", m.sess.Entries()[0].Quantity)
}

func TestStaleAsyncResultDropped(t *testing.T) {
	m := newTestModel(t)
	m.sess.SelectRoute("Mercer")
	m.nav.GoHome()

	// Start a download, then navigate away before it finishes.
	m = press(m, "d")
	assert.True(t, m.busy)
	started := m.gen
	m = press(m, "esc")

	next, _ := m.Update(downloadDoneMsg{gen: started, err: nil})
	m = next.(Model)
	assert.Empty(t, m.status, "stale result must not set a status")
	assert.False(t, m.busy)
}

func TestFreshAsyncResultApplies(t *testing.T) {
	m := newTestModel(t)
	m.sess.SelectRoute("Mercer")
	m.nav.GoHome()

	m = press(m, "d")
	next, _ := m.Update(downloadDoneMsg{gen: m.gen, err: errors.New("timeout")})
	m = next.(Model)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "Download failed")
}

type deliveryFetcher struct {
	stubFetcher
	ds delivery.Dataset
}

func (f deliveryFetcher) FetchDeliveries(ctx context.Context, endpoint, route string) (delivery.Dataset, error) {
	return f.ds, nil
}

func TestCompanyChoicesIncludeDeliveryOnly(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir(), PDFDir: t.TempDir()}
	fetcher := deliveryFetcher{ds: delivery.Dataset{
		Route:     "Mercer",
		Companies: map[string][]delivery.Item{"Delivery Only Co": {}},
	}}
	sess, err := session.New(cfg, zap.NewNop(), fetcher)
	require.NoError(t, err)
	m := New(sess)

	require.NoError(t, m.sess.AddRoute("Mercer"))
	require.NoError(t, m.sess.AddCompany("Mercer", "Acme Saw"))
	m.sess.SelectRoute("Mercer")
	require.NoError(t, m.sess.DownloadDeliveries(context.Background()))

	choices := m.companyChoices()
	require.Len(t, choices, 2)
	assert.Equal(t, "Acme Saw", choices[0].name)
	assert.False(t, choices[0].deliveryOnly)
	assert.Equal(t, "Delivery Only Co", choices[1].name)
	assert.True(t, choices[1].deliveryOnly)
}

func TestManagementAddRoutePrompt(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "m")
	require.Equal(t, nav.ScreenCompanyManagement, m.nav.Current())

	m = press(m, "a")
	assert.True(t, m.mgmt.prompting)
	m = press(m, "N", "e", "w", "t", "o", "n")
	m = press(m, "enter")
	assert.False(t, m.mgmt.prompting)
	assert.Contains(t, m.sess.Database(), "Newton")
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "s")
	require.Equal(t, nav.ScreenSettings, m.nav.Current())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = next.(Model)
	assert.Equal(t, "light", m.sess.Settings().Theme)
	assert.False(t, m.styles.Theme.IsDark)
}
