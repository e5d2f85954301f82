// Package ui implements the terminal interface: one bubbletea model
// with a screen discriminator, rendering the screen the navigation
// controller says is active. Screens share a status line for the
// outcome of the last action and a help line listing the live keys.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JDODER260/pickupform/internal/nav"
	"github.com/JDODER260/pickupform/internal/session"
	"github.com/JDODER260/pickupform/internal/settings"
)

// Model is the root bubbletea model.
type Model struct {
	sess   *session.Session
	nav    *nav.Controller
	styles Styles

	width  int
	height int

	// gen tags in-flight async work; results from older generations
	// are dropped on arrival.
	gen  int
	busy bool

	status    string
	statusErr bool

	cursor  int
	checked map[string]bool

	form formState
	mgmt mgmtState
}

// New builds the root model over a loaded session. When a route is
// already selected from the last run, the app opens on the mode's home
// screen instead of route selection.
func New(sess *session.Session) Model {
	st := sess.Settings()
	n := nav.New(st.AppMode)
	if st.SelectedRoute != "" {
		n.GoHome()
	}
	return Model{
		sess:    sess,
		nav:     n,
		styles:  NewStyles(ThemeByName(st.Theme)),
		checked: map[string]bool{},
		form:    newFormState(),
		mgmt:    newMgmtState(),
	}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case syncDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Sync failed: %v", msg.err))
		} else {
			m.setStatus("Company database synced")
		}
		return m, nil

	case downloadDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Download failed: %v", msg.err))
		} else {
			_, total := m.sess.DeliveryPosition()
			m.setStatus(fmt.Sprintf("Downloaded deliveries for %d companies", total))
		}
		return m, nil

	case uploadDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Upload failed: %v", msg.err))
		} else {
			m.checked = map[string]bool{}
			m.setStatus(fmt.Sprintf("Uploaded %d purchase orders", msg.count))
		}
		return m, nil

	case receiptDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Receipt failed: %v", msg.err))
		} else {
			m.setStatus("Receipt saved: " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.nav.Current() {
	case nav.ScreenRouteSelection:
		return m.updateRouteSelection(msg)
	case nav.ScreenPickupHome:
		return m.updatePickupHome(msg)
	case nav.ScreenDeliveryHome:
		return m.updateDeliveryHome(msg)
	case nav.ScreenCompanySelection:
		return m.updateCompanySelection(msg)
	case nav.ScreenAddPO:
		return m.updateAddPO(msg)
	case nav.ScreenAddCompany:
		return m.updateAddCompany(msg)
	case nav.ScreenCompanyManagement:
		return m.updateManagement(msg)
	case nav.ScreenSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	var body string
	switch m.nav.Current() {
	case nav.ScreenRouteSelection:
		body = m.viewRouteSelection()
	case nav.ScreenPickupHome:
		body = m.viewPickupHome()
	case nav.ScreenDeliveryHome:
		body = m.viewDeliveryHome()
	case nav.ScreenCompanySelection:
		body = m.viewCompanySelection()
	case nav.ScreenAddPO:
		body = m.viewAddPO()
	case nav.ScreenAddCompany:
		body = m.viewAddCompany()
	case nav.ScreenCompanyManagement:
		body = m.viewManagement()
	case nav.ScreenSettings:
		body = m.viewSettings()
	}
	return body + "\n" + m.viewStatus()
}

func (m Model) viewStatus() string {
	if m.busy {
		return m.styles.Subtitle.Render("Working...")
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.Error.Render(m.status)
	}
	return m.styles.Success.Render(m.status)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// startAsync bumps the generation so any still-running operation's
// result will be ignored, and marks the model busy.
func (m *Model) startAsync() int {
	m.gen++
	m.busy = true
	return m.gen
}

// goTo moves screens, resetting the cursor and dropping any pending
// async result so it cannot land on the wrong screen.
func (m *Model) goTo(target nav.Screen) {
	hasBlades := m.sess.CompanyHasBlades(m.sess.Settings().SelectedCompany)
	reached := m.nav.Go(target, hasBlades)
	if target == nav.ScreenAddPO && reached == nav.ScreenCompanyManagement {
		m.setError("Add blades for this company before entering POs")
		m.mgmt = newMgmtState()
	}
	m.cursor = 0
	m.gen++
	m.busy = false
}

func (m *Model) goBack() {
	m.nav.Back()
	m.cursor = 0
	m.gen++
	m.busy = false
	m.status = ""
}

// switchMode persists the new mode and lands on its home screen.
func (m *Model) switchMode() {
	st := m.sess.Settings()
	next := settings.ModePickup
	if st.AppMode == settings.ModePickup {
		next = settings.ModeDelivery
	}
	m.sess.SwitchMode(next)
	m.nav.SetMode(next)
	m.nav.GoHome()
	m.cursor = 0
	m.gen++
	m.busy = false
	m.setStatus("Switched to " + string(next) + " mode")
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

func moveCursor(cursor int, key string, length int) int {
	switch key {
	case "up", "k":
		cursor--
	case "down", "j":
		cursor++
	}
	return clampCursor(cursor, length)
}
