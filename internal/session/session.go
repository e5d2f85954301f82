// Package session owns the app's runtime state: the loaded settings,
// company database, purchase order list, and delivery cache, plus the
// server client. All mutation goes through Session methods, which
// persist the affected store immediately, so the UI layer never
// touches a file or a JSON codec directly.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JDODER260/pickupform/internal/api"
	"github.com/JDODER260/pickupform/internal/companydb"
	"github.com/JDODER260/pickupform/internal/config"
	"github.com/JDODER260/pickupform/internal/delivery"
	"github.com/JDODER260/pickupform/internal/porecord"
	"github.com/JDODER260/pickupform/internal/receipt"
	"github.com/JDODER260/pickupform/internal/settings"
)

// Session is the single mutable state object for a running app. Safe
// for use from the UI goroutine and the startup sync goroutine.
type Session struct {
	mu sync.Mutex

	cfg    config.Config
	log    *zap.Logger
	client api.Fetcher

	settings settings.Settings
	db       companydb.Database
	entries  []porecord.Entry
	dataset  delivery.Dataset
	cursor   *delivery.Cursor
}

// New loads every store from disk and returns a ready session. Load
// failures degrade to defaults; New itself only fails when the driver
// id cannot be persisted for the first time.
func New(cfg config.Config, log *zap.Logger, client api.Fetcher) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		log:    log,
		client: client,
	}
	s.settings = settings.Load(cfg.SettingsPath())
	if s.settings.EnsureDriverID() {
		if err := settings.Save(cfg.SettingsPath(), s.settings); err != nil {
			return nil, fmt.Errorf("persist driver id: %w", err)
		}
		log.Info("assigned driver id", zap.String("driver_id", s.settings.DriverID))
	}
	s.db = companydb.Load(cfg.CompanyDBPath())
	s.entries = porecord.Load(cfg.PORecordPath())
	s.dataset = delivery.Load(cfg.DeliveryDataPath())
	s.cursor = delivery.NewCursor(s.dataset)
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Session) saveSettingsLocked() {
	if err := settings.Save(s.cfg.SettingsPath(), s.settings); err != nil {
		s.log.Error("save settings", zap.Error(err))
	}
}

func (s *Session) saveDBLocked() {
	if err := companydb.Save(s.cfg.CompanyDBPath(), s.db); err != nil {
		s.log.Error("save company database", zap.Error(err))
	}
}

func (s *Session) saveEntriesLocked() error {
	return porecord.Save(s.cfg.PORecordPath(), s.entries)
}

// SelectRoute records the driver's active route.
func (s *Session) SelectRoute(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.SelectedRoute = route
	s.settings.SelectedCompany = ""
	s.saveSettingsLocked()
}

// SelectCompany records the driver's active company.
func (s *Session) SelectCompany(company string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.SelectedCompany = company
	s.saveSettingsLocked()
}

// SwitchMode flips between pickup and delivery and persists the
// choice.
func (s *Session) SwitchMode(mode settings.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.AppMode = mode
	s.saveSettingsLocked()
}

// UpdateEndpoints replaces the three server URLs.
func (s *Session) UpdateEndpoints(uploadURL, companyDBURL, deliveryURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.UploadURL = strings.TrimSpace(uploadURL)
	s.settings.CompanyDBURL = strings.TrimSpace(companyDBURL)
	s.settings.DeliveryURL = strings.TrimSpace(deliveryURL)
	s.saveSettingsLocked()
}

// SetTheme records the display theme.
func (s *Session) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Theme = theme
	s.saveSettingsLocked()
}

// Database returns a deep copy of the company database.
func (s *Session) Database() companydb.Database {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Clone()
}

// Routes returns the selectable route names.
func (s *Session) Routes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.RouteNames()
}

// Companies returns the companies on the selected route.
func (s *Session) Companies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.CompanyNames(s.settings.SelectedRoute)
}

// Blades returns the selected company's frequent blades.
func (s *Session) Blades() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Blades(s.settings.SelectedRoute, s.settings.SelectedCompany)
}

// CompanyHasBlades reports whether the named company on the selected
// route has any blades on file.
func (s *Session) CompanyHasBlades(company string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.HasBlades(s.settings.SelectedRoute, company)
}

// AddRoute adds a route and persists the database.
func (s *Session) AddRoute(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.AddRoute(name); err != nil {
		return err
	}
	s.saveDBLocked()
	return nil
}

// RenameRoute renames a route, carrying the selection along when it
// pointed at the old name.
func (s *Session) RenameRoute(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.RenameRoute(oldName, newName); err != nil {
		return err
	}
	if s.settings.SelectedRoute == oldName {
		s.settings.SelectedRoute = newName
		s.saveSettingsLocked()
	}
	s.saveDBLocked()
	return nil
}

// DeleteRoute removes a route. A selection pointing into the deleted
// route is cleared so no screen renders against a gone route.
func (s *Session) DeleteRoute(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.DeleteRoute(name); err != nil {
		return err
	}
	if s.settings.SelectedRoute == name {
		s.settings.SelectedRoute = ""
		s.settings.SelectedCompany = ""
		s.saveSettingsLocked()
	}
	s.saveDBLocked()
	return nil
}

// AddCompany adds a company under the selected route.
func (s *Session) AddCompany(route, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.AddCompany(route, name); err != nil {
		return err
	}
	s.saveDBLocked()
	return nil
}

// RenameCompany renames a company, carrying the selection along.
func (s *Session) RenameCompany(route, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.RenameCompany(route, oldName, newName); err != nil {
		return err
	}
	if s.settings.SelectedRoute == route && s.settings.SelectedCompany == oldName {
		s.settings.SelectedCompany = newName
		s.saveSettingsLocked()
	}
	s.saveDBLocked()
	return nil
}

// DeleteCompany removes a company, clearing a selection pointing at
// it.
func (s *Session) DeleteCompany(route, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.DeleteCompany(route, name); err != nil {
		return err
	}
	if s.settings.SelectedRoute == route && s.settings.SelectedCompany == name {
		s.settings.SelectedCompany = ""
		s.saveSettingsLocked()
	}
	s.saveDBLocked()
	return nil
}

// AddOrEditBlade adds or replaces a blade description.
func (s *Session) AddOrEditBlade(route, company, blade, editingOld string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.AddOrEditBlade(route, company, blade, editingOld); err != nil {
		return err
	}
	s.saveDBLocked()
	return nil
}

// RemoveBlade drops a blade description.
func (s *Session) RemoveBlade(route, company, blade string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.RemoveBlade(route, company, blade)
	s.saveDBLocked()
}

// SyncCompanyDB downloads the server's company snapshot and either
// merges it into or wholly replaces the local database. On any error
// the local database is untouched.
func (s *Session) SyncCompanyDB(ctx context.Context, replace bool) error {
	s.mu.Lock()
	endpoint := s.settings.CompanyDBURL
	s.mu.Unlock()

	remote, err := s.client.FetchCompanyDB(ctx, endpoint)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if replace {
		s.db = remote
	} else {
		s.db.Merge(remote)
	}
	s.saveDBLocked()
	return nil
}

// StartStartupSync kicks off the one-shot background merge sync that
// runs when the app starts. Failures are logged, never shown.
func (s *Session) StartStartupSync(ctx context.Context) {
	go func() {
		if err := s.SyncCompanyDB(ctx, false); err != nil {
			s.log.Warn("startup company sync failed", zap.Error(err))
			return
		}
		s.log.Info("startup company sync complete")
	}()
}

// Entries returns a copy of the purchase order list.
func (s *Session) Entries() []porecord.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := make([]porecord.Entry, len(s.entries))
	copy(dup, s.entries)
	return dup
}

// AddEntry creates a purchase order for the selected route and
// company.
func (s *Session) AddEntry(description, quantity string) (porecord.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(description) == "" {
		return porecord.Entry{}, fmt.Errorf("description is required")
	}
	if strings.TrimSpace(quantity) == "" {
		return porecord.Entry{}, fmt.Errorf("quantity is required")
	}
	if s.settings.SelectedCompany == "" {
		return porecord.Entry{}, fmt.Errorf("no company selected")
	}
	e := porecord.New(description, s.settings.SelectedCompany, s.settings.SelectedRoute, quantity, s.settings.DriverID)
	s.entries = append(s.entries, e)
	if err := s.saveEntriesLocked(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return porecord.Entry{}, err
	}
	return e, nil
}

// UpdateEntry replaces a purchase order by id. The same field checks
// as AddEntry apply, so an edit cannot blank out a record.
func (s *Session) UpdateEntry(updated porecord.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(updated.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if strings.TrimSpace(updated.Quantity) == "" {
		return fmt.Errorf("quantity is required")
	}
	if err := porecord.Update(s.entries, updated); err != nil {
		return err
	}
	return s.saveEntriesLocked()
}

// DeleteEntries removes purchase orders by id.
func (s *Session) DeleteEntries(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = porecord.Remove(s.entries, ids)
	return s.saveEntriesLocked()
}

// Upload posts the identified purchase orders to the server and
// returns how many were sent; ids that match no record are skipped.
// On success the originals are marked uploaded and persisted; on any
// failure the in-memory list and the file are left exactly as they
// were.
func (s *Session) Upload(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	endpoint := s.settings.UploadURL
	driverID := s.settings.DriverID
	batch := make([]porecord.Entry, 0, len(ids))
	for _, id := range ids {
		if i := porecord.IndexByID(s.entries, id); i >= 0 {
			batch = append(batch, s.entries[i].Normalize(driverID))
		}
	}
	s.mu.Unlock()

	if len(batch) == 0 {
		return 0, fmt.Errorf("nothing to upload")
	}
	if err := s.client.UploadEntries(ctx, endpoint, batch); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	porecord.MarkUploaded(s.entries, ids)
	return len(batch), s.saveEntriesLocked()
}

// Deliveries returns the cached dataset.
func (s *Session) Deliveries() delivery.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

// DownloadDeliveries replaces the delivery cache with a fresh download
// for the selected route. The browse cursor stays on the current
// company when the new dataset still has it, otherwise it returns to
// the first company.
func (s *Session) DownloadDeliveries(ctx context.Context) error {
	s.mu.Lock()
	endpoint := s.settings.DeliveryURL
	route := s.settings.SelectedRoute
	s.mu.Unlock()

	if route == "" {
		return fmt.Errorf("no route selected")
	}
	ds, err := s.client.FetchDeliveries(ctx, endpoint, route)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.cursor.Reset(ds)
	s.recordDeliveryCompanyLocked()
	if err := delivery.Save(s.cfg.DeliveryDataPath(), ds); err != nil {
		s.log.Error("save delivery cache", zap.Error(err))
	}
	return nil
}

// recordDeliveryCompanyLocked mirrors the company under the delivery
// cursor into the selected company, so the rest of the app follows
// whichever delivery is on screen.
func (s *Session) recordDeliveryCompanyLocked() {
	name := s.cursor.Current()
	if name == "" || name == s.settings.SelectedCompany {
		return
	}
	s.settings.SelectedCompany = name
	s.saveSettingsLocked()
}

// CurrentDelivery returns the company under the cursor and its items.
func (s *Session) CurrentDelivery() (string, []delivery.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.cursor.Current()
	if name == "" {
		return "", nil
	}
	return name, s.dataset.Companies[name]
}

// DeliveryPosition reports the cursor position and total company
// count for the "N of M" display.
func (s *Session) DeliveryPosition() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Position(), s.cursor.Len()
}

// NextDelivery advances the delivery cursor, wrapping at the end, and
// records the company now on screen as the selected company.
func (s *Session) NextDelivery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Next()
	s.recordDeliveryCompanyLocked()
}

// PrevDelivery steps the delivery cursor back, wrapping at the start,
// and records the company now on screen as the selected company.
func (s *Session) PrevDelivery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Prev()
	s.recordDeliveryCompanyLocked()
}

// SelectDelivery jumps the cursor to the named company and records it
// as the selected company.
func (s *Session) SelectDelivery(company string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cursor.Select(company) {
		return false
	}
	s.recordDeliveryCompanyLocked()
	return true
}

// PrintCurrentReceipt writes a PDF receipt for the company under the
// delivery cursor and returns its path.
func (s *Session) PrintCurrentReceipt() (string, error) {
	s.mu.Lock()
	name := s.cursor.Current()
	items := s.dataset.Companies[name]
	route := s.settings.SelectedRoute
	driverID := s.settings.DriverID
	base := s.cfg.PDFDir
	s.mu.Unlock()

	if name == "" {
		return "", fmt.Errorf("no delivery selected")
	}
	path, err := receipt.Generate(base, receipt.Receipt{
		Company:  name,
		Route:    route,
		DriverID: driverID,
		Items:    items,
		Now:      time.Now(),
	})
	if err != nil {
		return "", err
	}
	s.log.Info("receipt written", zap.String("path", path))
	return path, nil
}
