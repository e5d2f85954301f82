// Package settings persists the driver's runtime state: server URLs,
// selected route and company, driver id, app mode, and theme. The file
// lives at <data_dir>/app_settings.json and is rewritten wholesale after
// every change.
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Mode selects which home screen the client presents.
type Mode string

const (
	ModePickup   Mode = "pickup"
	ModeDelivery Mode = "delivery"
)

// Settings holds the persisted runtime state.
type Settings struct {
	UploadURL       string `json:"upload_url"`
	CompanyDBURL    string `json:"company_db_url"`
	DeliveryURL     string `json:"delivery_url"`
	SelectedRoute   string `json:"selected_route"`
	SelectedCompany string `json:"selected_company"`
	DriverID        string `json:"driver_id"`
	AppMode         Mode   `json:"app_mode"`
	Theme           string `json:"theme"`
}

const (
	defaultUploadURL    = "https://doublersharpening.com/api/upload_po/"
	defaultCompanyDBURL = "https://doublersharpening.com/api/company_db/"
	defaultDeliveryURL  = "https://doublersharpening.com/api/delivery_pos/"
	defaultTheme        = "dark"
)

// Defaults returns the settings used before any file exists.
func Defaults() Settings {
	return Settings{
		UploadURL:    defaultUploadURL,
		CompanyDBURL: defaultCompanyDBURL,
		DeliveryURL:  defaultDeliveryURL,
		AppMode:      ModeDelivery,
		Theme:        defaultTheme,
	}
}

// Load reads settings from path. Any failure - missing file, unreadable
// file, malformed JSON - degrades to defaults; the caller never has to
// handle an error. Missing keys keep their default values because
// decoding happens on top of Defaults().
func Load(path string) Settings {
	s := Defaults()

	bytes, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(bytes, &s); err != nil {
		return Defaults()
	}
	s.normalize()
	return s
}

// Save writes settings to path as pretty-printed JSON, creating parent
// directories as needed. The write is a plain overwrite.
func Save(path string, s Settings) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("settings path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	bytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}

// EnsureDriverID fills in a driver id when none is set and reports
// whether it did. New ids are the first 8 characters of a random UUID.
func (s *Settings) EnsureDriverID() bool {
	if strings.TrimSpace(s.DriverID) != "" {
		return false
	}
	s.DriverID = uuid.NewString()[:8]
	return true
}

func (s *Settings) normalize() {
	if s.AppMode != ModePickup && s.AppMode != ModeDelivery {
		s.AppMode = ModeDelivery
	}
	if strings.TrimSpace(s.Theme) == "" {
		s.Theme = defaultTheme
	}
	if strings.TrimSpace(s.UploadURL) == "" {
		s.UploadURL = defaultUploadURL
	}
	if strings.TrimSpace(s.CompanyDBURL) == "" {
		s.CompanyDBURL = defaultCompanyDBURL
	}
	if strings.TrimSpace(s.DeliveryURL) == "" {
		s.DeliveryURL = defaultDeliveryURL
	}
}
