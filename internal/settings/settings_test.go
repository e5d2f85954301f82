package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "app_settings.json"))

	if s.AppMode != ModeDelivery {
		t.Fatalf("AppMode = %q, want %q", s.AppMode, ModeDelivery)
	}
	if s.UploadURL == "" || s.CompanyDBURL == "" || s.DeliveryURL == "" {
		t.Fatalf("default URLs missing: %#v", s)
	}
	if s.SelectedRoute != "" || s.SelectedCompany != "" {
		t.Fatalf("selections should start empty: %#v", s)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "app_settings.json")

	want := Defaults()
	want.SelectedRoute = "Mercer"
	want.SelectedCompany = "Acme Saw"
	want.DriverID = "ab12cd34"
	want.AppMode = ModePickup
	want.Theme = "light"

	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got := Load(path)
	if got != want {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestLoad_MalformedJSONFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := Load(path)
	if s != Defaults() {
		t.Fatalf("Load = %#v, want defaults", s)
	}
}

func TestLoad_UnknownModeNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_settings.json")
	if err := os.WriteFile(path, []byte(`{"app_mode": "warehouse"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := Load(path)
	if s.AppMode != ModeDelivery {
		t.Fatalf("AppMode = %q, want %q", s.AppMode, ModeDelivery)
	}
}

func TestLoad_MissingKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_settings.json")
	if err := os.WriteFile(path, []byte(`{"selected_route": "Punxy"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := Load(path)
	if s.SelectedRoute != "Punxy" {
		t.Fatalf("SelectedRoute = %q, want %q", s.SelectedRoute, "Punxy")
	}
	if s.UploadURL != Defaults().UploadURL {
		t.Fatalf("UploadURL = %q, want default", s.UploadURL)
	}
}

func TestEnsureDriverID(t *testing.T) {
	s := Defaults()
	if !s.EnsureDriverID() {
		t.Fatal("EnsureDriverID = false on empty id, want true")
	}
	if len(s.DriverID) != 8 {
		t.Fatalf("DriverID = %q, want 8 characters", s.DriverID)
	}

	prev := s.DriverID
	if s.EnsureDriverID() {
		t.Fatal("EnsureDriverID = true on populated id, want false")
	}
	if s.DriverID != prev {
		t.Fatalf("DriverID changed from %q to %q", prev, s.DriverID)
	}
}
