package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasSuffix(cfg.DataDir, filepath.Join(".local", "share", "pickup")) {
		t.Fatalf("DataDir = %q, want default under home", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_ReadsExplicitFile(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	content := "data_dir = \"" + filepath.Join(tmp, "data") + "\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(tmp, "data") {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, filepath.Join(tmp, "data"))
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	// PDF dir was not set, so the default survives.
	if cfg.PDFDir == "" {
		t.Fatal("PDFDir is empty, want default")
	}
}

func TestLoad_InvalidTOMLIsAnError(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(cfgFile); err == nil {
		t.Fatal("Load returned nil error for invalid TOML")
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Config{DataDir: "/data"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"settings", cfg.SettingsPath(), "/data/app_settings.json"},
		{"po records", cfg.PORecordPath(), "/data/po_data.json"},
		{"company db", cfg.CompanyDBPath(), "/data/company_database.json"},
		{"delivery data", cfg.DeliveryDataPath(), "/data/delivery_data.json"},
		{"log", cfg.LogPath(), "/data/pickup.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("path = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
