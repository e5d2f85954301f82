package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the installation-level settings for the pickup client.
// Runtime user state (route, company, server URLs) lives in the JSON
// settings store; this file only decides where that state and its
// outputs go.
type Config struct {
	DataDir  string
	PDFDir   string
	LogLevel string
}

const (
	defaultConfigPath = "~/.config/pickup/config.toml"
	defaultDataDir    = "~/.local/share/pickup"
	defaultPDFDir     = "~/Documents/PickUpForms"
	defaultLogLevel   = "info"
)

// Load locates and parses the client config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:  mustExpand(defaultDataDir),
		PDFDir:   mustExpand(defaultPDFDir),
		LogLevel: defaultLogLevel,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir  string `toml:"data_dir"`
		PDFDir   string `toml:"pdf_dir"`
		LogLevel string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if dir := strings.TrimSpace(raw.PDFDir); dir != "" {
		cfg.PDFDir = mustExpand(dir)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// SettingsPath returns the path of the persisted settings JSON file.
func (c Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "app_settings.json")
}

// PORecordPath returns the path of the purchase-order records file.
func (c Config) PORecordPath() string {
	return filepath.Join(c.DataDir, "po_data.json")
}

// CompanyDBPath returns the path of the company database file.
func (c Config) CompanyDBPath() string {
	return filepath.Join(c.DataDir, "company_database.json")
}

// DeliveryDataPath returns the path of the cached delivery dataset.
func (c Config) DeliveryDataPath() string {
	return filepath.Join(c.DataDir, "delivery_data.json")
}

// LogPath returns the path of the client log file. The TUI owns the
// terminal, so all logging goes here.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "pickup.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
