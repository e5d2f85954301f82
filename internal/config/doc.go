// Package config handles loading and parsing the pickup client's
// installation configuration.
//
// # Overview
//
// The client distinguishes two layers of configuration. This package owns
// the machine-level layer: a small TOML file deciding where application
// data, PDF receipts, and logs live. Everything the driver changes at
// runtime (server URLs, selected route/company, app mode, theme) is part
// of the settings store and persisted as JSON alongside the other data
// files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pickup/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/pickup/config.toml
//   - Data directory: ~/.local/share/pickup
//   - PDF directory: ~/Documents/PickUpForms
//   - Log file: <data_dir>/pickup.log
//   - Log level: info
//
// # TOML Format
//
// Example config.toml:
//
//	data_dir = "~/.local/share/pickup"
//	pdf_dir = "~/Documents/PickUpForms"
//	log_level = "debug"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// Missing config files are NOT an error - defaults are used instead.
// This allows the client to work out-of-the-box without configuration.
package config
