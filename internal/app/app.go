// Package app wires configuration, logging, the session, and the UI
// together and runs the program until the context is cancelled.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JDODER260/pickupform/internal/api"
	"github.com/JDODER260/pickupform/internal/config"
	"github.com/JDODER260/pickupform/internal/logging"
	"github.com/JDODER260/pickupform/internal/session"
	"github.com/JDODER260/pickupform/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string // empty uses the default ~/.config/pickup/config.toml
	SkipSync   bool   // skip the startup company database sync
}

// Run boots the TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	sess, err := session.New(cfg, logger, api.NewClient())
	if err != nil {
		return fmt.Errorf("init session: %w", err)
	}

	// Merge in the office's latest company data without holding up the
	// first screen.
	if !opts.SkipSync {
		sess.StartStartupSync(ctx)
	}

	logger.Info("starting ui",
		zap.String("data_dir", cfg.DataDir),
		zap.String("mode", string(sess.Settings().AppMode)))
	return ui.Run(ctx, sess)
}
