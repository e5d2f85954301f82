package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JDODER260/pickupform/internal/session"
)

// Run starts the bubbletea program and blocks until it exits or the
// context is cancelled.
func Run(ctx context.Context, sess *session.Session) error {
	program := tea.NewProgram(New(sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
