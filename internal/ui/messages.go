package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Async operations finish as messages tagged with the generation that
// started them. The model bumps its generation whenever the user
// navigates away or starts a newer operation, so a result arriving for
// an older generation is dropped instead of clobbering the screen.

type syncDoneMsg struct {
	gen int
	err error
}

type downloadDoneMsg struct {
	gen int
	err error
}

type uploadDoneMsg struct {
	gen   int
	count int
	err   error
}

type receiptDoneMsg struct {
	gen  int
	path string
	err  error
}

func (m Model) syncCmd(gen int, replace bool) tea.Cmd {
	return func() tea.Msg {
		err := m.sess.SyncCompanyDB(context.Background(), replace)
		return syncDoneMsg{gen: gen, err: err}
	}
}

func (m Model) downloadCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		err := m.sess.DownloadDeliveries(context.Background())
		return downloadDoneMsg{gen: gen, err: err}
	}
}

func (m Model) uploadCmd(gen int, ids []string) tea.Cmd {
	return func() tea.Msg {
		count, err := m.sess.Upload(context.Background(), ids)
		return uploadDoneMsg{gen: gen, count: count, err: err}
	}
}

func (m Model) receiptCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		path, err := m.sess.PrintCurrentReceipt()
		return receiptDoneMsg{gen: gen, path: path, err: err}
	}
}
