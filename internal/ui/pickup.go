package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JDODER260/pickupform/internal/nav"
	"github.com/JDODER260/pickupform/internal/porecord"
)

// routeEntries returns the PO list filtered to the selected route.
func (m Model) routeEntries() []porecord.Entry {
	route := m.sess.Settings().SelectedRoute
	all := m.sess.Entries()
	out := make([]porecord.Entry, 0, len(all))
	for _, e := range all {
		if e.Route == route {
			out = append(out, e)
		}
	}
	return out
}

func (m Model) updatePickupHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.routeEntries()
	switch key := msg.String(); key {
	case "esc", "b":
		m.goBack()
	case "tab":
		m.switchMode()
	case "up", "down", "j", "k":
		m.cursor = moveCursor(m.cursor, key, len(entries))
	case " ":
		if len(entries) > 0 {
			id := entries[m.cursor].ID
			m.checked[id] = !m.checked[id]
		}
	case "a":
		m.goTo(nav.ScreenCompanySelection)
	case "e":
		if len(entries) > 0 {
			e := entries[m.cursor]
			m.sess.SelectCompany(e.Company)
			m.form = addPOForm(e.ID)
			m.form.description.SetValue(e.Description)
			m.form.quantity.SetValue(e.Quantity)
			m.goTo(nav.ScreenAddPO)
		}
	case "x":
		ids := m.checkedIDs(entries)
		if len(ids) == 0 && len(entries) > 0 {
			ids = []string{entries[m.cursor].ID}
		}
		if len(ids) > 0 {
			if err := m.sess.DeleteEntries(ids); err != nil {
				m.setError(fmt.Sprintf("Delete failed: %v", err))
			} else {
				m.checked = map[string]bool{}
				m.setStatus(fmt.Sprintf("Deleted %d purchase orders", len(ids)))
			}
			m.cursor = clampCursor(m.cursor, len(m.routeEntries()))
		}
	case "u":
		ids := m.checkedIDs(entries)
		if len(ids) == 0 {
			for _, e := range entries {
				if !bool(e.Uploaded) {
					ids = append(ids, e.ID)
				}
			}
		}
		if len(ids) == 0 {
			m.setError("Nothing to upload")
			return m, nil
		}
		gen := m.startAsync()
		return m, m.uploadCmd(gen, ids)
	}
	return m, nil
}

func (m Model) checkedIDs(entries []porecord.Entry) []string {
	var ids []string
	for _, e := range entries {
		if m.checked[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (m Model) viewPickupHome() string {
	var b strings.Builder
	st := m.sess.Settings()
	b.WriteString(m.styles.Title.Render("Pickup: " + st.SelectedRoute))
	b.WriteString("\n\n")

	entries := m.routeEntries()
	if len(entries) == 0 {
		b.WriteString(m.styles.Label.Render("No purchase orders yet. Press a to add one.") + "\n")
	}
	for i, e := range entries {
		mark := "[ ]"
		if m.checked[e.ID] {
			mark = "[x]"
		}
		up := " "
		if bool(e.Uploaded) {
			up = "^"
		}
		line := fmt.Sprintf("%s %s %-20s x%-4s %s %s", mark, up, e.Company, e.Quantity, e.Description, e.PickupDate)
		b.WriteString(m.renderListLine(line, i == m.cursor))
	}
	b.WriteString(m.styles.Help.Render("a add | e edit | space mark | x delete | u upload | tab mode | esc back"))
	return b.String()
}
