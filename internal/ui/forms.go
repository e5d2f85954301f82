package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JDODER260/pickupform/internal/porecord"
	"github.com/JDODER260/pickupform/internal/settings"
)

// formState backs the three input screens. Only the fields the active
// screen uses are meaningful.
type formState struct {
	editingID string

	description textinput.Model
	quantity    textinput.Model
	company     textinput.Model

	uploadURL    textinput.Model
	companyDBURL textinput.Model
	deliveryURL  textinput.Model

	focus       int
	bladeCursor int
	onBlades    bool
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func newFormState() formState {
	return formState{
		description:  newInput("blade description", 80),
		quantity:     newInput("quantity", 8),
		company:      newInput("company name", 60),
		uploadURL:    newInput("upload URL", 200),
		companyDBURL: newInput("company database URL", 200),
		deliveryURL:  newInput("delivery URL", 200),
	}
}

// addPOForm prepares the PO entry form. A non-empty editingID means
// the form replaces that record instead of appending.
func addPOForm(editingID string) formState {
	f := newFormState()
	f.editingID = editingID
	f.onBlades = true
	return f
}

func addCompanyForm() formState {
	f := newFormState()
	f.company.Focus()
	return f
}

func settingsForm(s settings.Settings) formState {
	f := newFormState()
	f.uploadURL.SetValue(s.UploadURL)
	f.companyDBURL.SetValue(s.CompanyDBURL)
	f.deliveryURL.SetValue(s.DeliveryURL)
	f.uploadURL.Focus()
	return f
}

func (m Model) updateAddPO(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	blades := m.sess.Blades()

	switch key := msg.String(); key {
	case "esc":
		m.goBack()
		return m, nil
	case "tab", "shift+tab":
		m.form = m.form.cycleAddPOFocus(key == "shift+tab")
		return m, nil
	case "enter":
		if m.form.onBlades {
			if len(blades) > 0 {
				m.form.description.SetValue(blades[m.form.bladeCursor])
			}
			m.form = m.form.cycleAddPOFocus(false)
			return m, nil
		}
		return m.saveAddPO()
	}

	if m.form.onBlades {
		m.form.bladeCursor = moveCursor(m.form.bladeCursor, msg.String(), len(blades))
		return m, nil
	}

	var cmd tea.Cmd
	if m.form.focus == 0 {
		m.form.description, cmd = m.form.description.Update(msg)
	} else {
		m.form.quantity, cmd = m.form.quantity.Update(msg)
	}
	return m, cmd
}

// cycleAddPOFocus walks blade picker -> description -> quantity.
func (f formState) cycleAddPOFocus(backwards bool) formState {
	f.description.Blur()
	f.quantity.Blur()
	switch {
	case f.onBlades:
		f.onBlades = false
		if backwards {
			f.focus = 1
			f.quantity.Focus()
		} else {
			f.focus = 0
			f.description.Focus()
		}
	case f.focus == 0:
		if backwards {
			f.onBlades = true
		} else {
			f.focus = 1
			f.quantity.Focus()
		}
	default:
		if backwards {
			f.focus = 0
			f.description.Focus()
		} else {
			f.onBlades = true
		}
	}
	return f
}

func (m Model) saveAddPO() (tea.Model, tea.Cmd) {
	description := strings.TrimSpace(m.form.description.Value())
	quantity := strings.TrimSpace(m.form.quantity.Value())
	if description == "" {
		m.setError("Description is required")
		return m, nil
	}
	if quantity == "" {
		m.setError("Quantity is required")
		return m, nil
	}

	if m.form.editingID != "" {
		entries := m.sess.Entries()
		i := porecord.IndexByID(entries, m.form.editingID)
		if i < 0 {
			m.setError("Record no longer exists")
			m.goBack()
			return m, nil
		}
		updated := entries[i]
		updated.Description = description
		updated.Quantity = quantity
		if err := m.sess.UpdateEntry(updated); err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", err))
			return m, nil
		}
		m.setStatus("Purchase order updated")
	} else {
		if _, err := m.sess.AddEntry(description, quantity); err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", err))
			return m, nil
		}
		m.setStatus("Purchase order added")
	}
	m.nav.GoHome()
	m.cursor = 0
	return m, nil
}

func (m Model) viewAddPO() string {
	var b strings.Builder
	st := m.sess.Settings()
	title := "New Purchase Order"
	if m.form.editingID != "" {
		title = "Edit Purchase Order"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(st.SelectedRoute + " / " + st.SelectedCompany))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Frequent blades:"))
	b.WriteString("\n")
	for i, blade := range m.sess.Blades() {
		selected := m.form.onBlades && i == m.form.bladeCursor
		b.WriteString(m.renderListLine(blade, selected))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Description: ") + m.form.description.View() + "\n")
	b.WriteString(m.styles.Label.Render("Quantity:    ") + m.form.quantity.View() + "\n")
	b.WriteString(m.styles.Help.Render("enter pick/save | tab next field | esc cancel"))
	return b.String()
}

func (m Model) updateAddCompany(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.goBack()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.form.company.Value())
		route := m.sess.Settings().SelectedRoute
		if err := m.sess.AddCompany(route, name); err != nil {
			m.setError(fmt.Sprintf("Add failed: %v", err))
			return m, nil
		}
		m.sess.SelectCompany(name)
		m.setStatus("Added " + name)
		m.goBack()
		return m, nil
	}
	var cmd tea.Cmd
	m.form.company, cmd = m.form.company.Update(msg)
	return m, cmd
}

func (m Model) viewAddCompany() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Add Company"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Route: " + m.sess.Settings().SelectedRoute))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Name: ") + m.form.company.View() + "\n")
	b.WriteString(m.styles.Help.Render("enter save | esc cancel"))
	return b.String()
}
