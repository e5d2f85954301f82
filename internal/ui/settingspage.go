package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc":
		m.goBack()
		return m, nil
	case "tab", "shift+tab":
		delta := 1
		if key == "shift+tab" {
			delta = 2 // backwards, modulo 3
		}
		m.form.focus = (m.form.focus + delta) % 3
		m.form = m.form.focusSettingsInput()
		return m, nil
	case "ctrl+t":
		theme := "dark"
		if m.sess.Settings().Theme == "dark" {
			theme = "light"
		}
		m.sess.SetTheme(theme)
		m.styles = NewStyles(ThemeByName(theme))
		m.setStatus("Theme: " + theme)
		return m, nil
	case "enter":
		m.sess.UpdateEndpoints(
			m.form.uploadURL.Value(),
			m.form.companyDBURL.Value(),
			m.form.deliveryURL.Value(),
		)
		m.setStatus("Settings saved")
		m.goBack()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case 0:
		m.form.uploadURL, cmd = m.form.uploadURL.Update(msg)
	case 1:
		m.form.companyDBURL, cmd = m.form.companyDBURL.Update(msg)
	default:
		m.form.deliveryURL, cmd = m.form.deliveryURL.Update(msg)
	}
	return m, cmd
}

func (f formState) focusSettingsInput() formState {
	inputs := []*textinput.Model{&f.uploadURL, &f.companyDBURL, &f.deliveryURL}
	for i, in := range inputs {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	return f
}

func (m Model) viewSettings() string {
	var b strings.Builder
	st := m.sess.Settings()
	b.WriteString(m.styles.Title.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Upload URL:      ") + m.form.uploadURL.View() + "\n")
	b.WriteString(m.styles.Label.Render("Company DB URL:  ") + m.form.companyDBURL.View() + "\n")
	b.WriteString(m.styles.Label.Render("Delivery URL:    ") + m.form.deliveryURL.View() + "\n\n")
	b.WriteString(m.styles.Label.Render("Driver ID: ") + st.DriverID + "\n")
	b.WriteString(m.styles.Label.Render("Theme:     ") + st.Theme + "\n")
	b.WriteString(m.styles.Help.Render("tab next field | enter save | ctrl+t theme | esc back"))
	return b.String()
}
