package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Company management is a three-level browser: routes, the companies
// on a route, and a company's blade descriptions. Add/rename/edit
// prompts reuse one inline text input.

type mgmtLevel int

const (
	levelRoutes mgmtLevel = iota
	levelCompanies
	levelBlades
)

type mgmtAction int

const (
	actionNone mgmtAction = iota
	actionAddRoute
	actionRenameRoute
	actionAddCompany
	actionRenameCompany
	actionAddBlade
	actionEditBlade
)

type mgmtState struct {
	level   mgmtLevel
	route   string
	company string
	cursor  int

	prompting bool
	action    mgmtAction
	old       string
	input     textinput.Model
}

func newMgmtState() mgmtState {
	return mgmtState{input: newInput("name", 80)}
}

func (s mgmtState) startPrompt(action mgmtAction, old string) mgmtState {
	s.prompting = true
	s.action = action
	s.old = old
	s.input.SetValue(old)
	s.input.Focus()
	return s
}

func (s mgmtState) endPrompt() mgmtState {
	s.prompting = false
	s.action = actionNone
	s.old = ""
	s.input.SetValue("")
	s.input.Blur()
	return s
}

// mgmtItems lists the rows for the current level. Unlike the route
// selection screen this shows the database as-is, with no default
// route padding, so every row is editable.
func (m Model) mgmtItems() []string {
	db := m.sess.Database()
	switch m.mgmt.level {
	case levelRoutes:
		names := make([]string, 0, len(db))
		for name := range db {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	case levelCompanies:
		names := make([]string, 0, len(db[m.mgmt.route]))
		for name := range db[m.mgmt.route] {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	default:
		return db.Blades(m.mgmt.route, m.mgmt.company)
	}
}

func (m Model) updateManagement(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mgmt.prompting {
		return m.updateManagementPrompt(msg)
	}

	items := m.mgmtItems()
	switch key := msg.String(); key {
	case "esc", "b":
		switch m.mgmt.level {
		case levelBlades:
			m.mgmt.level = levelCompanies
			m.mgmt.company = ""
			m.mgmt.cursor = 0
		case levelCompanies:
			m.mgmt.level = levelRoutes
			m.mgmt.route = ""
			m.mgmt.cursor = 0
		default:
			m.goBack()
		}
	case "up", "down", "j", "k":
		m.mgmt.cursor = moveCursor(m.mgmt.cursor, key, len(items))
	case "enter":
		if len(items) == 0 || m.mgmt.level == levelBlades {
			break
		}
		if m.mgmt.level == levelRoutes {
			m.mgmt.route = items[m.mgmt.cursor]
			m.mgmt.level = levelCompanies
		} else {
			m.mgmt.company = items[m.mgmt.cursor]
			m.mgmt.level = levelBlades
		}
		m.mgmt.cursor = 0
	case "a":
		switch m.mgmt.level {
		case levelRoutes:
			m.mgmt = m.mgmt.startPrompt(actionAddRoute, "")
		case levelCompanies:
			m.mgmt = m.mgmt.startPrompt(actionAddCompany, "")
		default:
			m.mgmt = m.mgmt.startPrompt(actionAddBlade, "")
		}
	case "r", "e":
		if len(items) == 0 {
			break
		}
		old := items[m.mgmt.cursor]
		switch m.mgmt.level {
		case levelRoutes:
			m.mgmt = m.mgmt.startPrompt(actionRenameRoute, old)
		case levelCompanies:
			m.mgmt = m.mgmt.startPrompt(actionRenameCompany, old)
		default:
			m.mgmt = m.mgmt.startPrompt(actionEditBlade, old)
		}
	case "x":
		if len(items) == 0 {
			break
		}
		m.deleteManagementItem(items[m.mgmt.cursor])
		m.mgmt.cursor = clampCursor(m.mgmt.cursor, len(m.mgmtItems()))
	case "s":
		gen := m.startAsync()
		return m, m.syncCmd(gen, false)
	case "S":
		gen := m.startAsync()
		return m, m.syncCmd(gen, true)
	}
	return m, nil
}

func (m *Model) deleteManagementItem(name string) {
	var err error
	switch m.mgmt.level {
	case levelRoutes:
		err = m.sess.DeleteRoute(name)
	case levelCompanies:
		err = m.sess.DeleteCompany(m.mgmt.route, name)
	default:
		m.sess.RemoveBlade(m.mgmt.route, m.mgmt.company, name)
	}
	if err != nil {
		m.setError(fmt.Sprintf("Delete failed: %v", err))
	} else {
		m.setStatus("Deleted " + name)
	}
}

func (m Model) updateManagementPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mgmt = m.mgmt.endPrompt()
		return m, nil
	case "enter":
		m.applyManagementPrompt()
		return m, nil
	}
	var cmd tea.Cmd
	m.mgmt.input, cmd = m.mgmt.input.Update(msg)
	return m, cmd
}

func (m *Model) applyManagementPrompt() {
	value := strings.TrimSpace(m.mgmt.input.Value())
	var err error
	switch m.mgmt.action {
	case actionAddRoute:
		err = m.sess.AddRoute(value)
	case actionRenameRoute:
		err = m.sess.RenameRoute(m.mgmt.old, value)
	case actionAddCompany:
		err = m.sess.AddCompany(m.mgmt.route, value)
	case actionRenameCompany:
		err = m.sess.RenameCompany(m.mgmt.route, m.mgmt.old, value)
	case actionAddBlade:
		err = m.sess.AddOrEditBlade(m.mgmt.route, m.mgmt.company, value, "")
	case actionEditBlade:
		err = m.sess.AddOrEditBlade(m.mgmt.route, m.mgmt.company, value, m.mgmt.old)
	}
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus("Saved " + value)
	m.mgmt = m.mgmt.endPrompt()
}

func (m Model) viewManagement() string {
	var b strings.Builder
	title := "Manage Routes"
	crumb := ""
	switch m.mgmt.level {
	case levelCompanies:
		title = "Manage Companies"
		crumb = m.mgmt.route
	case levelBlades:
		title = "Manage Blades"
		crumb = m.mgmt.route + " / " + m.mgmt.company
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	if crumb != "" {
		b.WriteString(m.styles.Subtitle.Render(crumb))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	items := m.mgmtItems()
	if len(items) == 0 {
		b.WriteString(m.styles.Label.Render("Nothing here yet. Press a to add.") + "\n")
	}
	for i, item := range items {
		b.WriteString(m.renderListLine(item, i == m.mgmt.cursor))
	}

	if m.mgmt.prompting {
		b.WriteString("\n" + m.styles.Label.Render("Value: ") + m.mgmt.input.View() + "\n")
		b.WriteString(m.styles.Help.Render("enter apply | esc cancel"))
		return b.String()
	}

	help := "enter open | a add | r rename | x delete | s sync | S replace sync | esc back"
	if m.mgmt.level == levelBlades {
		help = "a add | e edit | x delete | esc back"
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}
