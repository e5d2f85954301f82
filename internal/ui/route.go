package ui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JDODER260/pickupform/internal/nav"
)

func (m Model) updateRouteSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	routes := m.sess.Routes()
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "up", "down", "j", "k":
		m.cursor = moveCursor(m.cursor, key, len(routes))
	case "enter":
		if len(routes) > 0 {
			m.sess.SelectRoute(routes[m.cursor])
			m.nav.GoHome()
			m.cursor = 0
			m.status = ""
		}
	case "m":
		m.mgmt = newMgmtState()
		m.goTo(nav.ScreenCompanyManagement)
	case "s":
		m.form = settingsForm(m.sess.Settings())
		m.goTo(nav.ScreenSettings)
	case "tab":
		m.switchMode()
	}
	return m, nil
}

func (m Model) viewRouteSelection() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Select Route"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Mode: " + string(m.nav.Mode())))
	b.WriteString("\n\n")

	routes := m.sess.Routes()
	for i, route := range routes {
		b.WriteString(m.renderListLine(route, i == m.cursor))
	}
	b.WriteString(m.styles.Help.Render("enter select | tab mode | m manage | s settings | q quit"))
	return b.String()
}

// companyChoice is a selectable company: from the database, or seen
// only in the cached delivery data for this route.
type companyChoice struct {
	name         string
	deliveryOnly bool
}

// companyChoices merges the route's database companies with the ones
// appearing in the delivery cache, sorted, delivery-only ones marked.
func (m Model) companyChoices() []companyChoice {
	known := m.sess.Companies()
	set := make(map[string]bool, len(known))
	for _, name := range known {
		set[name] = true
	}

	choices := make([]companyChoice, 0, len(known))
	for _, name := range known {
		choices = append(choices, companyChoice{name: name})
	}
	ds := m.sess.Deliveries()
	if ds.Route == m.sess.Settings().SelectedRoute {
		for _, name := range ds.CompanyNames() {
			if !set[name] {
				choices = append(choices, companyChoice{name: name, deliveryOnly: true})
			}
		}
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].name < choices[j].name })
	return choices
}

func (m Model) updateCompanySelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := m.companyChoices()
	switch key := msg.String(); key {
	case "esc", "b":
		m.goBack()
	case "up", "down", "j", "k":
		m.cursor = moveCursor(m.cursor, key, len(choices))
	case "enter":
		if len(choices) > 0 {
			m.sess.SelectCompany(choices[m.cursor].name)
			m.form = addPOForm("")
			m.goTo(nav.ScreenAddPO)
		}
	case "a":
		m.form = addCompanyForm()
		m.goTo(nav.ScreenAddCompany)
	}
	return m, nil
}

func (m Model) viewCompanySelection() string {
	var b strings.Builder
	st := m.sess.Settings()
	b.WriteString(m.styles.Title.Render("Select Company"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Route: " + st.SelectedRoute))
	b.WriteString("\n\n")

	choices := m.companyChoices()
	if len(choices) == 0 {
		b.WriteString(m.styles.Label.Render("No companies on this route yet.") + "\n")
	}
	for i, choice := range choices {
		label := choice.name
		if choice.deliveryOnly {
			label += " *"
		}
		b.WriteString(m.renderListLine(label, i == m.cursor))
	}
	b.WriteString(m.styles.Help.Render("enter select | a add company | * from deliveries | esc back"))
	return b.String()
}

func (m Model) renderListLine(text string, selected bool) string {
	if selected {
		return m.styles.Selected.Render("> "+text) + "\n"
	}
	return m.styles.Item.Render("  "+text) + "\n"
}
