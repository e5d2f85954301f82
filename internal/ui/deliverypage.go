package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JDODER260/pickupform/internal/delivery"
)

func (m Model) updateDeliveryHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.goBack()
	case "tab":
		m.switchMode()
	case "d":
		gen := m.startAsync()
		return m, m.downloadCmd(gen)
	case "n", "right", "l":
		m.sess.NextDelivery()
	case "p", "left", "h":
		m.sess.PrevDelivery()
	case "r":
		gen := m.startAsync()
		return m, m.receiptCmd(gen)
	}
	return m, nil
}

func (m Model) viewDeliveryHome() string {
	var b strings.Builder
	st := m.sess.Settings()
	b.WriteString(m.styles.Title.Render("Deliveries: " + st.SelectedRoute))
	b.WriteString("\n")

	name, items := m.sess.CurrentDelivery()
	pos, total := m.sess.DeliveryPosition()
	if total == 0 {
		b.WriteString("\n" + m.styles.Label.Render("No deliveries cached. Press d to download for this route.") + "\n")
	} else {
		b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Company %d of %d", pos+1, total)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Box.Render(m.renderDeliveryCard(name, items)))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("d download | n/p browse | r receipt | tab mode | esc back"))
	return b.String()
}

func (m Model) renderDeliveryCard(name string, items []delivery.Item) string {
	var b strings.Builder
	b.WriteString(m.styles.Selected.Render(name))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("%-8s x%-4s %s\n", item.PONumber, item.Quantity, item.Description))
		d := item.BladeDetails
		b.WriteString(m.styles.Label.Render(fmt.Sprintf(
			"         rec %s  ship %s  bo %s  hammer %s  re-tip %s  new tip %s  no svc %s",
			delivery.Count(d.ReceivedQty), delivery.Count(d.ShippedQty), delivery.Count(d.BackOrder),
			delivery.Count(d.Hammer), delivery.Count(d.ReTipped), delivery.Count(d.NewTipNo), delivery.Count(d.NoService))))
		b.WriteString("\n")
	}
	if len(items) == 0 {
		b.WriteString(m.styles.Label.Render("No items listed."))
	}
	return strings.TrimRight(b.String(), "\n")
}
