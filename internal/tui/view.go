package tui

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session"
)

// keypad mirrors the calculator's button grid. "=" spans two columns.
var keypad = [][]string{
	{"7", "8", "9", "+"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "C"},
	{"0", ".", "="},
}

func (m *Model) View() string {
	var b strings.Builder

	title := "Calculator"
	if m.endpoint != "" {
		title += " · " + m.endpoint
	}
	b.WriteString(titleStyle().Render(title))
	b.WriteString("\n")

	b.WriteString(pendingStyle().Render(m.pendingLine()))
	b.WriteString("\n")
	b.WriteString(displayStyle(m.session.Errored()).Render(m.session.Display))
	b.WriteString("\n")
	b.WriteString(m.renderKeypad())
	b.WriteString("\n")

	if m.showResponse {
		b.WriteString(m.renderResponse())
		b.WriteString("\n")
	}

	status := m.status
	if m.busy {
		status += "..."
	}
	b.WriteString(statusStyle(m.width).Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// pendingLine shows the captured operand and operation above the display.
func (m *Model) pendingLine() string {
	s := m.session
	if !s.HasPending() {
		return " "
	}
	return session.FormatNumber(*s.FirstOperand) + " " + s.Operation.Symbol()
}

func (m *Model) renderKeypad() string {
	rows := make([]string, 0, len(keypad))
	for _, row := range keypad {
		buttons := make([]string, 0, len(row))
		for _, label := range row {
			width := buttonWidth
			if label == "=" {
				width = 2 * buttonWidth
			}
			buttons = append(buttons, buttonStyle(width, m.isActive(label)).Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// isActive highlights the operation awaiting its second operand.
func (m *Model) isActive(label string) bool {
	s := m.session
	if s.State() != session.AwaitingSecondOperand {
		return false
	}
	return (label == "+" && s.Operation == calculator.OpAdd) ||
		(label == "-" && s.Operation == calculator.OpSubtract)
}

func (m *Model) renderResponse() string {
	resp := m.session.Response
	if resp == nil {
		return responseStyle().Render("No API response yet")
	}

	body, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return responseStyle().Render("Error: " + err.Error())
	}
	return responseStyle().Render("API response\n" + string(body))
}
