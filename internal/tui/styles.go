package tui

import "github.com/charmbracelet/lipgloss"

const buttonWidth = 7

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 1)
}

func displayStyle(errored bool) lipgloss.Style {
	color := lipgloss.Color("255")
	if errored {
		color = lipgloss.Color("203")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Foreground(color).
		Bold(true).
		Align(lipgloss.Right).
		Padding(0, 1).
		Width(4*buttonWidth + 2)
}

func pendingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Align(lipgloss.Right).
		Width(4*buttonWidth + 4)
}

func buttonStyle(width int, active bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Align(lipgloss.Center).
		Width(width - 2)
	if active {
		s = s.BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("214")).
			Bold(true)
	}
	return s
}

func statusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func responseStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Foreground(lipgloss.Color("39")).
		Padding(0, 1).
		MarginLeft(1)
}
