// Красота

package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Цвета (можно настроить под бренд)
	primaryColor = lipgloss.Color("62")  // Фиолетовый
	accentColor  = lipgloss.Color("205") // Розовый
	grayColor    = lipgloss.Color("240")

	// Стили хедера
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(grayColor).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Padding(0, 1).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")). // Зеленый
			Render

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			Render

	fieldErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5222D")).
			Render

	drawerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(grayColor).
			Render

	spinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)

// tableStyles — стили bubbles таблицы.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(grayColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(primaryColor).
		Bold(false)
	return s
}
