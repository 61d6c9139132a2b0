package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	changedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("15"))
	editingStyle  = lipgloss.NewStyle().Background(lipgloss.Color("58")).Foreground(lipgloss.Color("15"))
	readOnlyStyle = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Faint(true)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	optionActiveStyle = lipgloss.NewStyle().Reverse(true)
)

// columnWidths sizes the demo columns; unknown columns get defaultWidth.
var columnWidths = map[string]int{
	"text":        14,
	"large_text":  30,
	"select":      9,
	"rich_select": 11,
	"integer":     8,
	"floats":      9,
}

const (
	defaultWidth = 12
	separator    = " │ "
	// gridTop is the screen line of the first data row: title, blank,
	// header, rule.
	gridTop = 4
)

func widthOf(field string) int {
	if w, ok := columnWidths[field]; ok {
		return w
	}
	return defaultWidth
}
