package styles

import "github.com/charmbracelet/lipgloss"

var (
	unfocusedPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(defaultTheme.FgSubtle)

	focusedPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(defaultTheme.Primary)
)

// PanelStyle returns the appropriate panel style based on focus state.
func PanelStyle(focused bool) lipgloss.Style {
	if focused {
		return focusedPanelStyle
	}
	return unfocusedPanelStyle
}
