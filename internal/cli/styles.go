package cli

import "github.com/charmbracelet/lipgloss"

// Shared output styles. lipgloss drops colour when stdout is not a terminal.
var (
	HeadingStyle = lipgloss.NewStyle().Bold(true)

	LaneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Checkbox renders a done marker.
func Checkbox(done bool) string {
	if done {
		return DoneStyle.Render("[x]")
	}
	return "[ ]"
}
