package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ruleoflife/internal/history"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5).
			Align(lipgloss.Right)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(5).
			Align(lipgloss.Right)

	doneStyle = dayStyle.
			Foreground(lipgloss.Color("42")).
			Bold(true)

	selectedStyle = dayStyle.
			Foreground(lipgloss.Color("205")).
			Underline(true)

	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Render draws a month grid. Days with completions show their count.
func Render(view history.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(view.Title) + "\n\n")

	var row []string
	for _, h := range history.WeekdayHeaders {
		row = append(row, headerStyle.Render(h))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")

	row = row[:0]
	for i, cell := range view.Cells {
		row = append(row, renderCell(cell))
		if (i+1)%7 == 0 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
			row = row[:0]
		}
	}

	fmt.Fprintf(&b, "\n%d completed this month\n", view.Total)
	if view.Selected != "" {
		b.WriteString("\n" + titleStyle.Render(view.Selected) + "\n")
		if len(view.Entries) == 0 {
			b.WriteString("  Nothing completed.\n")
		}
		for _, e := range view.Entries {
			fmt.Fprintf(&b, "  %s  %s (%s)\n", e.LaneLabel, e.Title, e.When)
		}
	}
	return b.String()
}

func renderCell(cell *history.Cell) string {
	if cell == nil {
		return dayStyle.Render("")
	}
	label := fmt.Sprintf("%d", cell.Day)
	switch {
	case cell.Selected:
		if cell.Count > 0 {
			label = fmt.Sprintf("%d·%d", cell.Day, cell.Count)
		}
		return selectedStyle.Render(label)
	case cell.Count > 0:
		return doneStyle.Render(fmt.Sprintf("%d·%d", cell.Day, cell.Count))
	default:
		return dayStyle.Render(label)
	}
}
