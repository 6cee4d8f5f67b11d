package rule

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
)

var (
	laneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	whenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(20)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows a season's full rule, grouped by lane.
type Model struct {
	viewport  viewport.Model
	season    models.Season
	practices []models.EffectivePractice
	loaded    bool
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return "Loading rule..."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetPractices(season models.Season, list []models.EffectivePractice) {
	m.season = season
	m.practices = list
	m.loaded = true
	m.Render()
}

// Render writes the grouped rule into the viewport.
func (m *Model) Render() {
	if !m.loaded {
		return
	}
	groups := practices.GroupByLane(m.practices)
	if len(groups) == 0 {
		m.viewport.SetContent(fmt.Sprintf("No practices for %s.", practices.SeasonLabel(m.season)))
		return
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(laneStyle.Render(g.Label) + "\n")
		for _, p := range g.Practices {
			line := whenStyle.Render(practices.WhenLabel(p)) + " " + titleStyle.Render(p.EffectiveTitle)
			if !p.IsEnabled {
				line += " " + mutedStyle.Render("(disabled)")
			}
			b.WriteString(line + "\n")
			if p.EffectiveDescription != "" {
				b.WriteString(strings.Repeat(" ", 21) + mutedStyle.Render(p.EffectiveDescription) + "\n")
			}
		}
	}
	m.viewport.SetContent(b.String())
}
