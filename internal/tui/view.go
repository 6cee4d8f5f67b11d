package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/tui/components/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateRule:
		content = docStyle.Render(m.rule.View())
	case StateHistory:
		content = m.viewHistory()
	}

	parts := []string{m.viewTabs(), content}
	if m.err != nil {
		parts = append(parts, dangerStyle.Render(apperrors.Format(m.err)))
	} else if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	if m.today == nil {
		return docStyle.Render("Loading...")
	}
	v := m.today
	header := headerStyle.Render(fmt.Sprintf("%s · %s · %d/%d done", v.Date, v.SeasonLabel, v.Completed, v.Total))
	if v.Liturgical.CelebrationName != nil {
		header += "\n" + *v.Liturgical.CelebrationName
	}
	if v.Verse != nil {
		header += "\n" + verseStyle.Render(v.Verse.Reference)
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.checklist.View()))
}

func (m Model) viewHistory() string {
	if m.history == nil {
		return docStyle.Render("Loading...")
	}
	return docStyle.Render(calendar.Render(*m.history))
}
