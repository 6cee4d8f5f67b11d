package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ruleoflife/internal/completion"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/tui/components/checklist"
)

// chromeHeight is the space taken by tabs, header and help.
const chromeHeight = 8

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := msg.Height - chromeHeight
		if h < 3 {
			h = 3
		}
		m.checklist.SetSize(msg.Width-4, h)
		m.rule.SetSize(msg.Width-4, h)
		return m, nil

	case todayLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.today = &msg.view
		m.checklist.SetView(msg.view)
		return m, m.loadRule(liturgical.PracticeSeason(msg.view.Liturgical.Season))

	case ruleLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rule.SetPractices(msg.season, msg.practices)
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.history = &msg.view
		return m, nil

	case checklist.ToggleMsg:
		return m, m.toggle(msg.ID)

	case toggledMsg:
		if msg.err != nil {
			m.status = apperrors.Message(msg.err)
			return m, nil
		}
		m.status = "Marked as done."
		if msg.result.State == completion.NotDone {
			m.status = "Marked as not done."
		}
		return m, tea.Batch(m.loadToday(), m.loadHistory())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, tea.Batch(m.loadToday(), m.loadHistory())
		}

		if m.state == StateHistory {
			switch {
			case key.Matches(msg, m.keys.PrevMonth):
				m.month = m.month.AddMonths(-1)
				return m, m.loadHistory()
			case key.Matches(msg, m.keys.NextMonth):
				m.month = m.month.AddMonths(1)
				return m, m.loadHistory()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.checklist, cmd = m.checklist.Update(msg)
	case StateRule:
		m.rule, cmd = m.rule.Update(msg)
	}
	return m, cmd
}
