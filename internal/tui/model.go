// Package tui is the interactive checklist for today's practices.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/completion"
	"github.com/julianstephens/ruleoflife/internal/history"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/practices"
	"github.com/julianstephens/ruleoflife/internal/today"
	"github.com/julianstephens/ruleoflife/internal/tui/components/checklist"
	"github.com/julianstephens/ruleoflife/internal/tui/components/rule"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateRule
	StateHistory
)

var tabTitles = []string{"Today", "Rule", "History"}

// Services are what the TUI reads and writes through.
type Services struct {
	Clock      clock.Clock
	Today      *today.Service
	Completion *completion.Service
	Practices  *practices.Service
	History    *history.Service
}

type Model struct {
	ctx       context.Context
	svc       Services
	userID    string
	state     SessionState
	keys      KeyMap
	help      help.Model
	checklist checklist.Model
	rule      rule.Model
	today     *today.View
	month     history.Month
	history   *history.View
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

type todayLoadedMsg struct {
	view today.View
	err  error
}

type ruleLoadedMsg struct {
	season    models.Season
	practices []models.EffectivePractice
	err       error
}

type historyLoadedMsg struct {
	view history.View
	err  error
}

type toggledMsg struct {
	result completion.Result
	err    error
}

func NewModel(ctx context.Context, svc Services, userID string) Model {
	return Model{
		ctx:       ctx,
		svc:       svc,
		userID:    userID,
		state:     StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		checklist: checklist.New(0, 0),
		rule:      rule.New(0, 0),
		month:     history.CurrentMonth(svc.Clock),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Toggle)
	case StateHistory:
		keys = append(keys, m.keys.PrevMonth, m.keys.NextMonth)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Toggle}
	case StateHistory:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadToday(), m.loadHistory())
}

func (m Model) loadToday() tea.Cmd {
	return func() tea.Msg {
		view, err := m.svc.Today.Build(m.ctx, m.userID)
		return todayLoadedMsg{view: view, err: err}
	}
}

func (m Model) loadRule(season models.Season) tea.Cmd {
	return func() tea.Msg {
		list, err := m.svc.Practices.Effective(m.ctx, m.userID, models.PracticeFilter{Season: season, ActiveOnly: true})
		return ruleLoadedMsg{season: season, practices: list, err: err}
	}
}

func (m Model) loadHistory() tea.Cmd {
	month := m.month
	selected := ""
	if month.Contains(m.svc.Clock.Today()) {
		selected = m.svc.Clock.Today()
	}
	return func() tea.Msg {
		view, err := m.svc.History.Month(m.ctx, m.userID, month, selected)
		return historyLoadedMsg{view: view, err: err}
	}
}

func (m Model) toggle(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Completion.Toggle(m.ctx, m.userID, id)
		return toggledMsg{result: res, err: err}
	}
}
