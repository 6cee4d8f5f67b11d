package checklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ruleoflife/internal/today"
)

// ToggleMsg asks the parent to toggle a practice.
type ToggleMsg struct {
	ID string
}

type Item struct {
	Entry     today.Item
	LaneLabel string
}

func (i Item) Title() string {
	if i.Entry.Completed {
		return "[x] " + i.Entry.Title
	}
	return "[ ] " + i.Entry.Title
}

func (i Item) Description() string {
	if i.Entry.Description == "" {
		return i.LaneLabel
	}
	return i.LaneLabel + " · " + i.Entry.Description
}

func (i Item) FilterValue() string { return i.Entry.Title }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	return Model{list: l, keys: keys}
}

// SetView replaces the items with the checklist of view, keeping the cursor
// on the same row.
func (m *Model) SetView(view today.View) {
	var items []list.Item
	for _, g := range view.Groups {
		for _, it := range g.Items {
			items = append(items, Item{Entry: it, LaneLabel: g.Label})
		}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx < len(items) {
		m.list.Select(idx)
	}
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Items returns the current rows.
func (m Model) Items() []Item {
	out := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Toggle) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			id := i.Entry.ID
			return m, func() tea.Msg { return ToggleMsg{ID: id} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing scheduled today."
	}
	return m.list.View()
}
