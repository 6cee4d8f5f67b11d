package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/completion"
	"github.com/julianstephens/ruleoflife/internal/history"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/practices"
	"github.com/julianstephens/ruleoflife/internal/seed"
	"github.com/julianstephens/ruleoflife/internal/storage/sqlite"
	"github.com/julianstephens/ruleoflife/internal/today"
	"github.com/julianstephens/ruleoflife/internal/tui/components/checklist"
	"github.com/julianstephens/ruleoflife/internal/verse"
)

func setupModel(t *testing.T) Model {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	catalog, err := seed.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := seed.Apply(ctx, store, catalog); err != nil {
		t.Fatal(err)
	}

	clk, err := clock.NewFixed("2025-03-14", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	verses, err := verse.Default()
	if err != nil {
		t.Fatal(err)
	}
	svc := Services{
		Clock:      clk,
		Today:      today.NewService(store, liturgical.NewCalendar(), clk, verses),
		Completion: completion.NewService(store, clk),
		Practices:  practices.NewService(store, clk),
		History:    history.NewService(store),
	}
	return NewModel(ctx, svc, "user-1")
}

// step feeds msg to m and returns the updated model and command.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestLoadToday(t *testing.T) {
	m := setupModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := step(t, m, m.loadToday()())
	if m.err != nil {
		t.Fatalf("load error: %v", m.err)
	}
	if m.today == nil || m.today.Total != 5 {
		t.Fatalf("today = %+v", m.today)
	}
	if len(m.checklist.Items()) != 5 {
		t.Errorf("checklist has %d items, want 5", len(m.checklist.Items()))
	}
	if cmd == nil {
		t.Fatal("expected a command loading the rule")
	}

	m, _ = step(t, m, cmd())
	m.state = StateRule
	if view := m.View(); !strings.Contains(view, "Friday fast") {
		t.Errorf("rule view missing Lent practice:\n%s", view)
	}
}

func TestToggleFromChecklist(t *testing.T) {
	m := setupModel(t)
	m, _ = step(t, m, m.loadToday()())

	tests := []struct {
		id         string
		wantStatus string
	}{
		{seed.PracticeID("lent_stations"), "Marked as done."},
		{seed.PracticeID("lent_stations"), "Marked as not done."},
		{seed.PracticeID("lent_almsgiving"), "This weekly practice isn't scheduled for today."},
	}
	for _, tt := range tests {
		var cmd tea.Cmd
		m, cmd = step(t, m, checklist.ToggleMsg{ID: tt.id})
		if cmd == nil {
			t.Fatal("expected toggle command")
		}
		m, _ = step(t, m, cmd())
		if m.status != tt.wantStatus {
			t.Errorf("status = %q, want %q", m.status, tt.wantStatus)
		}
	}
}

func TestTabsAndHistory(t *testing.T) {
	m := setupModel(t)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateRule {
		t.Errorf("state = %v, want StateRule", m.state)
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHistory {
		t.Errorf("state = %v, want StateHistory", m.state)
	}

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.month.String() != "2025-02" {
		t.Errorf("month = %s, want 2025-02", m.month)
	}
	m, _ = step(t, m, cmd())
	if m.history == nil || m.history.Month != "2025-02" {
		t.Fatalf("history = %+v", m.history)
	}
	if view := m.View(); !strings.Contains(view, "February 2025") {
		t.Errorf("history view missing title:\n%s", view)
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateRule {
		t.Errorf("state = %v, want StateRule", m.state)
	}

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
}
