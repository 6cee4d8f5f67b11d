package rule

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/ruleoflife/internal/cli/clitest"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
)

// 2025-03-14 is a Friday in Lent.
const friday = "2025-03-14"

func TestTodayCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Friday, March 14, 2025 · Lent",
		"Prayer",
		"Stations of the Cross",
		"Friday fast",
		"0/5 done",
		"Coming up",
		"Reconcile (tomorrow)",
		"Almsgiving (in 2 days)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("today output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Almsgiving\n") {
		t.Errorf("Sunday practice listed as due on Friday:\n%s", got)
	}
}

func TestTodayCmd_JSON(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	if err := (&TodayCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("today --json failed: %v", err)
	}
	if !strings.Contains(out.String(), `"practice_season": "LENT"`) {
		t.Errorf("unexpected JSON output:\n%s", out.String())
	}
}

func TestToggleCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)
	cmd := &ToggleCmd{Practice: "lent_friday_fast"}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), `Marked "lent_friday_fast" as done for 2025-03-14`) {
		t.Errorf("unexpected output: %q", out.String())
	}

	completions, err := ctx.Store.ListCompletions(context.Background(), ctx.User, friday, friday)
	if err != nil {
		t.Fatal(err)
	}
	if len(completions) != 1 {
		t.Fatalf("expected 1 completion, got %d", len(completions))
	}

	out.Reset()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "as not done") {
		t.Errorf("unexpected output: %q", out.String())
	}
	completions, err = ctx.Store.ListCompletions(context.Background(), ctx.User, friday, friday)
	if err != nil {
		t.Fatal(err)
	}
	if len(completions) != 0 {
		t.Errorf("expected no completions after second toggle, got %d", len(completions))
	}
}

func TestToggleCmd_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		practice string
		want     error
		message  string
	}{
		{
			name:     "weekly practice on another day",
			practice: "lent_confession",
			want:     apperrors.ErrNotScheduledToday,
			message:  "This weekly practice isn't scheduled for today.",
		},
		{
			name:     "unknown practice",
			practice: "no_such_practice",
			want:     apperrors.ErrNotFound,
			message:  "Practice not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := clitest.NewContext(t, friday)
			err := (&ToggleCmd{Practice: tt.practice}).Run(ctx)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestToggleCmd_NoUser(t *testing.T) {
	ctx, _ := clitest.NewContext(t, friday)
	ctx.User = ""

	err := (&ToggleCmd{Practice: "lent_morning_prayer"}).Run(ctx)
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestOverrideCmd_MovesWeeklyPractice(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	cmd := &OverrideCmd{Practice: "lent_confession", Weekday: "friday"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("override failed: %v", err)
	}
	if !strings.Contains(out.String(), "Weekly on Friday") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	if err := (&ToggleCmd{Practice: "lent_confession"}).Run(ctx); err != nil {
		t.Errorf("toggle after moving to Friday failed: %v", err)
	}

	out.Reset()
	if err := (&OverrideCmd{Practice: "lent_confession", ClearWeekday: true}).Run(ctx); err != nil {
		t.Fatalf("clear weekday failed: %v", err)
	}
	if !strings.Contains(out.String(), "Weekly on Saturday") {
		t.Errorf("expected catalog day after clearing:\n%s", out.String())
	}
}

func TestOverrideCmd_Disable(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	title := "Quiet fast"
	if err := (&OverrideCmd{Practice: "lent_friday_fast", Disable: true, Title: &title}).Run(ctx); err != nil {
		t.Fatalf("override failed: %v", err)
	}
	if !strings.Contains(out.String(), "Title:   Quiet fast") || !strings.Contains(out.String(), "Enabled: no") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	err := (&ToggleCmd{Practice: "lent_friday_fast"}).Run(ctx)
	if !errors.Is(err, apperrors.ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestOverrideCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  OverrideCmd
	}{
		{name: "no fields", cmd: OverrideCmd{Practice: "lent_confession"}},
		{name: "bad weekday", cmd: OverrideCmd{Practice: "lent_confession", Weekday: "someday"}},
		{name: "weekday on daily", cmd: OverrideCmd{Practice: "lent_morning_prayer", Weekday: "monday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := clitest.NewContext(t, friday)
			if err := tt.cmd.Run(ctx); !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPracticesCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	if err := (&PracticesCmd{Season: "lent"}).Run(ctx); err != nil {
		t.Fatalf("practices failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Lent", "Weekly on Friday", "lent_stations", "lent_evening_examen"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Advent") {
		t.Errorf("season filter not applied:\n%s", got)
	}
}

func TestPracticesCmd_LiturgicalSeasonName(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	if err := (&PracticesCmd{Season: "Later Ordinary Time"}).Run(ctx); err != nil {
		t.Fatalf("practices failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Ordinary Time") || strings.Contains(got, "Lent") {
		t.Errorf("expected only Ordinary Time practices:\n%s", got)
	}
}

func TestPracticesCmd_AllSeasons(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	if err := (&PracticesCmd{Recurrence: "weekly"}).Run(ctx); err != nil {
		t.Fatalf("practices failed: %v", err)
	}
	got := out.String()
	if strings.Index(got, "Advent") > strings.Index(got, "Lent") {
		t.Errorf("seasons out of order:\n%s", got)
	}
	if strings.Contains(got, "Daily") {
		t.Errorf("recurrence filter not applied:\n%s", got)
	}
}

func TestPracticesCmd_InvalidFilter(t *testing.T) {
	ctx, _ := clitest.NewContext(t, friday)

	if err := (&PracticesCmd{Season: "summer"}).Run(ctx); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := (&PracticesCmd{Recurrence: "monthly"}).Run(ctx); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWakeTimeCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t, friday)

	if err := (&WakeTimeCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No wake time set.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&WakeTimeCmd{Time: "05:30"}).Run(ctx); err != nil {
		t.Fatalf("set wake time failed: %v", err)
	}
	out.Reset()
	if err := (&WakeTimeCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Wake time: 05:30") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&WakeTimeCmd{Time: "5:30"}).Run(ctx); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	out.Reset()
	if err := (&WakeTimeCmd{Clear: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Wake time cleared.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
