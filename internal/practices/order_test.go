package practices

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/julianstephens/ruleoflife/internal/models"
)

func ep(id string, lane models.Lane, sortOrder int, title string) models.EffectivePractice {
	return models.EffectivePractice{
		Practice:       models.Practice{ID: id, Lane: lane, SortOrder: sortOrder, Title: title, Recurrence: models.RecurrenceDaily, IsActive: true},
		IsEnabled:      true,
		EffectiveTitle: title,
	}
}

func ids(list []models.EffectivePractice) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		input []models.EffectivePractice
		want  []string
	}{
		{
			name: "lane order beats sort order",
			input: []models.EffectivePractice{
				ep("attention", models.LaneAttention, 0, "A"),
				ep("charity", models.LaneCharity, 0, "A"),
				ep("ascetic", models.LaneAscetic, 0, "A"),
				ep("prayer", models.LanePrayer, 9, "Z"),
			},
			want: []string{"prayer", "ascetic", "charity", "attention"},
		},
		{
			name: "unknown lane sorts last",
			input: []models.EffectivePractice{
				ep("mystery", models.Lane("STUDY"), 0, "A"),
				ep("attention", models.LaneAttention, 5, "Z"),
			},
			want: []string{"attention", "mystery"},
		},
		{
			name: "sort order within lane",
			input: []models.EffectivePractice{
				ep("second", models.LanePrayer, 2, "A"),
				ep("first", models.LanePrayer, 1, "Z"),
			},
			want: []string{"first", "second"},
		},
		{
			name: "title is case-insensitive under collation",
			input: []models.EffectivePractice{
				ep("rosary", models.LanePrayer, 1, "rosary"),
				ep("angelus", models.LanePrayer, 1, "Angelus"),
				ep("compline", models.LanePrayer, 1, "Compline"),
			},
			want: []string{"angelus", "compline", "rosary"},
		},
		{
			name: "accented titles collate with their base letter",
			input: []models.EffectivePractice{
				ep("f", models.LanePrayer, 1, "Fast"),
				ep("e", models.LanePrayer, 1, "Été"),
				ep("d", models.LanePrayer, 1, "Dawn"),
			},
			want: []string{"d", "e", "f"},
		},
		{
			name: "identical titles fall back to id",
			input: []models.EffectivePractice{
				ep("b", models.LanePrayer, 1, "Same"),
				ep("a", models.LanePrayer, 1, "Same"),
			},
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Sort(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("Sort() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Sort() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSortIsPermutationInvariant(t *testing.T) {
	fixture := []models.EffectivePractice{
		ep("same-b", models.LanePrayer, 1, "Same"),
		ep("same-a", models.LanePrayer, 1, "Same"),
		ep("case-lower", models.LanePrayer, 1, "same"),
		ep("accent", models.LanePrayer, 1, "Sámé"),
		ep("study", models.Lane("STUDY"), 0, "Read"),
		ep("other", models.Lane("OTHER"), 0, "Read"),
		ep("dup", models.LaneCharity, 2, "Give"),
		ep("dup", models.LaneCharity, 2, "Give"),
		ep("attention", models.LaneAttention, 0, "Look"),
		ep("ascetic", models.LaneAscetic, 0, "Fast"),
	}
	render := func(list []models.EffectivePractice) string {
		out := ""
		for _, p := range list {
			out += fmt.Sprintf("%s/%s/%s|", p.Lane, p.ID, p.EffectiveTitle)
		}
		return out
	}

	want := render(Sort(fixture))
	rng := rand.New(rand.NewSource(42))
	shuffled := make([]models.EffectivePractice, len(fixture))
	for i := 0; i < 500; i++ {
		copy(shuffled, fixture)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := render(Sort(shuffled)); got != want {
			t.Fatalf("permutation %d sorted to\n%s\nwant\n%s", i, got, want)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := []models.EffectivePractice{
		ep("b", models.LaneCharity, 0, "B"),
		ep("a", models.LanePrayer, 0, "A"),
	}
	_ = Sort(in)
	if in[0].ID != "b" || in[1].ID != "a" {
		t.Errorf("input reordered: %v", ids(in))
	}
}

func TestGroupByLane(t *testing.T) {
	sorted := Sort([]models.EffectivePractice{
		ep("c1", models.LaneCharity, 0, "Give"),
		ep("p1", models.LanePrayer, 0, "Pray"),
		ep("p2", models.LanePrayer, 1, "Pray more"),
	})

	groups := GroupByLane(sorted)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (empty lanes dropped)", len(groups))
	}
	if groups[0].Lane != models.LanePrayer || groups[0].Label != "Prayer" || len(groups[0].Practices) != 2 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].Lane != models.LaneCharity || len(groups[1].Practices) != 1 {
		t.Errorf("second group = %+v", groups[1])
	}
}

func TestWhenLabel(t *testing.T) {
	daily := ep("d", models.LanePrayer, 0, "Daily thing")
	weekly := daily
	weekly.Recurrence = models.RecurrenceWeekly
	weeklyOn := weekly
	weeklyOn.EffectiveScheduledWeekday = models.Weekday(time.Friday)

	if got := WhenLabel(daily); got != "Daily" {
		t.Errorf("WhenLabel(daily) = %q", got)
	}
	if got := WhenLabel(weekly); got != "Weekly" {
		t.Errorf("WhenLabel(weekly without day) = %q", got)
	}
	if got := WhenLabel(weeklyOn); got != "Weekly on Friday" {
		t.Errorf("WhenLabel(weekly on friday) = %q", got)
	}
	if got := WeekdayLabel(8); got != "Day 8" {
		t.Errorf("WeekdayLabel(8) = %q", got)
	}
	if SeasonLabel(models.SeasonHolyWeek) != "Holy Week" || LaneLabel(models.LaneAscetic) != "Ascetic" {
		t.Error("label mismatch")
	}
}
