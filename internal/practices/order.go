package practices

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/julianstephens/ruleoflife/internal/models"
)

const unknownLaneRank = 99

// LaneRank returns the display position of lane. Unknown lanes sort last.
func LaneRank(lane models.Lane) int {
	for i, l := range models.LaneOrder {
		if l == lane {
			return i
		}
	}
	return unknownLaneRank
}

// TitleComparer orders titles with English collation and falls back to byte
// order so that distinct titles never compare equal. A TitleComparer is not
// safe for concurrent use.
type TitleComparer struct {
	col *collate.Collator
}

func NewTitleComparer() *TitleComparer {
	return &TitleComparer{col: collate.New(language.English)}
}

// Compare returns -1, 0 or 1.
func (c *TitleComparer) Compare(a, b string) int {
	if r := c.col.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

// Sort returns a sorted copy of effective: lane order, then sort order, then
// effective title, then ID.
func Sort(effective []models.EffectivePractice) []models.EffectivePractice {
	out := make([]models.EffectivePractice, len(effective))
	copy(out, effective)

	titles := NewTitleComparer()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := LaneRank(a.Lane), LaneRank(b.Lane); ra != rb {
			return ra < rb
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if c := titles.Compare(a.EffectiveTitle, b.EffectiveTitle); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	return out
}

// LaneGroup is the practices of one lane in display order.
type LaneGroup struct {
	Lane      models.Lane                `json:"lane"`
	Label     string                     `json:"label"`
	Practices []models.EffectivePractice `json:"practices"`
}

// GroupByLane splits sorted practices into lane groups in lane order, dropping
// empty lanes. Practices in unknown lanes are not grouped.
func GroupByLane(sorted []models.EffectivePractice) []LaneGroup {
	var groups []LaneGroup
	for _, lane := range models.LaneOrder {
		var items []models.EffectivePractice
		for _, p := range sorted {
			if p.Lane == lane {
				items = append(items, p)
			}
		}
		if len(items) > 0 {
			groups = append(groups, LaneGroup{Lane: lane, Label: LaneLabel(lane), Practices: items})
		}
	}
	return groups
}
