// Package verse picks the verse of the day from a fixed list.
package verse

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/ruleoflife/internal/clock"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/models"
)

//go:embed verses.yaml
var defaultVerses []byte

// List is an immutable, ordered verse list.
type List struct {
	verses []models.Verse
}

type document struct {
	Verses []models.Verse `yaml:"verses"`
}

// Default returns the built-in list.
func Default() (*List, error) {
	return Parse(defaultVerses)
}

// Load reads a verse list from a YAML file. An empty path yields the
// built-in list.
func Load(path string) (*List, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verses %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML verse document. Entries need a non-blank reference
// and the list may not be empty.
func Parse(data []byte) (*List, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse verses: %w", err)
	}
	if len(doc.Verses) == 0 {
		return nil, apperrors.Invalidf("verse list is empty")
	}
	verses := make([]models.Verse, 0, len(doc.Verses))
	for i, v := range doc.Verses {
		v.Reference = strings.TrimSpace(v.Reference)
		v.Text = strings.TrimSpace(v.Text)
		if v.Reference == "" {
			return nil, apperrors.Invalidf("verse %d has no reference", i+1)
		}
		verses = append(verses, v)
	}
	return &List{verses: verses}, nil
}

func (l *List) Len() int { return len(l.verses) }

// All returns a copy of the verses.
func (l *List) All() []models.Verse {
	out := make([]models.Verse, len(l.verses))
	copy(out, l.verses)
	return out
}

// ForDate returns the verse of the day for a YYYY-MM-DD date and its index.
func (l *List) ForDate(date string) (models.Verse, int, error) {
	return Select(date, l.verses)
}

// Select maps a YYYY-MM-DD date onto verses by day of year, cycling through
// the list. The result depends only on its arguments.
func Select(date string, verses []models.Verse) (models.Verse, int, error) {
	if len(verses) == 0 {
		return models.Verse{}, 0, apperrors.Invalidf("verse list is empty")
	}
	t, err := clock.ParseDate(date)
	if err != nil {
		return models.Verse{}, 0, err
	}
	n := len(verses)
	doy := t.YearDay() // 1 on January 1st
	idx := ((doy-1)%n + n) % n
	return verses[idx], idx, nil
}
