// Package clitest builds command contexts for tests.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/seed"
	"github.com/julianstephens/ruleoflife/internal/storage/sqlite"
	"github.com/julianstephens/ruleoflife/internal/verse"
)

// NewContext returns a context over a seeded SQLite store in a temp
// directory with the clock fixed at date. Output is captured in the
// returned buffer.
func NewContext(t testing.TB, date string) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	catalog, err := seed.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := seed.Apply(context.Background(), store, catalog); err != nil {
		t.Fatal(err)
	}

	clk, err := clock.NewFixed(date, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	verses, err := verse.Default()
	if err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:  store,
		Clock:  clk,
		Verses: verses,
		User:   "user-1",
		Cache:  store,
		Out:    out,
	}, out
}
