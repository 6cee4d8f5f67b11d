// Package cli holds the shared state of the rule commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/completion"
	"github.com/julianstephens/ruleoflife/internal/export"
	"github.com/julianstephens/ruleoflife/internal/history"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/practices"
	"github.com/julianstephens/ruleoflife/internal/storage"
	"github.com/julianstephens/ruleoflife/internal/today"
	"github.com/julianstephens/ruleoflife/internal/verse"
)

// Context is passed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Clock  clock.Clock
	Verses *verse.List
	User   string

	// Cache backs liturgical lookups. Nil computes every day directly.
	Cache liturgical.DayCache

	// Out receives command output. Nil means stdout.
	Out io.Writer
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Resolver returns the liturgical resolver over the configured cache.
func (c *Context) Resolver(observer liturgical.CacheObserver) liturgical.Resolver {
	return liturgical.NewResolver(c.Cache, observer)
}

func (c *Context) TodayService() *today.Service {
	return today.NewService(c.Store, c.Resolver(nil), c.Clock, c.Verses)
}

func (c *Context) PracticeService() *practices.Service {
	return practices.NewService(c.Store, c.Clock)
}

func (c *Context) CompletionService() *completion.Service {
	return completion.NewService(c.Store, c.Clock)
}

func (c *Context) HistoryService() *history.Service {
	return history.NewService(c.Store)
}

func (c *Context) ExportService() *export.Service {
	return export.NewService(c.Store, c.Clock)
}
