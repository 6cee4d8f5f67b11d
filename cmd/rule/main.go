package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/cli/calendar"
	"github.com/julianstephens/ruleoflife/internal/cli/rule"
	"github.com/julianstephens/ruleoflife/internal/cli/system"
	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/constants"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/storage"
	"github.com/julianstephens/ruleoflife/internal/storage/sqlite"
	"github.com/julianstephens/ruleoflife/internal/verse"
)

type CLI struct {
	Version  kong.VersionFlag
	DB       string `name:"db" help:"SQLite path or PostgreSQL connection string. PostgreSQL strings must NOT embed a password: store those with 'rule keyring set' or RULE_DB_CONNECTION instead." env:"RULE_DB"`
	Timezone string `help:"IANA time zone that decides what today is." default:"${timezone}" env:"RULE_TIMEZONE"`
	User     string `help:"User whose rule is kept." default:"local" env:"RULE_USER"`
	Debug    bool   `help:"Log debug output to stderr."`
	Verses   string `help:"YAML verse list to use instead of the built-in one." type:"existingfile" env:"RULE_VERSES"`
	RedisURL string `name:"redis-url" help:"Cache liturgical days in Redis (redis://...)." env:"RULE_REDIS_URL"`

	Init    system.InitCmd    `cmd:"" help:"Initialize storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Seed    system.SeedCmd    `cmd:"" help:"Load or refresh the practice catalog."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Snapshot the SQLite database."`
		List    system.BackupListCmd    `cmd:"" help:"List snapshots, newest first." default:"1"`
		Restore system.BackupRestoreCmd `cmd:"" help:"Replace the database with a snapshot."`
	} `cmd:"" help:"Manage SQLite database snapshots."`

	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    rule.TodayCmd     `cmd:"" help:"Show today's practices."`
	Toggle   rule.ToggleCmd    `cmd:"" help:"Mark a practice done or not done for today."`
	Upcoming rule.UpcomingCmd  `cmd:"" help:"Show the next weekly practices."`
	Practice rule.PracticesCmd `cmd:"" name:"practices" help:"Show the whole rule by season and lane."`
	Override rule.OverrideCmd  `cmd:"" help:"Customize a practice."`
	WakeTime rule.WakeTimeCmd  `cmd:"" name:"wake-time" help:"Show or set your wake time."`

	History calendar.HistoryCmd `cmd:"" help:"Show a month of completions."`
	Season  calendar.SeasonCmd  `cmd:"" help:"Show the liturgical season of a date."`
	Verse   calendar.VerseCmd   `cmd:"" help:"Show the verse of the day."`

	Export system.ExportCmd `cmd:"" help:"Export your data as JSON."`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the JSON API."`
	Token  system.TokenCmd  `cmd:"" help:"Sign a bearer token for the API."`
}

// noStoreCommands manage storage themselves or never touch it.
var noStoreCommands = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
	"backup":  true,
	"token":   true,
}

func main() {
	apperrors.Fatal(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) error {
	var c CLI
	parser, err := kong.New(&c,
		kong.Name(constants.AppName),
		kong.Description("A rule of life that follows the liturgical year."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Writers(out, os.Stderr),
		kong.Vars{
			"version":          constants.Version,
			"timezone":         constants.DefaultTimezone,
			"serve_addr":       constants.DefaultServeAddr,
			"read_timeout":     constants.DefaultReadTimeout.String(),
			"write_timeout":    constants.DefaultWriteTimeout.String(),
			"idle_timeout":     constants.DefaultIdleTimeout.String(),
			"shutdown_timeout": constants.ShutdownTimeout.String(),
		},
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)
	command := strings.Fields(kctx.Command())[0]

	store, err := storage.Open(c.DB, constants.DefaultConfigPath)
	if err != nil {
		return err
	}
	defer store.Close()

	logDir := configDir(store)
	if err := logger.Init(logger.Config{
		Debug:     c.Debug,
		ConfigDir: logDir,
		Console:   command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Logging to file", "path", logger.FilePath(logDir))

	clk, err := clock.NewZone(c.Timezone)
	if err != nil {
		return err
	}
	logger.Debug("Clock ready", "today", clock.Describe(clk))

	verses, err := loadVerses(c.Verses)
	if err != nil {
		return err
	}

	var cache liturgical.DayCache = store
	if c.RedisURL != "" {
		rc, err := liturgical.NewRedisCache(context.Background(), c.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, caching liturgical days in the database", "error", err)
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	if !noStoreCommands[command] {
		if err := store.Load(); err != nil {
			return err
		}
	}

	return kctx.Run(&cli.Context{
		Store:  store,
		Clock:  clk,
		Verses: verses,
		User:   c.User,
		Cache:  cache,
		Out:    out,
	})
}

// configDir is where logs go: next to a SQLite file, or the default config
// directory for PostgreSQL.
func configDir(store storage.Provider) string {
	if _, ok := store.(*sqlite.Store); ok {
		return filepath.Dir(store.GetConfigPath())
	}
	dir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return os.TempDir()
	}
	return dir
}

func loadVerses(path string) (*verse.List, error) {
	if path == "" {
		return verse.Default()
	}
	return verse.Load(path)
}
