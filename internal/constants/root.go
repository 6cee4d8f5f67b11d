package constants

import "time"

const (
	AppName            = "rule"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/rule/rule.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultTimezone is the zone "today" is computed in unless configured otherwise.
	DefaultTimezone = "America/New_York"

	// UpcomingLimit is how many weekly practices the "Coming Up" section shows.
	UpcomingLimit = 3

	// WakeTimePracticeKey identifies the Easter practice whose description shows the
	// user's wake time.
	WakeTimePracticeKey = "easter_fixed_wake_time"

	// MinGregorianYear is the year the Gregorian calendar was introduced.
	// Earlier dates of that year are computed proleptically.
	MinGregorianYear = 1582

	// Redis cache
	LiturgicalCachePrefix = "rule:liturgical:"
	LiturgicalCacheTTL    = 400 * 24 * time.Hour

	// HTTP server defaults
	DefaultServeAddr    = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
	ShutdownTimeout     = 10 * time.Second

	// Environment variables
	EnvDBConnection = "RULE_DB_CONNECTION"
)
