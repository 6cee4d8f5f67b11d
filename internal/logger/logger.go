// Package logger is the process-wide structured log for rule.
//
// Entries go to a rotating file under <config dir>/logs. Stderr receives them
// too with --debug, or when a long-running command such as serve asks for a
// console. The package helpers are no-ops until Init has run, so packages
// may log unconditionally.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/ruleoflife/internal/constants"
)

const (
	logDirName = "logs"

	rotateMaxMB     = 10
	rotateKeep      = 3
	rotateMaxAgeDay = 28
)

// Logger is set by Init. Nil means logging is off.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Console mirrors entries at info level and above to stderr.
	Console bool
}

// FilePath is the log file Init writes to for configDir.
func FilePath(configDir string) string {
	return filepath.Join(configDir, logDirName, constants.AppName+".log")
}

// Init replaces Logger. Only warnings reach the file unless Debug or Console
// lowers the level.
func Init(cfg Config) error {
	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotateMaxMB,
		MaxBackups: rotateKeep,
		MaxAge:     rotateMaxAgeDay,
		Compress:   true,
	}
	if cfg.Debug || cfg.Console {
		out = io.MultiWriter(os.Stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           levelFor(cfg),
		Prefix:          constants.AppName,
	})
	return nil
}

func levelFor(cfg Config) log.Level {
	switch {
	case cfg.Debug:
		return log.DebugLevel
	case cfg.Console:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
