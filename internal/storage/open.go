package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/ruleoflife/internal/keyring"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/storage/postgres"
	"github.com/julianstephens/ruleoflife/internal/storage/sqlite"
)

// Open picks the backend for target. A postgres:// or postgresql:// target
// must not embed a password. When target is empty, a connection string from
// RULE_DB_CONNECTION or the OS keyring is used, falling back to
// defaultPath as a SQLite file.
func Open(target, defaultPath string) (Provider, error) {
	if strings.TrimSpace(target) == "" {
		connStr, src, err := keyring.Lookup()
		if err != nil {
			return nil, err
		}
		if src != keyring.SourceNone {
			logger.Debug("Using stored PostgreSQL connection string", "source", string(src))
			return postgres.New(connStr), nil
		}
		target = defaultPath
	}

	if postgres.IsConnString(target) {
		if _, err := postgres.ValidateConnString(target); err != nil {
			return nil, fmt.Errorf("%w; store credentialed strings with 'keyring set' or RULE_DB_CONNECTION", err)
		}
		return postgres.New(target), nil
	}

	path, err := ExpandPath(target)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)
