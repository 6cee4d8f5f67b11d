// Package backup keeps point-in-time snapshots of a SQLite rule database.
//
// Snapshots are written next to the database in a "backups" directory and
// named rule-YYYYMMDD-HHMMSS.db. Only the newest MaxBackups are kept.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/ruleoflife/internal/constants"
	"github.com/julianstephens/ruleoflife/internal/logger"
)

const (
	// MaxBackups is how many snapshots survive pruning.
	MaxBackups = 14

	dirName     = "backups"
	filePrefix  = constants.AppName + "-"
	fileSuffix  = ".db"
	stampLayout = "20060102-150405"
)

// Info describes one snapshot on disk.
type Info struct {
	Path  string
	Taken time.Time
	Size  int64
}

// Manager snapshots and restores the database at dbPath.
type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), dirName),
		now:    time.Now,
	}
}

// Dir is where snapshots are stored.
func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots the database with VACUUM INTO and prunes old snapshots.
// It returns the snapshot path.
func (m *Manager) Create(ctx context.Context) (string, error) {
	path, err := m.snapshot(ctx)
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		// The snapshot itself succeeded.
		logger.Warn("Failed to prune old backups", "dir", m.dir, "error", err)
	}
	return path, nil
}

func (m *Manager) snapshot(ctx context.Context) (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("database not found at %s: %w", m.dbPath, err)
	}
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	db, err := sql.Open("sqlite", m.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Debug("Backup written", "path", path)
	return path, nil
}

// nextPath picks a free file name for the current second.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampLayout)
	base := filepath.Join(m.dir, filePrefix+stamp)
	path := base + fileSuffix
	for n := 1; ; n++ {
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check backup path: %w", err)
		}
		path = base + "-" + strconv.Itoa(n) + fileSuffix
	}
}

// List returns the snapshots newest first. A missing directory is not an
// error.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	type ranked struct {
		Info
		seq int
	}
	var found []ranked
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		taken, seq, ok := parseName(e.Name())
		if !ok {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, ranked{
			Info: Info{Path: filepath.Join(m.dir, e.Name()), Taken: taken, Size: fi.Size()},
			seq:  seq,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].Taken.Equal(found[j].Taken) {
			return found[i].Taken.After(found[j].Taken)
		}
		return found[i].seq > found[j].seq
	})

	out := make([]Info, len(found))
	for i, r := range found {
		out[i] = r.Info
	}
	return out, nil
}

// parseName reads the timestamp and same-second sequence from a snapshot
// file name.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, 0, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if len(rest) < len(stampLayout) {
		return time.Time{}, 0, false
	}
	taken, err := time.ParseInLocation(stampLayout, rest[:len(stampLayout)], time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	seq := 0
	if tail := rest[len(stampLayout):]; tail != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(tail, "-"))
		if err != nil || !strings.HasPrefix(tail, "-") || n < 1 {
			return time.Time{}, 0, false
		}
		seq = n
	}
	return taken, seq, true
}

func (m *Manager) prune() error {
	all, err := m.List()
	if err != nil {
		return err
	}
	if len(all) <= MaxBackups {
		return nil
	}
	for _, b := range all[MaxBackups:] {
		if err := os.Remove(b.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", b.Path, err)
		}
	}
	return nil
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first when it exists. The database must not be
// held open by the caller.
func (m *Manager) Restore(ctx context.Context, path string) (string, error) {
	if err := verify(ctx, path); err != nil {
		return "", err
	}

	var safety string
	if _, err := os.Stat(m.dbPath); err == nil {
		safety, err = m.Create(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to back up current database: %w", err)
		}
	}

	tmp := m.dbPath + ".restore"
	if err := copyFile(path, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to replace database: %w", err)
	}
	// Stale journal files belong to the replaced database.
	for _, ext := range []string{"-wal", "-shm"} {
		_ = os.Remove(m.dbPath + ext)
	}
	logger.Info("Database restored", "from", path, "safety_backup", safety)
	return safety, nil
}

// verify checks that path is a readable SQLite database that passes an
// integrity check and carries the schema_version table.
func verify(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("backup is not a valid database: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("backup failed integrity check: %s", result)
	}

	var n int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'").Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect backup: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s is not a %s database", path, constants.AppName)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create database file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return fmt.Errorf("failed to sync database file: %w", err)
	}
	return out.Close()
}
