package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ruleoflife/internal/backup"
	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/storage/sqlite"
)

var errBackupSQLiteOnly = errors.New("backups only support SQLite storage")

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, errBackupSQLiteOnly
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create(context.Background())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Backup written to %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Printf("No backups in %s\n", mgr.Dir())
		return nil
	}
	for _, b := range list {
		ctx.Printf("%s  %8s  %s\n", b.Taken.Format("2006-01-02 15:04:05"), humanSize(b.Size), b.Path)
	}
	return nil
}

// BackupRestoreCmd replaces the database with a snapshot.
type BackupRestoreCmd struct {
	File string `arg:"" optional:"" help:"Snapshot to restore. Defaults to the newest." type:"existingfile"`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}

	file := c.File
	if file == "" {
		list, err := mgr.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("no backups in %s", mgr.Dir())
		}
		file = list[0].Path
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Replace %s with %s?", ctx.Store.GetConfigPath(), file)).
			Affirmative("Restore").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			return errors.New("restore cancelled")
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	safety, err := mgr.Restore(context.Background(), file)
	if err != nil {
		return err
	}
	if safety != "" {
		ctx.Printf("Previous database saved to %s\n", safety)
	}
	ctx.Printf("✓ Restored %s\n", file)
	return nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
