package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/internal/store"
)

type CLI struct {
	Config  string `help:"Path to config YAML file." type:"path" env:"JOBBOARD_CONFIG"`
	Verbose bool   `help:"Enable debug logging."`

	Migrate MigrateCmd `cmd:"" help:"Apply pending database migrations."`
	Backup  BackupCmd  `cmd:"" help:"Write a consistent copy of the SQLite database."`
	Restore RestoreCmd `cmd:"" help:"Replace the SQLite database with a backup. Stop the server first."`
	Version VersionCmd `cmd:"" help:"Print version."`
}

// Context is passed to every command's Run method.
type Context struct {
	Out        io.Writer
	Logger     *slog.Logger
	ConfigPath string
	Version    string
	BuildTime  string
}

func (c *Context) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

type MigrateCmd struct{}

func (m *MigrateCmd) Run(c *Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(context.Background(), cfg, true, c.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(c.Out, "Database migrated (%s).\n", cfg.DatabaseDriver)
	return nil
}

type BackupCmd struct {
	Out   string `help:"Backup file path. Defaults to the database path with a .bak suffix."`
	Force bool   `help:"Overwrite an existing backup file."`
}

func (b *BackupCmd) Run(c *Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireSQLite(cfg); err != nil {
		return err
	}

	dst := b.Out
	if dst == "" {
		dst = cfg.DatabasePath + ".bak"
	}
	if _, err := os.Stat(dst); err == nil {
		if !b.Force {
			return fmt.Errorf("backup file %s already exists; use --force to overwrite", dst)
		}
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("remove old backup: %w", err)
		}
	}

	ctx := context.Background()
	conn, err := db.New(ctx, cfg.DatabasePath, c.Logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	// VACUUM INTO produces a consistent snapshot even while the server writes
	if _, err := conn.Exec(ctx, `VACUUM INTO ?`, dst); err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	fmt.Fprintf(c.Out, "Database backup written to %s.\n", dst)
	return nil
}

type RestoreCmd struct {
	From string `help:"Backup file to restore from." required:""`
}

func (rc *RestoreCmd) Run(c *Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := requireSQLite(cfg); err != nil {
		return err
	}

	ctx := context.Background()
	if err := checkBackup(ctx, rc.From, c.Logger); err != nil {
		return err
	}

	tmp := cfg.DatabasePath + ".restore"
	if err := copyFile(rc.From, tmp); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if err := os.Rename(tmp, cfg.DatabasePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("restore: %w", err)
	}

	fmt.Fprintf(c.Out, "Database restored from %s.\n", rc.From)
	return nil
}

type VersionCmd struct{}

func (v *VersionCmd) Run(c *Context) error {
	fmt.Fprintf(c.Out, "jobboardctl %s (built %s)\n", c.Version, c.BuildTime)
	return nil
}

func requireSQLite(cfg *config.Config) error {
	if cfg.DatabaseDriver != config.DriverSQLite {
		return fmt.Errorf("backup and restore only support the sqlite driver, got %q", cfg.DatabaseDriver)
	}
	return nil
}

// checkBackup opens path read-only and runs an integrity check on it.
func checkBackup(ctx context.Context, path string, logger *slog.Logger) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file: %w", err)
	}

	conn, err := db.New(ctx, "file:"+filepath.ToSlash(path)+"?mode=ro", logger)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer conn.Close()

	var result string
	if err := conn.QueryRow(ctx, `PRAGMA integrity_check`).Scan(&result); err != nil {
		return fmt.Errorf("check backup: %w", err)
	}
	if result != "ok" {
		return errors.New("backup failed integrity check: " + result)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
