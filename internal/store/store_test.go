package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/store"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{DatabaseDriver: config.DriverSQLite, DatabasePath: filepath.Join(t.TempDir(), "jobboard.db")}

	s, err := store.Open(ctx, cfg, true, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	jobs, err := s.ListJobs(ctx)
	if err != nil || len(jobs) != 0 {
		t.Fatalf("ListJobs on fresh db = %v, %v", jobs, err)
	}
}

func TestOpen_WithoutMigrate(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{DatabaseDriver: config.DriverSQLite, DatabasePath: filepath.Join(t.TempDir(), "bare.db")}

	s, err := store.Open(ctx, cfg, false, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := s.ListJobs(ctx); err == nil {
		t.Fatalf("expected missing table error without migrations")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DatabaseDriver: "mongo"}
	if _, err := store.Open(context.Background(), cfg, true, nil); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
