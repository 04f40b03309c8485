package db

import "embed"

// Migrations holds the schema for every supported driver, one directory each.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS

const (
	SQLiteDir   = "migrations/sqlite"
	PostgresDir = "migrations/postgres"
)
