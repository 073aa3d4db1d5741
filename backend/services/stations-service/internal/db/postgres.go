package db

import (
	"database/sql"
	"embed"

	libdb "stationhub/backend/libs/db"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewPostgres connects to Postgres using shared library helper.
func NewPostgres(dsn string, maxOpenConns int) (*sql.DB, error) {
	return libdb.NewPostgresDB(dsn, libdb.PoolOptions{MaxOpenConns: maxOpenConns})
}

// Migrate brings the users and charging_stations schema up to date.
func Migrate(dsn string) error {
	return libdb.RunMigrations(dsn, migrationsFS, "migrations")
}
