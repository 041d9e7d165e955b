package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrations live in migrations/<dialect>/NNNN_name.{up,down}.sql.
//
//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies pending migrations for the given SQL dialect.
// The migrate instance is never closed: its driver would close conn with it.
func RunMigrations(ctx context.Context, conn *sql.DB, dbType DBType) error {
	var (
		driver database.Driver
		err    error
	)
	switch dbType {
	case Postgres:
		// A dedicated connection keeps the advisory lock on one session;
		// it goes back to the pool when migrations finish.
		c, cerr := conn.Conn(ctx)
		if cerr != nil {
			return fmt.Errorf("could not reserve postgres connection: %w", cerr)
		}
		defer c.Close()
		driver, err = postgres.WithConnection(ctx, c, &postgres.Config{})
	case SQLite:
		driver, err = sqlite3.WithInstance(conn, &sqlite3.Config{})
	default:
		return fmt.Errorf("no SQL migrations for %s", dbType)
	}
	if err != nil {
		return fmt.Errorf("could not start %s migration driver: %w", dbType, err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(dbType))
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dbType), driver)
	if err != nil {
		return fmt.Errorf("migration failed to start: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	log.Printf("✅ %s migrations applied successfully!", dbType)
	return nil
}
