package testutil

import (
	"context"
	"database/sql"
	"testing"

	"employeemanagement/db"
	"employeemanagement/db/sqlite"
)

// OpenInMemoryDB opens a named shared-cache in-memory SQLite database with migrations applied.
// The database is closed through t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	s := sqlite.NewSQLiteDB("file:" + name + "?mode=memory&cache=shared")
	if err := s.Connect(); err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = s.Disconnect() })
	// One connection avoids shared-cache table locks between pooled connections.
	s.Conn.SetMaxOpenConns(1)
	if err := db.RunMigrations(context.Background(), s.Conn, db.SQLite); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return s.Conn
}
