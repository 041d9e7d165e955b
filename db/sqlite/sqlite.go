package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB is the zero-setup store used for local runs and tests.
// Path may be a file name or a URI such as "file:x?mode=memory&cache=shared".
type SQLiteDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	Path   string
}

func NewSQLiteDB(path string) *SQLiteDB {
	if path == "" {
		path = "employees.db"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	return &SQLiteDB{
		Ctx:    ctx,
		Cancel: cancel,
		Path:   path,
	}
}

func (s *SQLiteDB) Connect() error {
	conn, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return err
	}
	if err := conn.PingContext(s.Ctx); err != nil {
		_ = conn.Close()
		return err
	}
	// journal_mode is not supported for in-memory databases; ignore errors.
	_, _ = conn.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := conn.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = conn.Close()
		return err
	}
	s.Conn = conn
	return nil
}

func (s *SQLiteDB) Disconnect() error {
	s.Cancel()
	if s.Conn != nil {
		return s.Conn.Close()
	}
	return nil
}

func (s *SQLiteDB) GetContext() context.Context {
	return s.Ctx
}
