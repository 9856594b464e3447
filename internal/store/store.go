// Package store provides the persistent record database for the player:
// two independently-keyed collections (tracks and playlists) with
// auto-assigned integer ids, per-record CRUD and forward-scan iteration.
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "cassette"
	dbFileName = "cassette.db"
)

// Store is the durable backing for the library and playlist managers.
// All operations are atomic per record; no transaction spans the two
// collections.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storeErr("open", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeErr("open", err)
	}
	// SQLite serializes writers; a single pooled connection avoids
	// SQLITE_BUSY under concurrent imports.
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, storeErr("init schema", err)
	}

	return &Store{db: conn}, nil
}

// OpenDefault opens the database at the standard per-user data location.
func OpenDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, storeErr("resolve data path", err)
	}
	return Open(path)
}

// DefaultPath returns the per-user database location.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// openOn wraps an already-open connection, initializing the schema.
// Used by tests running against in-memory databases.
func openOn(conn *sql.DB) (*Store, error) {
	if err := initSchema(conn); err != nil {
		return nil, storeErr("init schema", err)
	}
	return &Store{db: conn}, nil
}
