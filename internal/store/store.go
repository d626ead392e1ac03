package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists scan runs and their extracted structure in SQLite.
// One Store owns one database connection pool; it is safe for
// concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the store at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// createSchema creates all tables and indexes inside one transaction,
// so schema creation succeeds or fails together.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	tables := []struct {
		name string
		ddl  string
	}{
		{"scans", createScansTable},
		{"files", createFilesTable},
		{"declarations", createDeclarationsTable},
		{"calls", createCallsTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range schemaIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}

	return nil
}

const createScansTable = `
CREATE TABLE IF NOT EXISTS scans (
	id         TEXT PRIMARY KEY,
	root       TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	files      INTEGER NOT NULL DEFAULT 0,
	errors     INTEGER NOT NULL DEFAULT 0
)`

const createFilesTable = `
CREATE TABLE IF NOT EXISTS files (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	scan_id  TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
	path     TEXT NOT NULL,
	language TEXT NOT NULL,
	digest   TEXT NOT NULL,
	end_line INTEGER NOT NULL,
	UNIQUE (scan_id, path)
)`

const createDeclarationsTable = `
CREATE TABLE IF NOT EXISTS declarations (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id           INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	kind              TEXT NOT NULL,
	name              TEXT NOT NULL,
	parent            TEXT NOT NULL DEFAULT '',
	visibility        TEXT NOT NULL,
	start_line        INTEGER NOT NULL,
	end_line          INTEGER NOT NULL,
	signature         TEXT NOT NULL DEFAULT '',
	return_annotation TEXT NOT NULL DEFAULT '',
	parameters        TEXT NOT NULL DEFAULT '[]'
)`

const createCallsTable = `
CREATE TABLE IF NOT EXISTS calls (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	file_id   INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	callee    TEXT NOT NULL,
	arg_count INTEGER NOT NULL,
	line      INTEGER NOT NULL,
	enclosing TEXT NOT NULL DEFAULT ''
)`

var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_files_path ON files(path)`,
	`CREATE INDEX IF NOT EXISTS idx_declarations_name ON declarations(name)`,
	`CREATE INDEX IF NOT EXISTS idx_declarations_file ON declarations(file_id)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_callee ON calls(callee)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_enclosing ON calls(enclosing)`,
}
