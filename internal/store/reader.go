package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SaschaOnTour/rlm/internal/extract"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found in store")

// FileRecord is one scanned file.
type FileRecord struct {
	ID       int64
	ScanID   string
	Path     string
	Language string
	Digest   string
	EndLine  int
}

// ScanRecord summarizes one scan run.
type ScanRecord struct {
	ID        string
	Root      string
	StartedAt time.Time
	Files     int
	Errors    int
}

// StoredCall is a call row joined with the file it came from.
type StoredCall struct {
	extract.Reference
	Path string
}

// FileByPath returns the most recently scanned record for a path.
func (s *Store) FileByPath(path string) (*FileRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, scan_id, path, language, digest, end_line
		 FROM files WHERE path = ? ORDER BY id DESC LIMIT 1`, path)

	var f FileRecord
	if err := row.Scan(&f.ID, &f.ScanID, &f.Path, &f.Language, &f.Digest, &f.EndLine); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: file %s", ErrNotFound, path)
		}
		return nil, err
	}
	return &f, nil
}

// Scan returns one scan run by ID.
func (s *Store) Scan(id string) (*ScanRecord, error) {
	row := s.db.QueryRow(`SELECT id, root, started_at, files, errors FROM scans WHERE id = ?`, id)

	var sc ScanRecord
	if err := row.Scan(&sc.ID, &sc.Root, &sc.StartedAt, &sc.Files, &sc.Errors); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: scan %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &sc, nil
}

// DeclarationsByFile returns a file's declarations in source order.
func (s *Store) DeclarationsByFile(fileID int64) ([]extract.Declaration, error) {
	rows, err := s.db.Query(
		`SELECT kind, name, parent, visibility, start_line, end_line, signature, return_annotation, parameters
		 FROM declarations WHERE file_id = ? ORDER BY id`, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeclarations(rows)
}

// DeclarationsByName returns every stored declaration with the given
// name, across files.
func (s *Store) DeclarationsByName(name string) ([]extract.Declaration, error) {
	rows, err := s.db.Query(
		`SELECT kind, name, parent, visibility, start_line, end_line, signature, return_annotation, parameters
		 FROM declarations WHERE name = ? ORDER BY id`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeclarations(rows)
}

// AllDeclarations returns every stored declaration, in insertion order.
func (s *Store) AllDeclarations() ([]extract.Declaration, error) {
	rows, err := s.db.Query(
		`SELECT kind, name, parent, visibility, start_line, end_line, signature, return_annotation, parameters
		 FROM declarations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeclarations(rows)
}

// AllCalls returns every stored call with its file path.
func (s *Store) AllCalls() ([]StoredCall, error) {
	rows, err := s.db.Query(
		`SELECT c.callee, c.arg_count, c.line, c.enclosing, f.path
		 FROM calls c JOIN files f ON f.id = c.file_id ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []StoredCall
	for rows.Next() {
		var c StoredCall
		if err := rows.Scan(&c.Callee, &c.ArgCount, &c.Line, &c.Enclosing, &c.Path); err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

func scanDeclarations(rows *sql.Rows) ([]extract.Declaration, error) {
	var decls []extract.Declaration
	for rows.Next() {
		var (
			d      extract.Declaration
			kind   string
			vis    string
			params string
		)
		if err := rows.Scan(&kind, &d.Name, &d.Parent, &vis, &d.StartLine, &d.EndLine, &d.Signature, &d.ReturnAnnotation, &params); err != nil {
			return nil, err
		}
		d.Kind = extract.DeclKind(kind)
		d.Visibility = extract.Visibility(vis)
		if err := json.Unmarshal([]byte(params), &d.Parameters); err != nil {
			return nil, fmt.Errorf("failed to decode parameters of %s: %w", d.Name, err)
		}
		decls = append(decls, d)
	}
	return decls, rows.Err()
}
