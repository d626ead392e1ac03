package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SaschaOnTour/rlm/internal/extract"
)

// BeginScan records a new scan run.
func (s *Store) BeginScan(id, root string) error {
	_, err := s.db.Exec(
		`INSERT INTO scans (id, root, started_at) VALUES (?, ?, ?)`,
		id, root, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record scan %s: %w", id, err)
	}
	return nil
}

// FinishScan stores the final counters of a scan run.
func (s *Store) FinishScan(id string, files, errCount int) error {
	_, err := s.db.Exec(
		`UPDATE scans SET files = ?, errors = ? WHERE id = ?`,
		files, errCount, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish scan %s: %w", id, err)
	}
	return nil
}

// SaveFile writes one file's extraction result atomically: the file
// row, its declarations and its references. A previous row for the
// same path within the scan is replaced.
func (s *Store) SaveFile(scanID, path, digest string, mod *extract.Module, refs []extract.Reference) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin write transaction: %w", err)
	}
	defer tx.Rollback()

	// Cascade removes declarations and calls of a replaced row.
	if _, err := tx.Exec(`DELETE FROM files WHERE scan_id = ? AND path = ?`, scanID, path); err != nil {
		return 0, fmt.Errorf("failed to replace file %s: %w", path, err)
	}

	res, err := tx.Exec(
		`INSERT INTO files (scan_id, path, language, digest, end_line) VALUES (?, ?, ?, ?, ?)`,
		scanID, path, mod.Language, digest, mod.EndLine,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert file %s: %w", path, err)
	}
	fileID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	declStmt, err := tx.Prepare(`INSERT INTO declarations
		(file_id, kind, name, parent, visibility, start_line, end_line, signature, return_annotation, parameters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer declStmt.Close()

	for _, d := range mod.Declarations {
		params, err := json.Marshal(d.Parameters)
		if err != nil {
			return 0, fmt.Errorf("failed to encode parameters of %s: %w", d.Name, err)
		}
		if _, err := declStmt.Exec(
			fileID, string(d.Kind), d.Name, d.Parent, string(d.Visibility),
			d.StartLine, d.EndLine, d.Signature, d.ReturnAnnotation, string(params),
		); err != nil {
			return 0, fmt.Errorf("failed to insert declaration %s: %w", d.Name, err)
		}
	}

	callStmt, err := tx.Prepare(`INSERT INTO calls (file_id, callee, arg_count, line, enclosing)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer callStmt.Close()

	for _, r := range refs {
		if _, err := callStmt.Exec(fileID, r.Callee, r.ArgCount, r.Line, r.Enclosing); err != nil {
			return 0, fmt.Errorf("failed to insert call of %s: %w", r.Callee, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit file %s: %w", path, err)
	}

	return fileID, nil
}
