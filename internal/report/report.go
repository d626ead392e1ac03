// Package report renders extraction results as JSON for the CLI and
// the MCP tools.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/SaschaOnTour/rlm/internal/extract"
)

// FileReport is the JSON document produced for one extracted file.
type FileReport struct {
	Path       string              `json:"path,omitempty"`
	Language   string              `json:"language"`
	Digest     string              `json:"digest"`
	EndLine    int                 `json:"end_line"`
	Module     *extract.Module     `json:"module"`
	References []extract.Reference `json:"references,omitempty"`
}

// NewFileReport assembles the report for one extraction result.
func NewFileReport(path string, source []byte, mod *extract.Module, refs []extract.Reference) *FileReport {
	return &FileReport{
		Path:       path,
		Language:   mod.Language,
		Digest:     extract.Digest(source),
		EndLine:    mod.EndLine,
		Module:     mod,
		References: refs,
	}
}

// Render serializes any report value as indented JSON with a trailing
// newline, ready to print.
func Render(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return append(out, '\n'), nil
}

// ParseModule decodes a rendered module document. Rendering and
// parsing round-trip without loss.
func ParseModule(data []byte) (*extract.Module, error) {
	var mod extract.Module
	if err := json.Unmarshal(data, &mod); err != nil {
		return nil, fmt.Errorf("failed to parse module report: %w", err)
	}
	return &mod, nil
}
