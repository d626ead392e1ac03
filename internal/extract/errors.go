package extract

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when Extract is handed zero-length input.
// An empty unit is reported, never silently mapped to an empty result.
var ErrEmptyInput = errors.New("empty input: nothing to analyze")

// ErrUnsupportedLanguage is returned by the registry when no extractor
// is registered for a path's extension or a language name.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseError reports source text the grammar rejected. Line is the
// 1-based line of the first offending construct (0 when the parser
// produced no tree at all).
type ParseError struct {
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Detail)
	}
	return fmt.Sprintf("parse error: %s", e.Detail)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
