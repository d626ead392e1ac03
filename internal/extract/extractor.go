package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// LanguageExtractor extracts structural facts from one self-contained
// unit of source text. Implementations are pure with respect to their
// input: no shared mutable state, so concurrent calls on different
// inputs are safe.
type LanguageExtractor interface {
	// Language returns the language identifier (e.g. "python").
	Language() string

	// Extensions returns the file extensions this extractor handles.
	Extensions() []string

	// Extract performs a single structural pass over source and returns
	// the declarations and module-level call expressions in source
	// order. Zero-length input yields ErrEmptyInput; text the grammar
	// rejects yields a *ParseError. No partial result is returned.
	Extract(source []byte) (*Module, error)

	// References returns every call expression in the unit, including
	// those inside function and method bodies, attributed to the
	// declaration that encloses them.
	References(source []byte) ([]Reference, error)
}

// options configure extractor construction.
type options struct {
	maxInputSize int
}

// Option customizes a Registry and the extractors it creates.
type Option func(*options)

// WithMaxInputSize bounds accepted input to n bytes. Larger inputs fail
// with a *ParseError before parsing. Zero means no limit.
func WithMaxInputSize(n int) Option {
	return func(o *options) { o.maxInputSize = n }
}

// Registry maps languages and file extensions to their extractors.
type Registry struct {
	byLang map[string]LanguageExtractor
	byExt  map[string]LanguageExtractor
}

// NewRegistry creates a registry with all supported languages
// registered: python, go, java and rust.
func NewRegistry(opts ...Option) *Registry {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		byLang: map[string]LanguageExtractor{},
		byExt:  map[string]LanguageExtractor{},
	}

	r.register(NewPythonExtractor(o))
	r.register(NewGoExtractor(o))
	r.register(NewJavaExtractor(o))
	r.register(NewRustExtractor(o))

	return r
}

func (r *Registry) register(e LanguageExtractor) {
	r.byLang[e.Language()] = e
	for _, ext := range e.Extensions() {
		r.byExt[ext] = e
	}
}

// ForPath returns the extractor responsible for a file path, selected
// by extension.
func (r *Registry) ForPath(path string) (LanguageExtractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, ext)
	}
	return e, nil
}

// ForLanguage returns the extractor for a language identifier.
func (r *Registry) ForLanguage(lang string) (LanguageExtractor, error) {
	e, ok := r.byLang[strings.ToLower(lang)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	return e, nil
}

// Supports reports whether a file path maps to a registered extractor.
func (r *Registry) Supports(path string) bool {
	_, err := r.ForPath(path)
	return err == nil
}

// Languages lists the registered language identifiers, sorted.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.byLang))
	for lang := range r.byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
