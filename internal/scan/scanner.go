// Package scan drives directory-wide extraction: discover files, parse
// each one, and persist the results as a single scan run.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/SaschaOnTour/rlm/internal/cache"
	"github.com/SaschaOnTour/rlm/internal/extract"
	"github.com/SaschaOnTour/rlm/internal/store"
)

// Stats summarizes one scan run.
type Stats struct {
	ScanID    string
	Root      string
	Files     int
	Errors    int
	CacheHits int
	Duration  time.Duration
}

// Scanner extracts every matching file under a root and writes the
// results to the store. Files that fail to parse are counted and
// skipped; a scan only fails on I/O or storage errors.
type Scanner struct {
	registry *extract.Registry
	store    *store.Store
	cache    *cache.ResultCache
	reporter ProgressReporter
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithCache reuses extraction results for unchanged file content.
func WithCache(c *cache.ResultCache) Option {
	return func(s *Scanner) { s.cache = c }
}

// WithReporter sets the progress reporter.
func WithReporter(r ProgressReporter) Option {
	return func(s *Scanner) { s.reporter = r }
}

// NewScanner creates a scanner backed by the given registry and store.
func NewScanner(registry *extract.Registry, st *store.Store, opts ...Option) *Scanner {
	s := &Scanner{
		registry: registry,
		store:    st,
		reporter: &NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans root, extracting every file matched by the include and
// ignore patterns, and returns the run's stats.
func (s *Scanner) Run(ctx context.Context, root string, includes, ignores []string) (*Stats, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}

	discovery, err := NewFileDiscovery(absRoot, includes, ignores)
	if err != nil {
		return nil, fmt.Errorf("invalid scan patterns: %w", err)
	}

	s.reporter.OnDiscoveryStart()
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	s.reporter.OnDiscoveryComplete(len(files))

	stats := &Stats{
		ScanID: uuid.NewString(),
		Root:   absRoot,
	}
	started := time.Now()

	if err := s.store.BeginScan(stats.ScanID, absRoot); err != nil {
		return nil, err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.scanFile(stats, absRoot, path); err != nil {
			return nil, err
		}
		s.reporter.OnFileProcessed(path)
	}

	stats.Duration = time.Since(started)
	if err := s.store.FinishScan(stats.ScanID, stats.Files, stats.Errors); err != nil {
		return nil, err
	}

	s.reporter.OnComplete(stats)
	return stats, nil
}

// scanFile extracts one file and persists it. Extraction failures are
// tolerated: the file is counted as an error and the scan moves on.
func (s *Scanner) scanFile(stats *Stats, root, path string) error {
	extractor, err := s.registry.ForPath(path)
	if err != nil {
		// Discovery patterns can be broader than the registry.
		return nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	relPath = filepath.ToSlash(relPath)

	digest := extract.Digest(source)

	entry, ok := s.lookupCache(digest)
	if !ok {
		mod, err := extractor.Extract(source)
		if err != nil {
			if errors.Is(err, extract.ErrEmptyInput) || extract.IsParseError(err) {
				log.Printf("skipping %s: %v", relPath, err)
				stats.Errors++
				return nil
			}
			return fmt.Errorf("failed to extract %s: %w", relPath, err)
		}
		refs, err := extractor.References(source)
		if err != nil {
			return fmt.Errorf("failed to collect references of %s: %w", relPath, err)
		}
		entry = cache.Entry{Module: mod, References: refs}
		s.storeCache(digest, entry)
	} else {
		stats.CacheHits++
	}

	if _, err := s.store.SaveFile(stats.ScanID, relPath, digest, entry.Module, entry.References); err != nil {
		return err
	}

	stats.Files++
	return nil
}

func (s *Scanner) lookupCache(digest string) (cache.Entry, bool) {
	if s.cache == nil {
		return cache.Entry{}, false
	}
	return s.cache.Get(digest)
}

func (s *Scanner) storeCache(digest string, e cache.Entry) {
	if s.cache == nil {
		return
	}
	s.cache.Put(digest, e)
}
