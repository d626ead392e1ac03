package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery walks a root directory and selects source files with
// glob patterns and ignore rules.
type FileDiscovery struct {
	rootDir        string
	includes       []compiledPattern
	ignorePatterns []compiledPattern
}

// NewFileDiscovery compiles the include and ignore patterns for rootDir.
func NewFileDiscovery(rootDir string, includes, ignores []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	for _, pattern := range includes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.includes = append(fd.includes, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignores {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		fd.ignorePatterns = append(fd.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// DiscoverFiles walks the tree and returns the matching files.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if fd.shouldIgnore(relPath) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.includes) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	// Always ignore the tool's own state directory
	if strings.HasPrefix(relPath, ".rlm/") || relPath == ".rlm" {
		return true
	}

	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// Also check if this is a directory that would match with /** suffix
	// For example, "node_modules" should match pattern "node_modules/**"
	pathWithSuffix := relPath + "/**"
	return fd.matchesAnyPattern(pathWithSuffix, fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Special handling: if path is in root (no slash), also try matching
	// against patterns with **/ prefix removed. This makes "**/*.py" match
	// both "setup.py" and "pkg/app.py" as users would expect.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
