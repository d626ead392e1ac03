package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaschaOnTour/rlm/internal/extract"
)

// Test Plan for the store:
// - Schema creation on open, including reopening an existing database
// - SaveFile round-trips declarations and calls
// - Re-saving a path replaces the previous rows
// - Scan counters persist
// - Lookups miss with ErrNotFound

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleModule() *extract.Module {
	return &extract.Module{
		Language: "python",
		EndLine:  26,
		Declarations: []extract.Declaration{
			{Kind: extract.KindClass, Name: "Config", Visibility: extract.VisibilityPublic, StartLine: 4, EndLine: 15, Signature: "class Config"},
			{
				Kind: extract.KindMethod, Name: "display", Parent: "Config",
				Visibility: extract.VisibilityPublic, StartLine: 11, EndLine: 12,
				Parameters:       []extract.Parameter{{Name: "self"}},
				ReturnAnnotation: "str",
				Signature:        "Config.display(self) -> str",
			},
			{
				Kind: extract.KindFunction, Name: "_private_fn",
				Visibility: extract.VisibilityPrivate, StartLine: 22, EndLine: 26,
				Parameters: []extract.Parameter{},
				Signature:  "_private_fn()",
			},
		},
		Calls: []extract.CallExpression{},
	}
}

func sampleRefs() []extract.Reference {
	return []extract.Reference{
		{Callee: "Config", ArgCount: 2, Line: 23, Enclosing: "_private_fn"},
		{Callee: "helper", ArgCount: 1, Line: 24, Enclosing: "_private_fn"},
	}
}

func TestStore_SaveAndReadBack(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.BeginScan("scan-1", "/repo"))

	fileID, err := s.SaveFile("scan-1", "pkg/sample.py", "digest-a", sampleModule(), sampleRefs())
	require.NoError(t, err)

	file, err := s.FileByPath("pkg/sample.py")
	require.NoError(t, err)
	assert.Equal(t, fileID, file.ID)
	assert.Equal(t, "python", file.Language)
	assert.Equal(t, "digest-a", file.Digest)
	assert.Equal(t, 26, file.EndLine)

	decls, err := s.DeclarationsByFile(fileID)
	require.NoError(t, err)
	assert.Equal(t, sampleModule().Declarations, decls)

	byName, err := s.DeclarationsByName("display")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Config", byName[0].Parent)

	calls, err := s.AllCalls()
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "Config", calls[0].Callee)
	assert.Equal(t, "pkg/sample.py", calls[0].Path)
}

func TestStore_ReplaceFile(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.BeginScan("scan-1", "/repo"))

	_, err := s.SaveFile("scan-1", "pkg/sample.py", "digest-a", sampleModule(), sampleRefs())
	require.NoError(t, err)

	changed := sampleModule()
	changed.Declarations = changed.Declarations[:1]
	fileID, err := s.SaveFile("scan-1", "pkg/sample.py", "digest-b", changed, nil)
	require.NoError(t, err)

	file, err := s.FileByPath("pkg/sample.py")
	require.NoError(t, err)
	assert.Equal(t, "digest-b", file.Digest)

	decls, err := s.DeclarationsByFile(fileID)
	require.NoError(t, err)
	assert.Len(t, decls, 1)

	// Replaced rows cascade away.
	calls, err := s.AllCalls()
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestStore_ScanCounters(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.BeginScan("scan-9", "/repo"))
	require.NoError(t, s.FinishScan("scan-9", 12, 2))

	sc, err := s.Scan("scan-9")
	require.NoError(t, err)
	assert.Equal(t, "/repo", sc.Root)
	assert.Equal(t, 12, sc.Files)
	assert.Equal(t, 2, sc.Errors)
}

func TestStore_NotFound(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	_, err := s.FileByPath("missing.py")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Scan("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReopenExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.BeginScan("scan-1", "/repo"))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	sc, err := s2.Scan("scan-1")
	require.NoError(t, err)
	assert.Equal(t, "/repo", sc.Root)
}
