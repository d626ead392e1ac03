package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the registry:
// - Path and language lookup for every registered extractor
// - Unknown extensions and languages yield ErrUnsupportedLanguage
// - The input-size limit rejects oversized units before parsing
// - Digest is stable for identical content

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	tests := []struct {
		path string
		lang string
	}{
		{"pkg/sample.py", "python"},
		{"cmd/main.go", "go"},
		{"src/Sample.java", "java"},
		{"src/lib.rs", "rust"},
		{"SRC/UPPER.PY", "python"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			e, err := r.ForPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.lang, e.Language())
		})
	}
}

func TestRegistry_UnsupportedPath(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	_, err := r.ForPath("README.md")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.False(t, r.Supports("README.md"))

	_, err = r.ForLanguage("cobol")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestRegistry_Languages(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Equal(t, []string{"go", "java", "python", "rust"}, r.Languages())
}

func TestRegistry_MaxInputSize(t *testing.T) {
	t.Parallel()

	r := NewRegistry(WithMaxInputSize(8))
	e, err := r.ForLanguage("python")
	require.NoError(t, err)

	_, err = e.Extract([]byte("x = helper(10)\n"))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestDigest(t *testing.T) {
	t.Parallel()

	a := Digest([]byte("def f():\n    pass\n"))
	b := Digest([]byte("def f():\n    pass\n"))
	c := Digest([]byte("def g():\n    pass\n"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
