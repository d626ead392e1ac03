package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaschaOnTour/rlm/internal/extract"
)

func sampleModule() *extract.Module {
	return &extract.Module{
		Language: "python",
		EndLine:  12,
		Declarations: []extract.Declaration{
			{
				Kind: extract.KindFunction, Name: "helper",
				Parameters:       []extract.Parameter{{Name: "x", Annotation: "int"}},
				ReturnAnnotation: "int",
				Visibility:       extract.VisibilityPublic,
				StartLine:        1, EndLine: 2,
				Signature: "helper(x: int) -> int",
			},
		},
		Calls: []extract.CallExpression{
			{Callee: "helper", ArgCount: 1, Line: 4},
		},
	}
}

func TestRender_ModuleKeys(t *testing.T) {
	t.Parallel()

	out, err := Render(sampleModule())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Contains(t, doc, "declarations")
	assert.Contains(t, doc, "calls")
	assert.Equal(t, "python", doc["language"])
}

func TestRender_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	mod := sampleModule()
	out, err := Render(mod)
	require.NoError(t, err)

	parsed, err := ParseModule(out)
	require.NoError(t, err)
	assert.Equal(t, mod, parsed)

	// Rendering the parsed module again is byte-identical.
	again, err := Render(parsed)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestNewFileReport(t *testing.T) {
	t.Parallel()

	source := []byte("def helper(x: int) -> int:\n    return x\n")
	r := NewFileReport("pkg/app.py", source, sampleModule(), []extract.Reference{
		{Callee: "helper", ArgCount: 1, Line: 4, Enclosing: ""},
	})

	assert.Equal(t, "pkg/app.py", r.Path)
	assert.Equal(t, "python", r.Language)
	assert.Equal(t, extract.Digest(source), r.Digest)
	assert.Equal(t, 12, r.EndLine)

	out, err := Render(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"references"`)
}
