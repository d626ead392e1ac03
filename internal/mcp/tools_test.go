package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaschaOnTour/rlm/internal/extract"
	"github.com/SaschaOnTour/rlm/internal/graph"
	"github.com/SaschaOnTour/rlm/internal/report"
	"github.com/SaschaOnTour/rlm/internal/store"
)

// Test Plan for the MCP tools:
// - rlm_extract works from inline source and from a file path
// - Missing or invalid arguments yield tool errors, not system errors
// - Parse failures are reported as tool errors
// - rlm_callgraph answers symbol queries from the store

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return textContent.Text
}

func TestExtractHandler_InlineSource(t *testing.T) {
	t.Parallel()

	handler := createExtractHandler(extract.NewRegistry())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"source":   "def helper(x: int) -> int:\n    return x * 2\n",
		"language": "python",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var r report.FileReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &r))
	assert.Equal(t, "python", r.Language)
	require.Len(t, r.Module.Declarations, 1)
	assert.Equal(t, "helper", r.Module.Declarations[0].Name)
}

func TestExtractHandler_FilePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.go")
	require.NoError(t, os.WriteFile(path, []byte("package sample\n\nfunc Double(x int) int { return x * 2 }\n"), 0o644))

	handler := createExtractHandler(extract.NewRegistry())

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var r report.FileReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &r))
	assert.Equal(t, "go", r.Language)
	assert.Equal(t, path, r.Path)
}

func TestExtractHandler_ArgumentErrors(t *testing.T) {
	t.Parallel()

	handler := createExtractHandler(extract.NewRegistry())

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"no arguments", map[string]interface{}{}},
		{"source without language", map[string]interface{}{"source": "def f(): pass"}},
		{"unsupported language", map[string]interface{}{"source": "x", "language": "cobol"}},
		{"unsupported extension", map[string]interface{}{"path": "notes.txt"}},
		{"parse failure", map[string]interface{}{"source": "def broken(:", "language": "python"}},
		{"empty source file", map[string]interface{}{"source": "", "language": "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := handler(context.Background(), callRequest(tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
		})
	}
}

func TestCallgraphHandler(t *testing.T) {
	t.Parallel()

	st, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.BeginScan("scan-1", "/repo"))
	mod := &extract.Module{
		Language: "python",
		EndLine:  5,
		Declarations: []extract.Declaration{
			{Kind: extract.KindFunction, Name: "helper", Visibility: extract.VisibilityPublic, StartLine: 1, EndLine: 2},
			{Kind: extract.KindFunction, Name: "run", Visibility: extract.VisibilityPublic, StartLine: 3, EndLine: 5},
		},
		Calls: []extract.CallExpression{},
	}
	refs := []extract.Reference{{Callee: "helper", ArgCount: 1, Line: 4, Enclosing: "run"}}
	_, err = st.SaveFile("scan-1", "app.py", "digest-a", mod, refs)
	require.NoError(t, err)

	cg, err := graph.New(st)
	require.NoError(t, err)

	handler := createCallgraphHandler(cg)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"symbol": "helper",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var sg graph.SymbolGraph
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &sg))
	assert.Equal(t, []string{"run"}, sg.Callers)

	result, err = handler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
