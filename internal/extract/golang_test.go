package extract

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Go extractor:
// - Structs and interfaces map to the struct/interface kinds
// - Receiver methods carry the receiver base type as parent
// - Export case decides visibility
// - Grouped and variadic parameters flatten correctly
// - References attributes calls to their enclosing function

func goFixture(t *testing.T) []byte {
	t.Helper()
	source, err := os.ReadFile("../../testdata/code/go/sample.go")
	require.NoError(t, err)
	return source
}

func TestGoExtractor_SampleFixture(t *testing.T) {
	t.Parallel()

	e := NewGoExtractor(options{})
	mod, err := e.Extract(goFixture(t))

	require.NoError(t, err)
	assert.Equal(t, "go", mod.Language)
	require.Len(t, mod.Declarations, 5)

	config := mod.Declarations[0]
	assert.Equal(t, KindStruct, config.Kind)
	assert.Equal(t, "Config", config.Name)
	assert.Equal(t, VisibilityPublic, config.Visibility)
	assert.Equal(t, 6, config.StartLine)

	newConfig := mod.Declarations[1]
	assert.Equal(t, KindFunction, newConfig.Kind)
	assert.Equal(t, "NewConfig", newConfig.Name)
	assert.Equal(t, "*Config", newConfig.ReturnAnnotation)
	require.Len(t, newConfig.Parameters, 2)
	assert.Equal(t, Parameter{Name: "name", Annotation: "string"}, newConfig.Parameters[0])
	assert.Equal(t, Parameter{Name: "value", Annotation: "int64"}, newConfig.Parameters[1])

	display := mod.Declarations[2]
	assert.Equal(t, KindMethod, display.Kind)
	assert.Equal(t, "Display", display.Name)
	assert.Equal(t, "Config", display.Parent)
	assert.Equal(t, VisibilityPublic, display.Visibility)
	assert.Equal(t, "string", display.ReturnAnnotation)

	helper := mod.Declarations[3]
	assert.Equal(t, KindFunction, helper.Kind)
	assert.Equal(t, "helper", helper.Name)
	assert.Equal(t, VisibilityPrivate, helper.Visibility)

	main := mod.Declarations[4]
	assert.Equal(t, "main", main.Name)
	assert.Empty(t, main.Parameters)

	// Go has no module-level executable statements.
	assert.Empty(t, mod.Calls)
}

func TestGoExtractor_References(t *testing.T) {
	t.Parallel()

	e := NewGoExtractor(options{})
	refs, err := e.References(goFixture(t))
	require.NoError(t, err)

	require.Len(t, refs, 6)
	assert.Equal(t, Reference{Callee: "fmt.Sprintf", ArgCount: 3, Line: 18, Enclosing: "Display"}, refs[0])
	assert.Equal(t, Reference{Callee: "NewConfig", ArgCount: 2, Line: 26, Enclosing: "main"}, refs[1])
	assert.Equal(t, Reference{Callee: "fmt.Println", ArgCount: 1, Line: 27, Enclosing: "main"}, refs[2])
	assert.Equal(t, Reference{Callee: "cfg.Display", ArgCount: 0, Line: 27, Enclosing: "main"}, refs[3])
	assert.Equal(t, Reference{Callee: "fmt.Println", ArgCount: 1, Line: 28, Enclosing: "main"}, refs[4])
	assert.Equal(t, Reference{Callee: "helper", ArgCount: 1, Line: 28, Enclosing: "main"}, refs[5])
}

func TestGoExtractor_GroupedAndVariadicParameters(t *testing.T) {
	t.Parallel()

	source := []byte(`package p

func f(a, b int, rest ...string) {}
`)

	e := NewGoExtractor(options{})
	mod, err := e.Extract(source)
	require.NoError(t, err)

	require.Len(t, mod.Declarations, 1)
	params := mod.Declarations[0].Parameters
	require.Len(t, params, 3)
	assert.Equal(t, Parameter{Name: "a", Annotation: "int"}, params[0])
	assert.Equal(t, Parameter{Name: "b", Annotation: "int"}, params[1])
	assert.Equal(t, Parameter{Name: "rest", Annotation: "...string"}, params[2])
}

func TestGoExtractor_InterfaceAndAlias(t *testing.T) {
	t.Parallel()

	source := []byte(`package p

type Reader interface {
	Read(p []byte) (int, error)
}

type alias = Reader
`)

	e := NewGoExtractor(options{})
	mod, err := e.Extract(source)
	require.NoError(t, err)

	// The alias is not part of the structural summary.
	require.Len(t, mod.Declarations, 1)
	assert.Equal(t, KindInterface, mod.Declarations[0].Kind)
	assert.Equal(t, "Reader", mod.Declarations[0].Name)
}
