package extract

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Rust extractor:
// - Structs, enums and traits become container declarations
// - impl-block functions are methods of the implemented type
// - Trait signatures are methods of the trait
// - pub decides visibility
// - References attributes call expressions to enclosing functions

func rustFixture(t *testing.T) []byte {
	t.Helper()
	source, err := os.ReadFile("../../testdata/code/rust/sample.rs")
	require.NoError(t, err)
	return source
}

func TestRustExtractor_SampleFixture(t *testing.T) {
	t.Parallel()

	e := NewRustExtractor(options{})
	mod, err := e.Extract(rustFixture(t))

	require.NoError(t, err)
	assert.Equal(t, "rust", mod.Language)
	require.Len(t, mod.Declarations, 9)

	config := mod.Declarations[0]
	assert.Equal(t, KindStruct, config.Kind)
	assert.Equal(t, "Config", config.Name)
	assert.Equal(t, VisibilityPublic, config.Visibility)
	assert.Equal(t, 3, config.StartLine)

	newFn := mod.Declarations[1]
	assert.Equal(t, KindMethod, newFn.Kind)
	assert.Equal(t, "new", newFn.Name)
	assert.Equal(t, "Config", newFn.Parent)
	assert.Equal(t, VisibilityPublic, newFn.Visibility)
	assert.Equal(t, "Self", newFn.ReturnAnnotation)
	require.Len(t, newFn.Parameters, 2)
	assert.Equal(t, Parameter{Name: "name", Annotation: "String"}, newFn.Parameters[0])

	display := mod.Declarations[2]
	assert.Equal(t, "display", display.Name)
	assert.Equal(t, "Config", display.Parent)
	require.Len(t, display.Parameters, 1)
	assert.Equal(t, Parameter{Name: "&self"}, display.Parameters[0])

	status := mod.Declarations[3]
	assert.Equal(t, KindEnum, status.Kind)
	assert.Equal(t, "Status", status.Name)

	processor := mod.Declarations[4]
	assert.Equal(t, KindTrait, processor.Kind)
	assert.Equal(t, "Processor", processor.Name)

	process := mod.Declarations[5]
	assert.Equal(t, KindMethod, process.Kind)
	assert.Equal(t, "process", process.Name)
	assert.Equal(t, "Processor", process.Parent)
	assert.Equal(t, "String", process.ReturnAnnotation)

	validate := mod.Declarations[6]
	assert.Equal(t, "validate", validate.Name)
	assert.Equal(t, "bool", validate.ReturnAnnotation)

	helperFn := mod.Declarations[7]
	assert.Equal(t, KindFunction, helperFn.Kind)
	assert.Equal(t, "helper", helperFn.Name)
	assert.Equal(t, VisibilityPublic, helperFn.Visibility)

	internalFn := mod.Declarations[8]
	assert.Equal(t, KindFunction, internalFn.Kind)
	assert.Equal(t, "internal_fn", internalFn.Name)
	assert.Equal(t, VisibilityPrivate, internalFn.Visibility)

	assert.Empty(t, mod.Calls)
}

func TestRustExtractor_PrivateFunctionOmittedPub(t *testing.T) {
	t.Parallel()

	source := []byte("fn internal() {}\npub fn open() {}\n")

	e := NewRustExtractor(options{})
	mod, err := e.Extract(source)
	require.NoError(t, err)

	require.Len(t, mod.Declarations, 2)
	assert.Equal(t, VisibilityPrivate, mod.Declarations[0].Visibility)
	assert.Equal(t, VisibilityPublic, mod.Declarations[1].Visibility)
}

func TestRustExtractor_References(t *testing.T) {
	t.Parallel()

	e := NewRustExtractor(options{})
	refs, err := e.References(rustFixture(t))
	require.NoError(t, err)

	byCallee := map[string]Reference{}
	for _, r := range refs {
		byCallee[r.Callee] = r
	}

	cfgNew, ok := byCallee["Config::new"]
	require.True(t, ok)
	assert.Equal(t, 2, cfgNew.ArgCount)
	assert.Equal(t, 34, cfgNew.Line)
	assert.Equal(t, "internal_fn", cfgNew.Enclosing)

	helper, ok := byCallee["helper"]
	require.True(t, ok)
	assert.Equal(t, 1, helper.ArgCount)
	assert.Equal(t, "internal_fn", helper.Enclosing)
}
