package extract

// DeclKind classifies a declaration found in source text.
type DeclKind string

const (
	KindClass     DeclKind = "class"
	KindMethod    DeclKind = "method"
	KindFunction  DeclKind = "function"
	KindStruct    DeclKind = "struct"
	KindInterface DeclKind = "interface"
	KindTrait     DeclKind = "trait"
	KindEnum      DeclKind = "enum"
)

// Visibility is inferred purely from naming or keyword conventions.
// It is a classification, not an enforced access boundary.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Parameter is a single entry of a declaration's parameter list.
// Annotation is empty when the source carries no type annotation.
type Parameter struct {
	Name       string `json:"name"`
	Annotation string `json:"annotation,omitempty"`
}

// Declaration is a named structural unit (class, method, function, ...)
// extracted from a unit of source text.
type Declaration struct {
	Kind             DeclKind    `json:"kind"`
	Name             string      `json:"name"`
	Parameters       []Parameter `json:"parameters,omitempty"`
	ReturnAnnotation string      `json:"return_annotation,omitempty"`
	// Parent is the name of the enclosing container (class, impl type,
	// interface or trait) and is set exactly for method declarations.
	Parent     string     `json:"parent,omitempty"`
	Visibility Visibility `json:"visibility"`
	StartLine  int        `json:"start_line"`
	EndLine    int        `json:"end_line"`
	Signature  string     `json:"signature,omitempty"`
}

// CallExpression is a syntactic invocation captured by callee name,
// argument count and 1-based source line.
type CallExpression struct {
	Callee   string `json:"callee"`
	ArgCount int    `json:"arg_count"`
	Line     int    `json:"line"`
}

// Module is the result of one extraction pass over a single unit of
// source text. Declarations appear in source order, with a method's
// parent container earlier in the slice than the method itself.
//
// Calls holds only call expressions made at the top level of the
// module's executable statements. Calls inside function, method or
// class bodies are not included here; References descends into bodies.
type Module struct {
	Language     string           `json:"language"`
	EndLine      int              `json:"end_line"`
	Declarations []Declaration    `json:"declarations"`
	Calls        []CallExpression `json:"calls"`
}

// Reference is a call expression found anywhere in the unit, together
// with the name of the declaration whose body encloses it. Enclosing is
// empty for module-level calls.
type Reference struct {
	Callee    string `json:"callee"`
	ArgCount  int    `json:"arg_count"`
	Line      int    `json:"line"`
	Enclosing string `json:"enclosing,omitempty"`
}
