package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// goExtractor extracts structure from Go source. Structs and
// interfaces map onto the struct/interface kinds, receiver methods get
// the receiver's base type as parent, and export case decides
// visibility.
type goExtractor struct {
	*treeSitterExtractor
}

// NewGoExtractor creates a Go extractor.
func NewGoExtractor(o options) *goExtractor {
	lang := sitter.NewLanguage(golang.Language())
	return &goExtractor{
		treeSitterExtractor: newTreeSitterExtractor(lang, "go", []string{".go"}, o.maxInputSize),
	}
}

// Extract performs a single structural pass over Go source. Go has no
// module-level executable statements, so Calls is always empty.
func (g *goExtractor) Extract(source []byte) (*Module, error) {
	tree, err := g.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	mod := g.newModule(root)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(uint(i))

		switch stmt.Kind() {
		case "type_declaration":
			g.extractTypeDecl(stmt, source, mod)
		case "function_declaration":
			mod.Declarations = append(mod.Declarations, g.callableDecl(stmt, source, KindFunction, ""))
		case "method_declaration":
			parent := goReceiverType(stmt, source)
			mod.Declarations = append(mod.Declarations, g.callableDecl(stmt, source, KindMethod, parent))
		}
	}

	return mod, nil
}

// References returns every call in the unit attributed to its enclosing
// function or method.
func (g *goExtractor) References(source []byte) ([]Reference, error) {
	tree, err := g.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	refs := []Reference{}
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Kind() == "call_expression" {
			refs = append(refs, Reference{
				Callee:    nodeText(n.ChildByFieldName("function"), source),
				ArgCount:  argCount(n.ChildByFieldName("arguments")),
				Line:      startLine(n),
				Enclosing: goEnclosing(n, source),
			})
		}
		return true
	})

	return refs, nil
}

// extractTypeDecl handles type_declaration nodes, which may carry
// several type_specs in one statement.
func (g *goExtractor) extractTypeDecl(node *sitter.Node, source []byte, mod *Module) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		spec := node.NamedChild(uint(i))
		if spec.Kind() != "type_spec" {
			continue
		}

		name := nodeText(spec.ChildByFieldName("name"), source)
		if name == "" {
			continue
		}

		var kind DeclKind
		typeNode := spec.ChildByFieldName("type")
		switch {
		case typeNode == nil:
			continue
		case typeNode.Kind() == "struct_type":
			kind = KindStruct
		case typeNode.Kind() == "interface_type":
			kind = KindInterface
		default:
			// Aliases and named non-composite types are not part of the
			// structural summary.
			continue
		}

		mod.Declarations = append(mod.Declarations, Declaration{
			Kind:       kind,
			Name:       name,
			Visibility: goVisibility(name),
			StartLine:  startLine(spec),
			EndLine:    endLine(spec),
			Signature:  "type " + name,
		})
	}
}

// callableDecl builds the declaration for a function or method node.
func (g *goExtractor) callableDecl(node *sitter.Node, source []byte, kind DeclKind, parent string) Declaration {
	name := nodeText(node.ChildByFieldName("name"), source)
	params := goParameters(node.ChildByFieldName("parameters"), source)

	var ret string
	if result := node.ChildByFieldName("result"); result != nil {
		ret = nodeText(result, source)
	}

	return Declaration{
		Kind:             kind,
		Name:             name,
		Parameters:       params,
		ReturnAnnotation: ret,
		Parent:           parent,
		Visibility:       goVisibility(name),
		StartLine:        startLine(node),
		EndLine:          endLine(node),
		Signature:        callableSignature(parent, name, params, ret),
	}
}

// goParameters flattens a parameter_list, emitting one Parameter per
// declared name. Grouped declarations like "a, b int" share their
// annotation.
func goParameters(params *sitter.Node, source []byte) []Parameter {
	result := []Parameter{}
	if params == nil {
		return result
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		decl := params.NamedChild(uint(i))
		switch decl.Kind() {
		case "parameter_declaration", "variadic_parameter_declaration":
		default:
			continue
		}

		annotation := nodeText(decl.ChildByFieldName("type"), source)
		if decl.Kind() == "variadic_parameter_declaration" {
			annotation = "..." + annotation
		}

		names := []string{}
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			child := decl.NamedChild(uint(j))
			if child.Kind() == "identifier" {
				names = append(names, nodeText(child, source))
			}
		}

		if len(names) == 0 {
			// Unnamed parameter, e.g. func(io.Reader).
			result = append(result, Parameter{Annotation: annotation})
			continue
		}
		for _, n := range names {
			result = append(result, Parameter{Name: n, Annotation: annotation})
		}
	}

	return result
}

// goReceiverType returns the base type name of a method receiver, with
// pointer and type-parameter decoration stripped.
func goReceiverType(node *sitter.Node, source []byte) string {
	recv := node.ChildByFieldName("receiver")
	if recv == nil {
		return ""
	}

	decl := findChildByType(recv, "parameter_declaration")
	if decl == nil {
		return ""
	}

	t := nodeText(decl.ChildByFieldName("type"), source)
	t = strings.TrimPrefix(t, "*")
	if idx := strings.IndexByte(t, '['); idx > 0 {
		t = t[:idx]
	}
	return t
}

// goVisibility applies Go's export rule: an upper-case first letter is
// public.
func goVisibility(name string) Visibility {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// goEnclosing finds the name of the function or method whose body
// contains the node. Function literals are skipped in favor of their
// named container.
func goEnclosing(node *sitter.Node, source []byte) string {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "function_declaration", "method_declaration":
			return nodeText(p.ChildByFieldName("name"), source)
		}
	}
	return ""
}
