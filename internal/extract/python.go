package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonExtractor extracts structure from Python source. It is the
// reference implementation the other languages follow: classes,
// class-body methods and module-level functions become declarations,
// and underscore prefixes classify visibility.
type pythonExtractor struct {
	*treeSitterExtractor
}

// NewPythonExtractor creates a Python extractor.
func NewPythonExtractor(o options) *pythonExtractor {
	lang := sitter.NewLanguage(python.Language())
	return &pythonExtractor{
		treeSitterExtractor: newTreeSitterExtractor(lang, "python", []string{".py"}, o.maxInputSize),
	}
}

// Extract performs a single structural pass over Python source.
func (p *pythonExtractor) Extract(source []byte) (*Module, error) {
	tree, err := p.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	mod := p.newModule(root)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := unwrapDecorated(root.NamedChild(uint(i)))

		switch stmt.Kind() {
		case "class_definition":
			p.extractClass(stmt, source, mod)
		case "function_definition":
			mod.Declarations = append(mod.Declarations, p.callableDecl(stmt, source, KindFunction, ""))
		case "import_statement", "import_from_statement", "future_import_statement":
			// Imports carry no declarations or executable calls.
		default:
			p.collectTopLevelCalls(stmt, source, mod)
		}
	}

	return mod, nil
}

// References returns every call in the unit attributed to the function
// or class whose body encloses it.
func (p *pythonExtractor) References(source []byte) ([]Reference, error) {
	tree, err := p.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	refs := []Reference{}
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Kind() == "call" {
			refs = append(refs, Reference{
				Callee:    nodeText(n.ChildByFieldName("function"), source),
				ArgCount:  argCount(n.ChildByFieldName("arguments")),
				Line:      startLine(n),
				Enclosing: pythonEnclosing(n, source),
			})
		}
		return true
	})

	return refs, nil
}

// extractClass appends the class declaration followed by its methods,
// so the parent always precedes its children in the output sequence.
func (p *pythonExtractor) extractClass(node *sitter.Node, source []byte, mod *Module) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)

	mod.Declarations = append(mod.Declarations, Declaration{
		Kind:       KindClass,
		Name:       name,
		Visibility: pythonVisibility(name),
		StartLine:  startLine(node),
		EndLine:    endLine(node),
		Signature:  pythonClassSignature(node, source),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := unwrapDecorated(body.NamedChild(uint(i)))
		if child.Kind() == "function_definition" {
			mod.Declarations = append(mod.Declarations, p.callableDecl(child, source, KindMethod, name))
		}
	}
}

// callableDecl builds the declaration for a function or method node.
func (p *pythonExtractor) callableDecl(node *sitter.Node, source []byte, kind DeclKind, parent string) Declaration {
	name := nodeText(node.ChildByFieldName("name"), source)
	params := pythonParameters(node.ChildByFieldName("parameters"), source)

	var ret string
	if retNode := node.ChildByFieldName("return_type"); retNode != nil {
		ret = nodeText(retNode, source)
	}

	return Declaration{
		Kind:             kind,
		Name:             name,
		Parameters:       params,
		ReturnAnnotation: ret,
		Parent:           parent,
		Visibility:       pythonVisibility(name),
		StartLine:        startLine(node),
		EndLine:          endLine(node),
		Signature:        callableSignature(parent, name, params, ret),
	}
}

// collectTopLevelCalls gathers the calls inside one module-level
// executable statement, pruning any nested definition bodies.
func (p *pythonExtractor) collectTopLevelCalls(stmt *sitter.Node, source []byte, mod *Module) {
	walkTree(stmt, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition", "class_definition", "lambda":
			return false
		case "call":
			mod.Calls = append(mod.Calls, CallExpression{
				Callee:   nodeText(n.ChildByFieldName("function"), source),
				ArgCount: argCount(n.ChildByFieldName("arguments")),
				Line:     startLine(n),
			})
		}
		return true
	})
}

// pythonParameters flattens a parameters node into the declaration's
// ordered parameter list. Parameters without annotations keep an empty
// Annotation.
func pythonParameters(params *sitter.Node, source []byte) []Parameter {
	result := []Parameter{}
	if params == nil {
		return result
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(uint(i))
		switch child.Kind() {
		case "identifier":
			result = append(result, Parameter{Name: nodeText(child, source)})
		case "typed_parameter":
			result = append(result, Parameter{
				Name:       nodeText(child.NamedChild(0), source),
				Annotation: nodeText(child.ChildByFieldName("type"), source),
			})
		case "default_parameter":
			result = append(result, Parameter{
				Name: nodeText(child.ChildByFieldName("name"), source),
			})
		case "typed_default_parameter":
			result = append(result, Parameter{
				Name:       nodeText(child.ChildByFieldName("name"), source),
				Annotation: nodeText(child.ChildByFieldName("type"), source),
			})
		case "list_splat_pattern", "dictionary_splat_pattern":
			result = append(result, Parameter{Name: nodeText(child, source)})
		}
	}

	return result
}

// pythonVisibility applies the underscore convention: a leading
// underscore means private unless the name is a dunder (__init__ and
// friends stay public).
func pythonVisibility(name string) Visibility {
	if isDunder(name) {
		return VisibilityPublic
	}
	if strings.HasPrefix(name, "_") {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// isDunder reports whether a name is a recognized __dunder__ form.
func isDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// pythonClassSignature renders "class Name" plus superclasses when the
// class declares any.
func pythonClassSignature(node *sitter.Node, source []byte) string {
	sig := "class " + nodeText(node.ChildByFieldName("name"), source)
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		sig += nodeText(supers, source)
	}
	return sig
}

// pythonEnclosing finds the name of the nearest function or class whose
// body contains the node. Empty for module-level code.
func pythonEnclosing(node *sitter.Node, source []byte) string {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "function_definition", "class_definition":
			return nodeText(p.ChildByFieldName("name"), source)
		}
	}
	return ""
}

// unwrapDecorated strips a decorated_definition wrapper, returning the
// wrapped definition node.
func unwrapDecorated(node *sitter.Node) *sitter.Node {
	if node != nil && node.Kind() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

// callableSignature renders a compact "[Parent.]name(params) -> ret"
// signature, shared by all languages.
func callableSignature(parent, name string, params []Parameter, ret string) string {
	var b strings.Builder
	if parent != "" {
		b.WriteString(parent)
		b.WriteString(".")
	}
	b.WriteString(name)
	b.WriteString("(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Annotation != "" {
			b.WriteString(": ")
			b.WriteString(p.Annotation)
		}
	}
	b.WriteString(")")
	if ret != "" {
		b.WriteString(" -> ")
		b.WriteString(ret)
	}
	return b.String()
}
