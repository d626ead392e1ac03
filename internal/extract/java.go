package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// javaExtractor extracts structure from Java source. Classes,
// interfaces and enums are containers; their methods and constructors
// become method declarations with the container as parent.
type javaExtractor struct {
	*treeSitterExtractor
}

// NewJavaExtractor creates a Java extractor.
func NewJavaExtractor(o options) *javaExtractor {
	lang := sitter.NewLanguage(java.Language())
	return &javaExtractor{
		treeSitterExtractor: newTreeSitterExtractor(lang, "java", []string{".java"}, o.maxInputSize),
	}
}

// Extract performs a single structural pass over Java source. Java has
// no module-level executable statements, so Calls is always empty.
func (j *javaExtractor) Extract(source []byte) (*Module, error) {
	tree, err := j.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	mod := j.newModule(root)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		j.extractContainer(root.NamedChild(uint(i)), source, mod)
	}

	return mod, nil
}

// References returns every method invocation and constructor call in
// the unit attributed to its enclosing method.
func (j *javaExtractor) References(source []byte) ([]Reference, error) {
	tree, err := j.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	refs := []Reference{}
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "method_invocation":
			callee := nodeText(n.ChildByFieldName("name"), source)
			if obj := n.ChildByFieldName("object"); obj != nil {
				callee = nodeText(obj, source) + "." + callee
			}
			refs = append(refs, Reference{
				Callee:    callee,
				ArgCount:  argCount(n.ChildByFieldName("arguments")),
				Line:      startLine(n),
				Enclosing: javaEnclosing(n, source),
			})
		case "object_creation_expression":
			refs = append(refs, Reference{
				Callee:    nodeText(n.ChildByFieldName("type"), source),
				ArgCount:  argCount(n.ChildByFieldName("arguments")),
				Line:      startLine(n),
				Enclosing: javaEnclosing(n, source),
			})
		}
		return true
	})

	return refs, nil
}

// extractContainer handles a class, interface or enum declaration and
// recurses into its body for methods and nested containers.
func (j *javaExtractor) extractContainer(node *sitter.Node, source []byte, mod *Module) {
	var kind DeclKind
	switch node.Kind() {
	case "class_declaration":
		kind = KindClass
	case "interface_declaration":
		kind = KindInterface
	case "enum_declaration":
		kind = KindEnum
	default:
		return
	}

	name := nodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		return
	}

	mod.Declarations = append(mod.Declarations, Declaration{
		Kind:       kind,
		Name:       name,
		Visibility: javaVisibility(node, source),
		StartLine:  startLine(node),
		EndLine:    endLine(node),
		Signature:  strings.TrimSuffix(string(node.Kind()), "_declaration") + " " + name,
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		switch child.Kind() {
		case "method_declaration", "constructor_declaration":
			mod.Declarations = append(mod.Declarations, j.callableDecl(child, source, name))
		case "class_declaration", "interface_declaration", "enum_declaration":
			j.extractContainer(child, source, mod)
		}
	}
}

// callableDecl builds the declaration for a method or constructor node.
func (j *javaExtractor) callableDecl(node *sitter.Node, source []byte, parent string) Declaration {
	name := nodeText(node.ChildByFieldName("name"), source)
	params := javaParameters(node.ChildByFieldName("parameters"), source)

	var ret string
	if node.Kind() == "method_declaration" {
		ret = nodeText(node.ChildByFieldName("type"), source)
	}

	return Declaration{
		Kind:             KindMethod,
		Name:             name,
		Parameters:       params,
		ReturnAnnotation: ret,
		Parent:           parent,
		Visibility:       javaVisibility(node, source),
		StartLine:        startLine(node),
		EndLine:          endLine(node),
		Signature:        callableSignature(parent, name, params, ret),
	}
}

// javaParameters flattens a formal_parameters node.
func javaParameters(params *sitter.Node, source []byte) []Parameter {
	result := []Parameter{}
	if params == nil {
		return result
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(uint(i))
		switch p.Kind() {
		case "formal_parameter", "spread_parameter":
			result = append(result, Parameter{
				Name:       nodeText(p.ChildByFieldName("name"), source),
				Annotation: nodeText(p.ChildByFieldName("type"), source),
			})
		}
	}

	return result
}

// javaVisibility classifies by declared modifiers: private and
// protected map to private, everything else (public and
// package-private) to public.
func javaVisibility(node *sitter.Node, source []byte) Visibility {
	mods := findChildByType(node, "modifiers")
	if mods == nil {
		return VisibilityPublic
	}
	text := nodeText(mods, source)
	if strings.Contains(text, "private") || strings.Contains(text, "protected") {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// javaEnclosing finds the method or constructor whose body contains the
// node.
func javaEnclosing(node *sitter.Node, source []byte) string {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "method_declaration", "constructor_declaration":
			return nodeText(p.ChildByFieldName("name"), source)
		}
	}
	return ""
}
