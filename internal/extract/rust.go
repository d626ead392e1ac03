package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// rustExtractor extracts structure from Rust source. Structs, enums
// and traits are containers; impl-block and trait functions become
// methods with the impl type or trait as parent. The pub keyword
// decides visibility.
type rustExtractor struct {
	*treeSitterExtractor
}

// NewRustExtractor creates a Rust extractor.
func NewRustExtractor(o options) *rustExtractor {
	lang := sitter.NewLanguage(rust.Language())
	return &rustExtractor{
		treeSitterExtractor: newTreeSitterExtractor(lang, "rust", []string{".rs"}, o.maxInputSize),
	}
}

// Extract performs a single structural pass over Rust source. Rust has
// no module-level executable statements, so Calls is always empty.
func (r *rustExtractor) Extract(source []byte) (*Module, error) {
	tree, err := r.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	mod := r.newModule(root)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		item := root.NamedChild(uint(i))

		switch item.Kind() {
		case "struct_item":
			r.extractNamedItem(item, source, mod, KindStruct, "struct")
		case "enum_item":
			r.extractNamedItem(item, source, mod, KindEnum, "enum")
		case "trait_item":
			r.extractTrait(item, source, mod)
		case "impl_item":
			r.extractImpl(item, source, mod)
		case "function_item":
			mod.Declarations = append(mod.Declarations, r.callableDecl(item, source, KindFunction, ""))
		}
	}

	return mod, nil
}

// References returns every call expression in the unit attributed to
// its enclosing function.
func (r *rustExtractor) References(source []byte) ([]Reference, error) {
	tree, err := r.parse(source)
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
				Enclosing: rustEnclosing(n, source),
			})
		}
		return true
	})

	return refs, nil
}

// extractNamedItem handles struct and enum items.
func (r *rustExtractor) extractNamedItem(node *sitter.Node, source []byte, mod *Module, kind DeclKind, keyword string) {
	name := nodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		return
	}

	mod.Declarations = append(mod.Declarations, Declaration{
		Kind:       kind,
		Name:       name,
		Visibility: rustVisibility(node),
		StartLine:  startLine(node),
		EndLine:    endLine(node),
		Signature:  keyword + " " + name,
	})
}

// extractTrait appends the trait declaration followed by its required
// and provided functions as methods.
func (r *rustExtractor) extractTrait(node *sitter.Node, source []byte, mod *Module) {
	name := nodeText(node.ChildByFieldName("name"), source)
	if name == "" {
		return
	}

	mod.Declarations = append(mod.Declarations, Declaration{
		Kind:       KindTrait,
		Name:       name,
		Visibility: rustVisibility(node),
		StartLine:  startLine(node),
		EndLine:    endLine(node),
		Signature:  "trait " + name,
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		switch child.Kind() {
		case "function_item", "function_signature_item":
			mod.Declarations = append(mod.Declarations, r.callableDecl(child, source, KindMethod, name))
		}
	}
}

// extractImpl appends the functions of an impl block as methods of the
// implemented type. The impl block itself is not a declaration.
func (r *rustExtractor) extractImpl(node *sitter.Node, source []byte, mod *Module) {
	parent := nodeText(node.ChildByFieldName("type"), source)
	if idx := strings.IndexByte(parent, '<'); idx > 0 {
		parent = parent[:idx]
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		if child.Kind() == "function_item" {
			mod.Declarations = append(mod.Declarations, r.callableDecl(child, source, KindMethod, parent))
		}
	}
}

// callableDecl builds the declaration for a function node.
func (r *rustExtractor) callableDecl(node *sitter.Node, source []byte, kind DeclKind, parent string) Declaration {
	name := nodeText(node.ChildByFieldName("name"), source)
	params := rustParameters(node.ChildByFieldName("parameters"), source)

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
		Visibility:       rustVisibility(node),
		StartLine:        startLine(node),
		EndLine:          endLine(node),
		Signature:        callableSignature(parent, name, params, ret),
	}
}

// rustParameters flattens a parameters node, keeping self receivers as
// annotation-free parameters.
func rustParameters(params *sitter.Node, source []byte) []Parameter {
	result := []Parameter{}
	if params == nil {
		return result
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(uint(i))
		switch p.Kind() {
		case "parameter":
			result = append(result, Parameter{
				Name:       nodeText(p.ChildByFieldName("pattern"), source),
				Annotation: nodeText(p.ChildByFieldName("type"), source),
			})
		case "self_parameter":
			result = append(result, Parameter{Name: nodeText(p, source)})
		}
	}

	return result
}

// rustVisibility reports public only when the item carries a pub
// visibility modifier.
func rustVisibility(node *sitter.Node) Visibility {
	if findChildByType(node, "visibility_modifier") != nil {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// rustEnclosing finds the function whose body contains the node.
func rustEnclosing(node *sitter.Node, source []byte) string {
	for p := node.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == "function_item" {
			return nodeText(p.ChildByFieldName("name"), source)
		}
	}
	return ""
}
