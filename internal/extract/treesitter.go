package extract

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// treeSitterExtractor carries the state shared by every language
// implementation: the compiled grammar and the input contract.
type treeSitterExtractor struct {
	language *sitter.Language
	lang     string
	exts     []string
	maxInput int
}

func newTreeSitterExtractor(language *sitter.Language, lang string, exts []string, maxInput int) *treeSitterExtractor {
	return &treeSitterExtractor{
		language: language,
		lang:     lang,
		exts:     exts,
		maxInput: maxInput,
	}
}

// Language returns the language identifier (e.g. "python").
func (e *treeSitterExtractor) Language() string { return e.lang }

// Extensions returns the file extensions handled by this extractor.
func (e *treeSitterExtractor) Extensions() []string { return e.exts }

// parse runs tree-sitter over source and enforces the shared input
// contract: zero-length input, the optional size limit, and grammar
// conformance. Callers own the returned tree and must Close it.
func (e *treeSitterExtractor) parse(source []byte) (*sitter.Tree, error) {
	if len(source) == 0 {
		return nil, ErrEmptyInput
	}
	if e.maxInput > 0 && len(source) > e.maxInput {
		return nil, &ParseError{Detail: fmt.Sprintf("input of %d bytes exceeds the %d byte limit", len(source), e.maxInput)}
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Detail: fmt.Sprintf("tree-sitter produced no %s syntax tree", e.lang)}
	}

	root := tree.RootNode()
	if root.HasError() {
		lines := errorLines(root)
		line := 0
		if len(lines) > 0 {
			line = lines[0]
		}
		tree.Close()
		return nil, &ParseError{Line: line, Detail: fmt.Sprintf("source text does not conform to the %s grammar", e.lang)}
	}

	return tree, nil
}

// newModule returns an empty Module with non-nil slices so callers and
// serializers never observe a nil sequence.
func (e *treeSitterExtractor) newModule(root *sitter.Node) *Module {
	return &Module{
		Language:     e.lang,
		EndLine:      int(root.EndPosition().Row) + 1,
		Declarations: []Declaration{},
		Calls:        []CallExpression{},
	}
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startLine returns the 1-based line a node starts on.
func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// endLine returns the 1-based line a node ends on.
func endLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor
// for each node. Returning false from the visitor prunes the subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// errorLines collects the 1-based lines of all error or missing nodes,
// sorted and deduplicated in tree order.
func errorLines(root *sitter.Node) []int {
	var lines []int
	seen := map[int]bool{}

	walkTree(root, func(n *sitter.Node) bool {
		if n.IsError() || n.IsMissing() {
			line := startLine(n)
			if !seen[line] {
				seen[line] = true
				lines = append(lines, line)
			}
		}
		return true
	})

	return lines
}

// argCount counts the named children of a call's argument list node.
func argCount(args *sitter.Node) int {
	if args == nil {
		return 0
	}
	return int(args.NamedChildCount())
}
