package analyzer

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/parser"
	"github.com/standardbeagle/lingo/internal/types"
)

// Wrappers that do not change what a literal means to its consumer.
var transparentKinds = map[string]bool{
	"parenthesized_expression": true,
	"as_expression":            true,
	"satisfies_expression":     true,
	"non_null_expression":      true,
	"type_assertion":           true,
}

var comparisonOperators = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true, "in": true, "instanceof": true,
}

// Calls whose string arguments are module specifiers.
var moduleCalls = map[string]bool{
	"require": true, "require.resolve": true, "import": true,
	"jest.mock": true, "jest.requireActual": true, "vi.mock": true, "vi.importActual": true,
}

// effectiveParent climbs out of transparent wrappers and returns the first
// meaningful parent together with the child of that parent on the path from n.
func effectiveParent(n *tree_sitter.Node) (parent, child *tree_sitter.Node) {
	child = n
	parent = n.Parent()
	for parent != nil && transparentKinds[parent.Kind()] {
		child = parent
		parent = parent.Parent()
	}
	return parent, child
}

func parentKind(n *tree_sitter.Node) string {
	if p, _ := effectiveParent(n); p != nil {
		return p.Kind()
	}
	return ""
}

// excluded applies the structural skips for string and template literals:
// positions where a literal is code rather than text no matter what it says.
func (w *walker) excluded(n *tree_sitter.Node) bool {
	if parser.IsAttributeValue(n) {
		return true
	}

	parent, child := effectiveParent(n)
	if parent == nil {
		return false
	}

	switch parent.Kind() {
	case "expression_statement":
		// directives ("use client") and no-op statements
		return true
	case "import_statement", "export_statement", "import_require_clause", "external_module_reference":
		return true
	case "pair", "pair_pattern":
		return parser.Same(parent.ChildByFieldName("key"), child)
	case "subscript_expression":
		return parser.Same(parent.ChildByFieldName("index"), child)
	case "binary_expression":
		return comparisonOperators[parser.Text(parent.ChildByFieldName("operator"), w.src)]
	case "switch_case":
		return parser.Same(parent.ChildByFieldName("value"), child)
	case "call_expression":
		// tagged template: css`...`, gql`...`, styled.div`...`
		return parser.Same(parent.ChildByFieldName("arguments"), child)
	case "arguments":
		call := parent.Parent()
		if call == nil {
			return false
		}
		callee := parser.CalleeName(call, w.src)
		if moduleCalls[callee] {
			return true
		}
		if w.analyzer.adapter.IsTranslateCall(callee, w.bindings) {
			return true
		}
	}

	// Named declarations whose name is a string: method "foo"() {}, declare module "x"
	if parser.Same(parent.ChildByFieldName("name"), child) {
		return true
	}

	return w.analyzer.adapter.IsWrapped(w.ancestorElements(n), w.bindings)
}

// metadata describes the surroundings of n for the classifier.
func (w *walker) metadata(n *tree_sitter.Node) types.Metadata {
	var meta types.Metadata

	parent, _ := effectiveParent(n)
	if parent != nil {
		meta.ParentKind = parent.Kind()
		if parent.Kind() == "variable_declarator" {
			if name := parent.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				meta.VariableName = parser.Text(name, w.src)
			}
		}
	}

	callFound := false
	for p := n.Parent(); p != nil; p = p.Parent() {
		if parser.IsFunction(p) {
			break
		}
		switch p.Kind() {
		case "call_expression", "new_expression":
			if !callFound {
				meta.Call = parser.CalleeName(p, w.src)
				callFound = true
			}
		case "throw_statement":
			meta.InThrow = true
		}
	}

	return meta
}
