package parser

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/types"
)

// Position returns the 1-based line and 0-based byte column of n's start.
func Position(n *tree_sitter.Node) (line, column int) {
	p := n.StartPosition()
	return int(p.Row) + 1, int(p.Column)
}

// Key returns the "line:column" identity of n.
func Key(n *tree_sitter.Node) string {
	line, col := Position(n)
	return types.PositionKey(line, col)
}

// Text returns the source text spanned by n.
func Text(n *tree_sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(src)
}

// Walk visits n and its descendants in source order. Returning false from
// visit skips the node's children.
func Walk(n *tree_sitter.Node, visit func(*tree_sitter.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		Walk(n.Child(i), visit)
	}
}

// FirstError finds the first ERROR or MISSING node below n.
func FirstError(n *tree_sitter.Node) *tree_sitter.Node {
	var found *tree_sitter.Node
	Walk(n, func(c *tree_sitter.Node) bool {
		if found != nil {
			return false
		}
		if c.IsError() || c.IsMissing() {
			found = c
			return false
		}
		return c.HasError()
	})
	return found
}

// Same reports whether a and b are the same syntax node.
func Same(a, b *tree_sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Id() == b.Id()
}

// NamedChildren returns the named children of n.
func NamedChildren(n *tree_sitter.Node) []*tree_sitter.Node {
	count := n.NamedChildCount()
	out := make([]*tree_sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Function node kinds across the JavaScript and TypeScript grammars.
var functionKinds = map[string]bool{
	"function_declaration":           true,
	"function_expression":            true,
	"function":                       true,
	"generator_function_declaration": true,
	"generator_function":             true,
	"arrow_function":                 true,
	"method_definition":              true,
}

// IsFunction reports whether n starts a new function scope.
func IsFunction(n *tree_sitter.Node) bool {
	return functionKinds[n.Kind()]
}

// CalleeName flattens the callee of a call or new expression into a dotted
// name ("console.log", "this.el.setAttribute"). Computed or complex callees
// yield "".
func CalleeName(call *tree_sitter.Node, src []byte) string {
	var callee *tree_sitter.Node
	switch call.Kind() {
	case "call_expression":
		callee = call.ChildByFieldName("function")
	case "new_expression":
		callee = call.ChildByFieldName("constructor")
	default:
		return ""
	}
	return FlattenName(callee, src)
}

// FlattenName renders identifiers and simple member chains as dotted names.
func FlattenName(n *tree_sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "identifier", "property_identifier", "type_identifier", "this", "super", "import",
		"jsx_identifier", "shorthand_property_identifier":
		return Text(n, src)
	case "member_expression", "nested_identifier":
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		if obj == nil || prop == nil {
			// nested_identifier in older grammars has no fields
			parts := NamedChildren(n)
			if len(parts) != 2 {
				return ""
			}
			obj, prop = parts[0], parts[1]
		}
		left := FlattenName(obj, src)
		if left == "" {
			return ""
		}
		return left + "." + Text(prop, src)
	case "parenthesized_expression", "non_null_expression":
		if inner := n.NamedChild(0); inner != nil {
			return FlattenName(inner, src)
		}
	}
	return ""
}

// ElementName returns the tag name of a JSX element, opening element or
// self-closing element ("div", "Trans", "i18n.Trans"). Fragments yield "".
func ElementName(n *tree_sitter.Node, src []byte) string {
	if n.Kind() == "jsx_element" {
		n = n.ChildByFieldName("open_tag")
		if n == nil {
			return ""
		}
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	if name.Kind() == "jsx_namespace_name" {
		return strings.ReplaceAll(Text(name, src), " ", "")
	}
	if flat := FlattenName(name, src); flat != "" {
		return flat
	}
	return Text(name, src)
}

// IndentOf returns the leading whitespace of the line containing offset.
func IndentOf(src []byte, offset int) string {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

// ImportSource returns the decoded module specifier of an import statement.
func ImportSource(stmt *tree_sitter.Node, src []byte) string {
	source := stmt.ChildByFieldName("source")
	if source == nil {
		return ""
	}
	return UnquoteJS(Text(source, src))
}

// ImportSpecifiers returns the import_specifier nodes of a named import list.
func ImportSpecifiers(stmt *tree_sitter.Node) []*tree_sitter.Node {
	named := NamedImports(stmt)
	if named == nil {
		return nil
	}
	var specs []*tree_sitter.Node
	for _, spec := range NamedChildren(named) {
		if spec.Kind() == "import_specifier" {
			specs = append(specs, spec)
		}
	}
	return specs
}

// NamedImports returns the node holding the braces of an import statement's
// named import list, or nil.
func NamedImports(stmt *tree_sitter.Node) *tree_sitter.Node {
	for _, c := range NamedChildren(stmt) {
		if c.Kind() != "import_clause" {
			continue
		}
		for _, part := range NamedChildren(c) {
			if part.Kind() == "named_imports" {
				return part
			}
		}
	}
	return nil
}

func isMarkupTextKind(kind string) bool {
	return kind == "jsx_text" || kind == "html_character_reference"
}

// MarkupRun groups n with the markup text siblings that follow it, so that
// text split across lines or around entities ("Tom &amp; Jerry") is treated
// as one run. ok is false when n is not markup text or continues an earlier
// run.
func MarkupRun(n *tree_sitter.Node) (first, last *tree_sitter.Node, ok bool) {
	if !isMarkupTextKind(n.Kind()) {
		return nil, nil, false
	}
	if prev := n.PrevSibling(); prev != nil && isMarkupTextKind(prev.Kind()) {
		return nil, nil, false
	}
	last = n
	for next := n.NextSibling(); next != nil && isMarkupTextKind(next.Kind()); next = next.NextSibling() {
		last = next
	}
	return n, last, true
}

// AttributeName returns the name of a jsx_attribute ("title", "aria-label",
// "xlink:href").
func AttributeName(attr *tree_sitter.Node, src []byte) string {
	if name := attr.NamedChild(0); name != nil {
		return Text(name, src)
	}
	return ""
}

// AttributeLiteral returns the literal value of a jsx_attribute: either a bare
// string, or a string or template literal that is the sole expression of the
// attribute's expression container. container is nil for a bare string.
func AttributeLiteral(attr *tree_sitter.Node) (lit, container *tree_sitter.Node) {
	if attr.NamedChildCount() < 2 {
		return nil, nil
	}
	value := attr.NamedChild(attr.NamedChildCount() - 1)
	switch value.Kind() {
	case "string":
		return value, nil
	case "jsx_expression":
		if value.NamedChildCount() != 1 {
			return nil, nil
		}
		inner := value.NamedChild(0)
		if inner.Kind() == "string" || inner.Kind() == "template_string" {
			return inner, value
		}
	}
	return nil, nil
}

// AttributeText decodes the literal value of a jsx_attribute, trimmed.
func AttributeText(attr *tree_sitter.Node, src []byte) (string, bool) {
	lit, container := AttributeLiteral(attr)
	switch {
	case lit == nil:
		return "", false
	case lit.Kind() == "template_string":
		return strings.TrimSpace(TemplateText(lit, src)), true
	case container == nil:
		return strings.TrimSpace(UnquoteJSX(Text(lit, src))), true
	default:
		return strings.TrimSpace(UnquoteJS(Text(lit, src))), true
	}
}

// IsAttributeValue reports whether a string or template literal is the value
// of a jsx_attribute, directly or as the sole content of its expression
// container.
func IsAttributeValue(n *tree_sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	if p.Kind() == "jsx_attribute" {
		return true
	}
	if p.Kind() == "jsx_expression" {
		gp := p.Parent()
		return gp != nil && gp.Kind() == "jsx_attribute"
	}
	return false
}
