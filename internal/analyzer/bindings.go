package analyzer

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/parser"
)

// CollectBindings learns which local names refer to the adapter's component,
// translate function and hook. Imports are read first so that an aliased hook
// (import { useTranslation as useT }) is recognised in destructurings.
func CollectBindings(root *tree_sitter.Node, src []byte, fa adapter.FrameworkAdapter) adapter.Bindings {
	b := adapter.Bindings{}

	for _, stmt := range parser.NamedChildren(root) {
		if stmt.Kind() != "import_statement" {
			continue
		}
		if parser.ImportSource(stmt, src) != fa.ImportSource() {
			continue
		}
		for _, spec := range parser.ImportSpecifiers(stmt) {
			name := parser.Text(spec.ChildByFieldName("name"), src)
			local := name
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				local = parser.Text(alias, src)
			}
			switch name {
			case fa.ComponentName():
				b.Add(local, adapter.RoleComponent)
			case fa.FunctionName():
				b.Add(local, adapter.RoleFunction)
			case fa.HookName():
				b.Add(local, adapter.RoleHook)
			}
		}
	}

	parser.Walk(root, func(n *tree_sitter.Node) bool {
		if n.Kind() != "variable_declarator" {
			return true
		}
		value := n.ChildByFieldName("value")
		pattern := n.ChildByFieldName("name")
		if value == nil || pattern == nil || pattern.Kind() != "object_pattern" {
			return true
		}
		if value.Kind() == "await_expression" {
			value = value.NamedChild(0)
		}
		if value == nil || value.Kind() != "call_expression" {
			return true
		}
		callee := parser.CalleeName(value, src)
		if callee != fa.HookName() && b[callee] != adapter.RoleHook {
			return true
		}
		for _, prop := range parser.NamedChildren(pattern) {
			switch prop.Kind() {
			case "shorthand_property_identifier_pattern":
				if parser.Text(prop, src) == fa.FunctionName() {
					b.Add(fa.FunctionName(), adapter.RoleFunction)
				}
			case "pair_pattern":
				key := prop.ChildByFieldName("key")
				val := prop.ChildByFieldName("value")
				if parser.Text(key, src) == fa.FunctionName() && val != nil && val.Kind() == "identifier" {
					b.Add(parser.Text(val, src), adapter.RoleFunction)
				}
			case "object_assignment_pattern":
				// const { t = fallback } = useTranslation()
				if left := prop.ChildByFieldName("left"); left != nil && parser.Text(left, src) == fa.FunctionName() {
					b.Add(fa.FunctionName(), adapter.RoleFunction)
				}
			}
		}
		return true
	})

	return b
}
