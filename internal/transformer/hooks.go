package transformer

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/parser"
)

// hookDecl renders `const { t } = useTranslation();` for the adapter.
func (rw *rewriter) hookDecl() string {
	return "const { " + rw.adapter.FunctionName() + " } = " + rw.adapter.HookName() + "()" + rw.imports.semicolon()
}

// injectHook returns the insertions that declare the translate function at
// the top of fn's body, or nil when the body already calls the hook.
// Expression-bodied arrows are turned into a block that returns the
// original expression.
func (rw *rewriter) injectHook(fn *tree_sitter.Node, order int) []textEdit {
	body := fn.ChildByFieldName("body")
	if body == nil || rw.callsHook(body) {
		return nil
	}
	unit := indentUnit(rw.src)

	if body.Kind() == "statement_block" {
		var indent string
		if first := body.NamedChild(0); first != nil && first.StartPosition().Row != body.StartPosition().Row {
			indent = parser.IndentOf(rw.src, int(first.StartByte()))
		} else {
			indent = parser.IndentOf(rw.src, int(fn.StartByte())) + unit
		}
		at := int(body.StartByte()) + 1
		return []textEdit{{start: at, end: at, text: "\n" + indent + rw.hookDecl(), order: order}}
	}

	base := parser.IndentOf(rw.src, int(body.StartByte()))
	inner := base + unit
	start, end := int(body.StartByte()), int(body.EndByte())
	return []textEdit{
		{start: start, end: start, text: "{\n" + inner + rw.hookDecl() + "\n" + inner + "return ", order: order},
		{start: end, end: end, text: rw.imports.semicolon() + "\n" + base + "}", order: order + 1},
	}
}

// callsHook reports whether body calls the adapter's hook outside nested
// functions.
func (rw *rewriter) callsHook(body *tree_sitter.Node) bool {
	found := false
	parser.Walk(body, func(n *tree_sitter.Node) bool {
		if found {
			return false
		}
		if parser.IsFunction(n) {
			return false
		}
		if n.Kind() == "call_expression" {
			callee := parser.CalleeName(n, rw.src)
			if callee == rw.adapter.HookName() || rw.bindings[callee] == adapter.RoleHook {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
