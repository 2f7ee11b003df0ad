package transformer

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/parser"
)

// importScan is the single pass over a file's top-level statements that
// import management needs.
type importScan struct {
	source string
	// decl is the first value import of the adapter's source, if any.
	decl *tree_sitter.Node
	// local names already bound by imports of the adapter's source
	names map[string]bool
	// lastImport is the last top-level import statement.
	lastImport *tree_sitter.Node
	// prologue is the last directive or hashbang before any other statement.
	prologue *tree_sitter.Node

	quote byte
	semi  bool
}

func scanImports(root *tree_sitter.Node, src []byte, source string) importScan {
	s := importScan{source: source, names: make(map[string]bool), quote: '"', semi: true}
	styled := false
	inPrologue := true

	for _, stmt := range parser.NamedChildren(root) {
		switch stmt.Kind() {
		case "comment":
			continue
		case "hash_bang_line":
			s.prologue = stmt
			continue
		case "expression_statement":
			if inPrologue && isDirective(stmt) {
				s.prologue = stmt
				continue
			}
		case "import_statement":
			s.lastImport = stmt
			if !styled {
				if lit := stmt.ChildByFieldName("source"); lit != nil {
					if q := src[lit.StartByte()]; q == '\'' || q == '"' {
						s.quote = q
					}
				}
				s.semi = strings.HasSuffix(parser.Text(stmt, src), ";")
				styled = true
			}
			if parser.ImportSource(stmt, src) == source && !isTypeOnly(stmt) {
				if s.decl == nil {
					s.decl = stmt
				}
				for _, spec := range parser.ImportSpecifiers(stmt) {
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					s.names[parser.Text(local, src)] = true
				}
			}
		}
		inPrologue = false
	}
	return s
}

func (s importScan) has(name string) bool {
	return s.names[name]
}

func (s importScan) semicolon() string {
	if s.semi {
		return ";"
	}
	return ""
}

func isDirective(stmt *tree_sitter.Node) bool {
	return stmt.NamedChildCount() == 1 && stmt.NamedChild(0).Kind() == "string"
}

// isTypeOnly reports an `import type { ... }` declaration.
func isTypeOnly(stmt *tree_sitter.Node) bool {
	if stmt.ChildCount() < 2 {
		return false
	}
	kw := stmt.Child(1)
	return kw != nil && kw.Kind() == "type"
}

// importEdit adds names to the existing import of the adapter's source, or
// inserts a new declaration after the last import, after the directive
// prologue, or at the top of the file.
func (rw *rewriter) importEdit(names []string, order int) textEdit {
	s := rw.imports
	list := strings.Join(names, ", ")

	if s.decl != nil {
		if named := parser.NamedImports(s.decl); named != nil {
			if specs := parser.ImportSpecifiers(s.decl); len(specs) > 0 {
				at := int(specs[len(specs)-1].EndByte())
				return textEdit{start: at, end: at, text: ", " + list, order: order}
			}
			at := int(named.StartByte()) + 1
			return textEdit{start: at, end: at, text: " " + list + " ", order: order}
		}
		if def := defaultImport(s.decl); def != nil {
			at := int(def.EndByte())
			return textEdit{start: at, end: at, text: ", { " + list + " }", order: order}
		}
	}

	decl := "import { " + list + " } from " + parser.QuoteJS(s.source, s.quote) + s.semicolon()
	switch {
	case s.lastImport != nil:
		at := int(s.lastImport.EndByte())
		return textEdit{start: at, end: at, text: "\n" + decl, order: order}
	case s.prologue != nil:
		at := int(s.prologue.EndByte())
		return textEdit{start: at, end: at, text: "\n" + decl, order: order}
	default:
		return textEdit{start: 0, end: 0, text: decl + "\n\n", order: order}
	}
}

// defaultImport returns the default binding of `import x from "..."` when the
// clause holds nothing else.
func defaultImport(stmt *tree_sitter.Node) *tree_sitter.Node {
	for _, c := range parser.NamedChildren(stmt) {
		if c.Kind() != "import_clause" {
			continue
		}
		parts := parser.NamedChildren(c)
		if len(parts) == 1 && parts[0].Kind() == "identifier" {
			return parts[0]
		}
	}
	return nil
}
