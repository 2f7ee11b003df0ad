package catalog

import (
	"html"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/parser"
)

// Occurrence is a translated text found in a source file.
type Occurrence struct {
	Text string
	// ID is the wrapper's explicit key attribute, if any.
	ID   string
	Line int
}

// Attribute names that carry an explicit message key on the wrapper component.
var keyAttributes = map[string]bool{"i18nKey": true, "id": true, "messageKey": true}

// Extract finds the texts of src that already go through fa: arguments of
// translate calls and the content of wrapper components.
func Extract(path string, src []byte, fa adapter.FrameworkAdapter) ([]Occurrence, error) {
	tree, err := parser.Parse(path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.Root()
	b := analyzer.CollectBindings(root, tree.Source, fa)
	var out []Occurrence

	parser.Walk(root, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "call_expression":
			if !fa.IsTranslateCall(parser.CalleeName(n, tree.Source), b) {
				return true
			}
			args := n.ChildByFieldName("arguments")
			if args == nil || args.NamedChildCount() == 0 {
				return true
			}
			if text := literalText(args.NamedChild(0), tree.Source); text != "" {
				line, _ := parser.Position(n)
				out = append(out, Occurrence{Text: text, Line: line})
			}
		case "jsx_element":
			open := n.ChildByFieldName("open_tag")
			if open == nil || !fa.IsWrapped([]string{parser.ElementName(open, tree.Source)}, b) {
				return true
			}
			text := normalizeSpace(elementText(n, tree.Source))
			id := keyAttribute(open, tree.Source)
			if text != "" || id != "" {
				line, _ := parser.Position(n)
				out = append(out, Occurrence{Text: text, ID: id, Line: line})
			}
			return false
		case "jsx_self_closing_element":
			if !fa.IsWrapped([]string{parser.ElementName(n, tree.Source)}, b) {
				return true
			}
			if id := keyAttribute(n, tree.Source); id != "" {
				line, _ := parser.Position(n)
				out = append(out, Occurrence{ID: id, Line: line})
			}
			return false
		}
		return true
	})
	return out, nil
}

// AddFile records the occurrences of one file.
func (c *Catalog) AddFile(file string, occs []Occurrence) {
	for _, o := range occs {
		text := o.Text
		if text == "" {
			text = o.ID
		}
		c.Add(text, o.ID, file, o.Line)
	}
}

func literalText(n *tree_sitter.Node, src []byte) string {
	switch n.Kind() {
	case "string":
		return parser.UnquoteJS(parser.Text(n, src))
	case "template_string":
		return parser.TemplateText(n, src)
	}
	return ""
}

// elementText flattens the children of a JSX element: markup text decoded,
// nested elements by their own text, expressions as {name} or {value}.
func elementText(el *tree_sitter.Node, src []byte) string {
	var b strings.Builder
	prevEnd := uint(0)
	for _, c := range parser.NamedChildren(el) {
		if prevEnd > 0 && c.StartByte() > prevEnd {
			b.WriteByte(' ')
		}
		prevEnd = c.EndByte()

		switch c.Kind() {
		case "jsx_text", "html_character_reference":
			b.WriteString(html.UnescapeString(parser.Text(c, src)))
		case "jsx_element":
			b.WriteString(elementText(c, src))
		case "jsx_expression":
			inner := c.NamedChild(0)
			switch {
			case inner == nil, inner.Kind() == "comment":
			case inner.Kind() == "identifier":
				b.WriteString("{" + parser.Text(inner, src) + "}")
			case inner.Kind() == "string":
				b.WriteString(parser.UnquoteJS(parser.Text(inner, src)))
			default:
				b.WriteString("{value}")
			}
		}
	}
	return b.String()
}

func keyAttribute(open *tree_sitter.Node, src []byte) string {
	for _, attr := range parser.NamedChildren(open) {
		if attr.Kind() != "jsx_attribute" || !keyAttributes[parser.AttributeName(attr, src)] {
			continue
		}
		if text, ok := parser.AttributeText(attr, src); ok {
			return text
		}
	}
	return ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
