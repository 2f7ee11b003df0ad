// Package analyzer finds translatable strings in JavaScript and TypeScript
// sources and reports them as wrap candidates with exact source coordinates.
package analyzer

import (
	"fmt"
	"html"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/classifier"
	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/parser"
	"github.com/standardbeagle/lingo/internal/security"
	"github.com/standardbeagle/lingo/internal/types"
)

// Analyzer classifies the literals of one file at a time. It holds no per-file
// state and is safe for concurrent use.
type Analyzer struct {
	adapter    adapter.FrameworkAdapter
	classifier *classifier.Classifier
	validator  *security.FileValidator
}

// New creates an analyzer for fa. A nil adapter selects the default.
func New(fa adapter.FrameworkAdapter) *Analyzer {
	if fa == nil {
		fa = adapter.ReactI18next()
	}
	return &Analyzer{adapter: fa, classifier: adapter.Classifier(fa), validator: security.NewFileValidator()}
}

// Adapter returns the adapter the analyzer was built with.
func (a *Analyzer) Adapter() adapter.FrameworkAdapter {
	return a.adapter
}

// Analyze parses src and returns its candidates in source order.
func Analyze(path string, src []byte, fa adapter.FrameworkAdapter) ([]types.WrapCandidate, error) {
	return New(fa).Analyze(path, src)
}

// Analyze parses src and returns its candidates in source order. A file that
// does not parse yields a *errors.ParseError and no candidates.
func (a *Analyzer) Analyze(path string, src []byte) ([]types.WrapCandidate, error) {
	tree, err := parser.Parse(path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return a.AnalyzeTree(tree), nil
}

// AnalyzeTree runs the analysis over an already parsed tree.
func (a *Analyzer) AnalyzeTree(tree *parser.Tree) []types.WrapCandidate {
	root := tree.Root()
	w := &walker{
		analyzer: a,
		path:     tree.Path,
		src:      tree.Source,
		bindings: CollectBindings(root, tree.Source, a.adapter),
		seen:     make(map[string]bool),
	}
	parser.Walk(root, w.visit)
	debug.LogAnalyze("%s: %d candidates\n", tree.Path, len(w.candidates))
	return w.candidates
}

// Subtrees that never hold user-facing strings.
var skippedKinds = map[string]bool{
	"comment":                true,
	"import_statement":       true,
	"type_annotation":        true,
	"type_arguments":         true,
	"type_parameters":        true,
	"type_alias_declaration": true,
	"interface_declaration":  true,
	"literal_type":           true,
	"template_literal_type":  true,
	"regex":                  true,
}

// Elements whose text content is code or preformatted data.
var codeElements = map[string]bool{
	"code": true, "pre": true, "kbd": true, "samp": true, "script": true, "style": true,
}

type walker struct {
	analyzer   *Analyzer
	path       string
	src        []byte
	bindings   adapter.Bindings
	seen       map[string]bool
	candidates []types.WrapCandidate
}

func (w *walker) visit(n *tree_sitter.Node) bool {
	kind := n.Kind()
	if skippedKinds[kind] {
		return false
	}
	switch kind {
	case "jsx_text", "html_character_reference":
		w.visitMarkupText(n)
		return false
	case "jsx_attribute":
		return w.visitAttribute(n)
	case "string":
		w.visitString(n)
		return false
	case "template_string":
		return w.visitTemplate(n)
	}
	return true
}

func (w *walker) visitMarkupText(n *tree_sitter.Node) {
	first, last, ok := parser.MarkupRun(n)
	if !ok {
		return
	}
	raw := string(w.src[first.StartByte():last.EndByte()])
	text := normalizeSpace(html.UnescapeString(raw))
	if text == "" {
		return
	}

	ancestors := w.ancestorElements(n)
	if w.analyzer.adapter.IsWrapped(ancestors, w.bindings) {
		return
	}
	for _, name := range ancestors {
		if codeElements[name] {
			return
		}
	}

	meta := types.Metadata{ParentKind: parentKind(n)}
	cls := w.analyzer.classifier.Classify(text, types.ContextMarkupText, meta)
	if !cls.Translatable {
		return
	}
	w.add(n, text, cls, types.StrategyMarkupWrap, types.ContextMarkupText)
}

// visitAttribute reports whether the walk should continue into the attribute.
func (w *walker) visitAttribute(n *tree_sitter.Node) bool {
	text, ok := parser.AttributeText(n, w.src)
	if !ok {
		return true
	}
	if w.analyzer.adapter.IsWrapped(w.ancestorElements(n), w.bindings) {
		return false
	}

	meta := w.metadata(n)
	meta.Attribute = parser.AttributeName(n, w.src)
	meta.ParentKind = n.Kind()
	cls := w.analyzer.classifier.Classify(text, types.ContextMarkupAttribute, meta)
	if !cls.Translatable {
		return true
	}
	w.add(n, text, cls, types.StrategyCallWrap, types.ContextMarkupAttribute)
	return false
}

func (w *walker) visitString(n *tree_sitter.Node) {
	if w.excluded(n) {
		return
	}
	text := strings.TrimSpace(parser.UnquoteJS(parser.Text(n, w.src)))
	w.classifyLiteral(n, text, types.ContextStringLiteral)
}

// visitTemplate reports whether the walk should continue into the template's
// substitutions. An accepted template is rewritten as a whole, so nothing
// inside it may become a separate candidate.
func (w *walker) visitTemplate(n *tree_sitter.Node) bool {
	if w.excluded(n) {
		return false
	}
	text := strings.TrimSpace(parser.TemplateText(n, w.src))
	return !w.classifyLiteral(n, text, types.ContextTemplateLiteral)
}

func (w *walker) classifyLiteral(n *tree_sitter.Node, text string, ctx types.Context) bool {
	meta := w.metadata(n)
	cls := w.analyzer.classifier.Classify(text, ctx, meta)
	if !cls.Translatable {
		return false
	}
	if cls.Confidence == types.ConfidenceMedium && meta.IsVariableInitializer() &&
		classifier.IsTranslatableVarName(meta.VariableName) {
		cls.Confidence = types.ConfidenceHigh
		cls.Reason = fmt.Sprintf("%s named %q", cls.Reason, meta.VariableName)
	}
	w.add(n, text, cls, types.StrategyCallWrap, ctx)
	return true
}

func (w *walker) add(n *tree_sitter.Node, text string, cls types.Classification, strategy types.Strategy, ctx types.Context) {
	line, col := parser.Position(n)
	key := types.PositionKey(line, col)
	if w.seen[key] {
		debug.LogAnalyze("%s: duplicate candidate at %s ignored\n", w.path, key)
		return
	}
	w.seen[key] = true
	w.candidates = append(w.candidates, types.WrapCandidate{
		File:       w.path,
		Line:       line,
		Column:     col,
		Text:       text,
		Confidence: cls.Confidence,
		Strategy:   strategy,
		Context:    ctx,
		Reason:     cls.Reason,
	})
}

// ancestorElements lists the names of the JSX elements enclosing n,
// innermost first.
func (w *walker) ancestorElements(n *tree_sitter.Node) []string {
	var names []string
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "jsx_element", "jsx_self_closing_element":
			names = append(names, parser.ElementName(p, w.src))
		}
	}
	return names
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
