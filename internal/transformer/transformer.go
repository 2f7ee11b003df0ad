// Package transformer applies wrap candidates to a source file. It re-parses
// the file on its own and locates every candidate by its "line:column" key, so
// candidates may be filtered or confirmed between analysis and rewriting.
//
// All rewrites are byte-range edits over the original buffer: bytes outside
// an edit are copied through unchanged.
package transformer

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/errors"
	"github.com/standardbeagle/lingo/internal/parser"
	"github.com/standardbeagle/lingo/internal/types"
)

// Transformer rewrites files for one adapter. It is safe for concurrent use.
type Transformer struct {
	adapter adapter.FrameworkAdapter
}

// New creates a transformer for fa. A nil adapter selects the default.
func New(fa adapter.FrameworkAdapter) *Transformer {
	if fa == nil {
		fa = adapter.ReactI18next()
	}
	return &Transformer{adapter: fa}
}

// Transform rewrites src with the given candidates using fa.
func Transform(path string, src []byte, cands []types.WrapCandidate, fa adapter.FrameworkAdapter) (*types.TransformResult, error) {
	return New(fa).Transform(path, src, cands)
}

// Transform applies cands to src. Candidates that cannot be located, whose
// strategy disagrees with the node found at their key, or whose edit would
// overlap another are reported in Skipped. The only errors are a source that
// does not parse (*errors.ParseError) and an output that no longer parses
// (*errors.TransformError).
func (t *Transformer) Transform(path string, src []byte, cands []types.WrapCandidate) (*types.TransformResult, error) {
	tree, err := parser.Parse(path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.Root()
	rw := &rewriter{
		adapter:  t.adapter,
		src:      tree.Source,
		cands:    cands,
		lookup:   make(map[string]int, len(cands)),
		bindings: analyzer.CollectBindings(root, tree.Source, t.adapter),
		imports:  scanImports(root, tree.Source, t.adapter.ImportSource()),
	}
	for i, c := range cands {
		key := c.Key()
		if _, dup := rw.lookup[key]; dup {
			continue
		}
		rw.lookup[key] = i
	}

	parser.Walk(root, rw.visit)

	kept, dropped := resolveEdits(rw.wraps)
	for _, e := range dropped {
		debug.LogTransform("%s: edit for %s overlaps an earlier edit\n", path, cands[e.order].Key())
	}

	result := &types.TransformResult{}
	wrapped := make(map[int]bool, len(kept))
	usedMarkup := false
	var components []*tree_sitter.Node
	seenComponent := make(map[uintptr]bool)
	for _, e := range kept {
		wrapped[e.order] = true
		if cands[e.order].Strategy == types.StrategyMarkupWrap {
			usedMarkup = true
			continue
		}
		fn := rw.owners[e.order]
		if fn != nil && !seenComponent[fn.Id()] {
			seenComponent[fn.Id()] = true
			components = append(components, fn)
		}
	}
	for i, c := range cands {
		if wrapped[i] {
			result.Wrapped = append(result.Wrapped, c)
		} else {
			result.Skipped = append(result.Skipped, c)
		}
	}
	result.WrappedCount = len(result.Wrapped)

	edits := kept
	order := len(cands)
	for _, fn := range components {
		hook := rw.injectHook(fn, order)
		if len(hook) == 0 {
			continue
		}
		edits = append(edits, hook...)
		order += len(hook)
		result.HooksInjected++
	}

	var missing []string
	if usedMarkup && !rw.imports.has(t.adapter.ComponentName()) {
		missing = append(missing, t.adapter.ComponentName())
	}
	if result.HooksInjected > 0 && !rw.imports.has(t.adapter.HookName()) {
		missing = append(missing, t.adapter.HookName())
	}
	if len(missing) > 0 {
		edits = append(edits, rw.importEdit(missing, order))
		result.ImportsAdded = missing
	}

	if len(edits) == 0 {
		result.Output = append([]byte(nil), src...)
		return result, nil
	}

	out, lost := applyEdits(tree.Source, edits)
	for _, e := range lost {
		debug.LogTransform("%s: dropped overlapping insertion at byte %d\n", path, e.start)
	}
	result.Output = out

	check, err := parser.ParseDialect(path, tree.Dialect, out)
	if err != nil {
		return nil, errors.NewTransformError("verify", path, fmt.Errorf("rewritten source does not parse: %w", err))
	}
	check.Close()

	debug.LogTransform("%s: wrapped %d, skipped %d, hooks %d, imports %v\n",
		path, result.WrappedCount, len(result.Skipped), result.HooksInjected, result.ImportsAdded)
	return result, nil
}

type rewriter struct {
	adapter  adapter.FrameworkAdapter
	src      []byte
	cands    []types.WrapCandidate
	lookup   map[string]int
	bindings adapter.Bindings
	imports  importScan

	wraps  []textEdit
	owners map[int]*tree_sitter.Node
}

func (rw *rewriter) visit(n *tree_sitter.Node) bool {
	switch n.Kind() {
	case "jsx_text", "html_character_reference":
		first, last, ok := parser.MarkupRun(n)
		if !ok {
			return false
		}
		idx, hit := rw.probe(n, types.StrategyMarkupWrap)
		if !hit {
			return false
		}
		comp := rw.adapter.ComponentName()
		raw := string(rw.src[first.StartByte():last.EndByte()])
		rw.wrap(idx, first.StartByte(), last.EndByte(), "<"+comp+">"+raw+"</"+comp+">", nil)
		return false

	case "jsx_attribute":
		lit, container := parser.AttributeLiteral(n)
		if lit == nil {
			return true
		}
		idx, hit := rw.probe(n, types.StrategyCallWrap)
		if !hit {
			return true
		}
		target := lit
		if container != nil {
			target = container
		}
		call := rw.call(rw.cands[idx].Text, rw.quoteOf(lit))
		rw.wrap(idx, target.StartByte(), target.EndByte(), "{"+call+"}", n)
		return false

	case "string":
		if parser.IsAttributeValue(n) {
			return false
		}
		if idx, hit := rw.probe(n, types.StrategyCallWrap); hit {
			rw.wrap(idx, n.StartByte(), n.EndByte(), rw.call(rw.cands[idx].Text, rw.quoteOf(n)), n)
		}
		return false

	case "template_string":
		if parser.IsAttributeValue(n) {
			return false
		}
		idx, hit := rw.probe(n, types.StrategyCallWrap)
		if !hit {
			return true
		}
		rw.wrap(idx, n.StartByte(), n.EndByte(), rw.call(rw.cands[idx].Text, rw.imports.quote), n)
		return false
	}
	return true
}

// probe looks up the candidate keyed at n. A candidate with another strategy
// stays in the lookup and ends up skipped.
func (rw *rewriter) probe(n *tree_sitter.Node, strategy types.Strategy) (int, bool) {
	key := parser.Key(n)
	idx, ok := rw.lookup[key]
	if !ok {
		return -1, false
	}
	if rw.cands[idx].Strategy != strategy {
		debug.LogTransform("strategy mismatch at %s: candidate is %s, node is %s\n", key, rw.cands[idx].Strategy, n.Kind())
		return -1, false
	}
	delete(rw.lookup, key)
	return idx, true
}

// wrap records the edit for candidate idx. For call wraps at is the node used
// to find the enclosing component. A call wrap in the component's parameter
// list is dropped: the hook binding only exists inside the body.
func (rw *rewriter) wrap(idx int, start, end uint, text string, at *tree_sitter.Node) {
	var owner *tree_sitter.Node
	if at != nil {
		owner = componentOf(at, rw.src)
		if owner != nil && inParameters(owner, at) {
			debug.LogTransform("%s: call wrap in the parameters of a component\n", rw.cands[idx].Key())
			return
		}
	}
	rw.wraps = append(rw.wraps, textEdit{start: int(start), end: int(end), text: text, order: idx})
	if at == nil {
		return
	}
	if rw.owners == nil {
		rw.owners = make(map[int]*tree_sitter.Node)
	}
	rw.owners[idx] = owner
}

// inParameters reports whether n lies in fn's parameter list.
func inParameters(fn, n *tree_sitter.Node) bool {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		params = fn.ChildByFieldName("parameter")
	}
	return params != nil && n.StartByte() >= params.StartByte() && n.EndByte() <= params.EndByte()
}

func (rw *rewriter) call(text string, quote byte) string {
	return rw.adapter.FunctionName() + "(" + parser.QuoteJS(text, quote) + ")"
}

// quoteOf keeps the quote character of the literal being replaced.
func (rw *rewriter) quoteOf(lit *tree_sitter.Node) byte {
	if lit.Kind() == "string" {
		if q := rw.src[lit.StartByte()]; q == '\'' || q == '"' {
			return q
		}
	}
	return rw.imports.quote
}

// Calls whose function argument is still the component itself.
var componentWrappers = map[string]bool{
	"memo": true, "React.memo": true, "forwardRef": true, "React.forwardRef": true,
}

// componentOf returns the nearest enclosing function whose name starts with
// an uppercase letter, or nil.
func componentOf(n *tree_sitter.Node, src []byte) *tree_sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if !parser.IsFunction(p) {
			continue
		}
		if name := functionName(p, src); isComponentName(name) {
			return p
		}
	}
	return nil
}

func isComponentName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// functionName returns the declared name of fn, or the name of the variable
// or assignment target it is bound to, looking through parentheses and
// memo/forwardRef wrappers. Class methods have no component name.
func functionName(fn *tree_sitter.Node, src []byte) string {
	if fn.Kind() == "method_definition" {
		return ""
	}
	if name := fn.ChildByFieldName("name"); name != nil {
		return parser.Text(name, src)
	}

	node := fn
	for {
		p := node.Parent()
		if p == nil {
			return ""
		}
		switch p.Kind() {
		case "parenthesized_expression":
			node = p
		case "arguments":
			call := p.Parent()
			if call == nil || !componentWrappers[parser.CalleeName(call, src)] {
				return ""
			}
			node = call
		case "variable_declarator":
			if name := p.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				return parser.Text(name, src)
			}
			return ""
		case "assignment_expression":
			if left := p.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
				return parser.Text(left, src)
			}
			return ""
		default:
			return ""
		}
	}
}

// indentUnit guesses the file's indentation step from its indented lines.
func indentUnit(src []byte) string {
	smallest := 0
	for _, line := range strings.Split(string(src), "\n") {
		if strings.HasPrefix(line, "\t") {
			return "\t"
		}
		rest := strings.TrimLeft(line, " ")
		n := len(line) - len(rest)
		if n == 0 || rest == "" || strings.HasPrefix(rest, "*") {
			continue
		}
		if smallest == 0 || n < smallest {
			smallest = n
		}
	}
	if smallest == 0 || smallest > 8 {
		return "  "
	}
	return strings.Repeat(" ", smallest)
}
