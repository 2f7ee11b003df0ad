// Package parser wraps tree-sitter for the JavaScript family of dialects.
//
// Parsers are not safe for concurrent use, so each dialect keeps its own
// sync.Pool and a parser is only ever held by one goroutine at a time. The
// source is copied before parsing so the returned tree never aliases a buffer
// the caller might reuse.
package parser

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/errors"
)

// Dialect selects the grammar used for a file.
type Dialect string

const (
	DialectJavaScript Dialect = "javascript"
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
)

var extensionDialects = map[string]Dialect{
	".js":  DialectJavaScript,
	".jsx": DialectJavaScript,
	".mjs": DialectJavaScript,
	".cjs": DialectJavaScript,
	".ts":  DialectTypeScript,
	".mts": DialectTypeScript,
	".cts": DialectTypeScript,
	".tsx": DialectTSX,
}

// DialectFor picks the dialect from the file extension.
func DialectFor(path string) (Dialect, bool) {
	d, ok := extensionDialects[strings.ToLower(filepath.Ext(path))]
	return d, ok
}

// IsSupported reports whether path has an extension this package can parse.
func IsSupported(path string) bool {
	_, ok := DialectFor(path)
	return ok
}

// SupportedExtensions lists the recognised extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionDialects))
	for ext := range extensionDialects {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// parserPoolData holds the pool and lazily created language for one dialect
type parserPoolData struct {
	pool     sync.Pool
	once     sync.Once
	language *tree_sitter.Language
	load     func() unsafe.Pointer
}

// Dialect-specific parser pools so that parallel batches never contend on a
// single parser
var parserPools = map[Dialect]*parserPoolData{
	DialectJavaScript: {load: tree_sitter_javascript.Language},
	DialectTypeScript: {load: tree_sitter_typescript.LanguageTypescript},
	DialectTSX:        {load: tree_sitter_typescript.LanguageTSX},
}

func getParser(d Dialect) (*tree_sitter.Parser, *parserPoolData) {
	data := parserPools[d]
	data.once.Do(func() {
		data.language = tree_sitter.NewLanguage(data.load())
		data.pool.New = func() any {
			p := tree_sitter.NewParser()
			if err := p.SetLanguage(data.language); err != nil {
				debug.Printf("parser: cannot load %s grammar: %v\n", d, err)
				return nil
			}
			return p
		}
	})
	p, _ := data.pool.Get().(*tree_sitter.Parser)
	return p, data
}

// Tree is a parsed file. Close must be called to release the native tree.
type Tree struct {
	Path    string
	Dialect Dialect
	Source  []byte

	tree *tree_sitter.Tree
}

// Root returns the program node.
func (t *Tree) Root() *tree_sitter.Node {
	return t.tree.RootNode()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Parse parses src with the dialect implied by path. A file that does not
// parse cleanly is reported as a *errors.ParseError positioned at the first
// syntax error; no partial tree is returned.
func Parse(path string, src []byte) (*Tree, error) {
	d, ok := DialectFor(path)
	if !ok {
		return nil, errors.NewFileError("parse", path, errors.ErrUnsupportedFile)
	}
	return ParseDialect(path, d, src)
}

// ParseDialect is Parse with an explicit dialect.
func ParseDialect(path string, d Dialect, src []byte) (*Tree, error) {
	if _, ok := parserPools[d]; !ok {
		return nil, errors.NewFileError("parse", path, errors.ErrUnsupportedFile)
	}

	p, data := getParser(d)
	if p == nil {
		return nil, errors.NewParseError(path, 0, 0, "", errors.ErrSyntax)
	}
	defer data.pool.Put(p)

	buf := make([]byte, len(src))
	copy(buf, src)

	tree := p.Parse(buf, nil)
	if tree == nil {
		return nil, errors.NewParseError(path, 0, 0, "", errors.ErrSyntax)
	}

	root := tree.RootNode()
	if root.HasError() {
		line, col, token := 0, 0, ""
		if bad := FirstError(root); bad != nil {
			line, col = Position(bad)
			token = snippet(bad.Utf8Text(buf))
		}
		tree.Close()
		return nil, errors.NewParseError(path, line, col, token, errors.ErrSyntax)
	}

	return &Tree{Path: path, Dialect: d, Source: buf, tree: tree}, nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 24 {
		s = s[:24] + "..."
	}
	return s
}
