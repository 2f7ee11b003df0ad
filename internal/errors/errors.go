// Package errors holds the typed errors lingo reports for parse, transform,
// file and configuration failures.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
)

// Kind classifies an error for log fields and MCP responses.
type Kind string

const (
	KindParse       Kind = "parse"
	KindTransform   Kind = "transform"
	KindNotFound    Kind = "file_not_found"
	KindPermission  Kind = "permission"
	KindUnsupported Kind = "unsupported"
	KindConfig      Kind = "config"
)

var (
	// ErrUnsupportedFile is returned for files whose extension has no parser.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrSyntax is the cause of a ParseError built from a tree with error nodes.
	ErrSyntax = errors.New("syntax error")
)

// cause is embedded by every error type in this package.
type cause struct {
	Kind Kind
	Err  error
	At   time.Time
}

func newCause(k Kind, err error) cause {
	return cause{Kind: k, Err: err, At: time.Now()}
}

func (c cause) Unwrap() error { return c.Err }

// ParseError is a file that could not be parsed at all. Line is 1-based;
// Token is the source text around the first error node, if any.
type ParseError struct {
	cause
	Path   string
	Line   int
	Column int
	Token  string
}

func NewParseError(path string, line, column int, token string, err error) *ParseError {
	return &ParseError{cause: newCause(KindParse, err), Path: path, Line: line, Column: column, Token: token}
}

func (e *ParseError) Error() string {
	near := ""
	if e.Token != "" {
		near = fmt.Sprintf(" near %q", e.Token)
	}
	return fmt.Sprintf("%s:%d:%d: cannot parse%s: %v", e.Path, e.Line, e.Column, near, e.Err)
}

// TransformError is a failure while rewriting a file that did parse.
type TransformError struct {
	cause
	Path  string
	Stage string
}

func NewTransformError(stage, path string, err error) *TransformError {
	return &TransformError{cause: newCause(KindTransform, err), Path: path, Stage: stage}
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("%s: %s step of wrap: %v", e.Path, e.Stage, e.Err)
}

// FileError wraps an I/O failure. Its Kind is derived from the cause.
type FileError struct {
	cause
	Path string
	Op   string
}

func NewFileError(op, path string, err error) *FileError {
	return &FileError{cause: newCause(fileKind(err), err), Path: path, Op: op}
}

func fileKind(err error) Kind {
	switch {
	case errors.Is(err, ErrUnsupportedFile):
		return KindUnsupported
	case errors.Is(err, fs.ErrPermission),
		strings.HasSuffix(err.Error(), "permission denied"),
		strings.HasSuffix(err.Error(), "access denied"):
		return KindPermission
	}
	return KindNotFound
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// ConfigError names the offending setting and the value it had.
type ConfigError struct {
	cause
	Field string
	Value string
}

func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{cause: newCause(KindConfig, err), Field: field, Value: value}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

// MultiError collects per-file failures from a project run.
type MultiError struct {
	Errors []error
}

// NewMultiError drops nil entries from errs.
func NewMultiError(errs []error) *MultiError {
	m := &MultiError{}
	for _, err := range errs {
		if err != nil {
			m.Errors = append(m.Errors, err)
		}
	}
	return m
}

// ErrorOrNil returns nil when nothing was collected.
func (m *MultiError) ErrorOrNil() error {
	if m == nil || len(m.Errors) == 0 {
		return nil
	}
	return m
}

func (m *MultiError) Error() string {
	switch len(m.Errors) {
	case 0:
		return "no errors"
	case 1:
		return m.Errors[0].Error()
	}
	msgs := make([]string, len(m.Errors))
	for i, err := range m.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(m.Errors), strings.Join(msgs, "; "))
}

func (m *MultiError) Unwrap() []error { return m.Errors }

// IsParseError reports whether err is, or wraps, a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// KindOf returns the Kind of the first typed error in err's chain.
func KindOf(err error) (Kind, bool) {
	var k interface{ kind() Kind }
	if errors.As(err, &k) {
		return k.kind(), true
	}
	return "", false
}

func (c cause) kind() Kind { return c.Kind }
