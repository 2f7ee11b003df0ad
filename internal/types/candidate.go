package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Confidence is the classifier's certainty tier. Higher values are more certain.
type Confidence uint8

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "unknown"
	}
}

// AtLeast reports whether c is at or above min.
func (c Confidence) AtLeast(min Confidence) bool {
	return c >= min
}

// ParseConfidence converts "high", "medium" or "low" (any case) into a Confidence.
func ParseConfidence(s string) (Confidence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ConfidenceHigh, nil
	case "medium", "med":
		return ConfidenceMedium, nil
	case "low":
		return ConfidenceLow, nil
	default:
		return ConfidenceHigh, fmt.Errorf("unknown confidence level %q (want high, medium or low)", s)
	}
}

func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Confidence) UnmarshalText(b []byte) error {
	v, err := ParseConfidence(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Strategy selects the rewrite shape applied to a candidate.
type Strategy uint8

const (
	// StrategyMarkupWrap wraps markup text in the adapter's component.
	StrategyMarkupWrap Strategy = iota
	// StrategyCallWrap replaces a literal with a call to the translate function.
	StrategyCallWrap
)

func (s Strategy) String() string {
	switch s {
	case StrategyMarkupWrap:
		return "markup-wrap"
	case StrategyCallWrap:
		return "call-wrap"
	default:
		return "unknown"
	}
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "markup-wrap":
		*s = StrategyMarkupWrap
	case "call-wrap":
		*s = StrategyCallWrap
	default:
		return fmt.Errorf("unknown strategy %q", string(b))
	}
	return nil
}

// Context is the syntactic position a string was found in.
type Context uint8

const (
	ContextMarkupText Context = iota
	ContextMarkupAttribute
	ContextStringLiteral
	ContextTemplateLiteral
)

func (c Context) String() string {
	switch c {
	case ContextMarkupText:
		return "markup-text"
	case ContextMarkupAttribute:
		return "markup-attribute"
	case ContextStringLiteral:
		return "string-literal"
	case ContextTemplateLiteral:
		return "template-literal"
	default:
		return "unknown"
	}
}

// ParseContext converts the String form back into a Context.
func ParseContext(s string) (Context, error) {
	switch s {
	case "markup-text", "text":
		return ContextMarkupText, nil
	case "markup-attribute", "attribute":
		return ContextMarkupAttribute, nil
	case "string-literal", "string":
		return ContextStringLiteral, nil
	case "template-literal", "template":
		return ContextTemplateLiteral, nil
	default:
		return ContextStringLiteral, fmt.Errorf("unknown context %q", s)
	}
}

func (c Context) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Context) UnmarshalText(b []byte) error {
	v, err := ParseContext(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// WrapCandidate is a located string occurrence classified as translatable.
// Line is 1-based and Column is a 0-based byte column of the originating node's
// start; together they identify the candidate across two independent parses.
type WrapCandidate struct {
	File       string     `json:"file" yaml:"file"`
	Line       int        `json:"line" yaml:"line"`
	Column     int        `json:"column" yaml:"column"`
	Text       string     `json:"text" yaml:"text"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
	Strategy   Strategy   `json:"strategy" yaml:"strategy"`
	Context    Context    `json:"context" yaml:"context"`
	Reason     string     `json:"reason" yaml:"reason"`
}

// Key returns the "line:column" identity of the candidate.
func (c WrapCandidate) Key() string {
	return PositionKey(c.Line, c.Column)
}

func (c WrapCandidate) String() string {
	return fmt.Sprintf("%s:%d:%d [%s/%s] %q", c.File, c.Line, c.Column, c.Confidence, c.Strategy, c.Text)
}

// PositionKey formats a 1-based line and 0-based column as a lookup key.
func PositionKey(line, column int) string {
	return strconv.Itoa(line) + ":" + strconv.Itoa(column)
}

// TransformResult is the outcome of rewriting one file.
type TransformResult struct {
	Output        []byte          `json:"-" yaml:"-"`
	WrappedCount  int             `json:"wrapped_count" yaml:"wrapped_count"`
	Wrapped       []WrapCandidate `json:"wrapped" yaml:"wrapped"`
	Skipped       []WrapCandidate `json:"skipped" yaml:"skipped"`
	HooksInjected int             `json:"hooks_injected" yaml:"hooks_injected"`
	ImportsAdded  []string        `json:"imports_added,omitempty" yaml:"imports_added,omitempty"`
}

// Changed reports whether the transform produced any edit.
func (r *TransformResult) Changed() bool {
	return r.WrappedCount > 0 || r.HooksInjected > 0 || len(r.ImportsAdded) > 0
}

// MarshalJSON includes the rewritten source as a string.
func (r *TransformResult) MarshalJSON() ([]byte, error) {
	type alias TransformResult
	return json.Marshal(struct {
		*alias
		Output string `json:"output"`
	}{alias: (*alias)(r), Output: string(r.Output)})
}
