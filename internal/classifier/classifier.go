// Package classifier decides whether a literal string is user-facing text.
//
// The rules run in a fixed order and the first rule that matches decides the
// outcome. Later rules assume earlier ones have already excluded the trivial
// cases, so the order must not be changed: in particular the attribute
// allow-list is consulted after the unconditional skips but before the
// identifier-shape skip, which is what lets alt="MyLogo" through.
package classifier

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/standardbeagle/lingo/internal/types"
)

// DefaultTranslatableAttributes are markup attributes whose values are shown to users.
var DefaultTranslatableAttributes = []string{
	"placeholder", "title", "alt", "label", "description", "caption", "summary",
	"aria-label", "aria-description", "aria-placeholder", "aria-roledescription", "aria-valuetext",
	"tooltip", "helperText", "helpText", "hint", "heading", "subtitle", "message",
	"errorMessage", "emptyText", "confirmText", "cancelText", "okText", "buttonText",
	"data-tooltip", "data-title",
}

// DefaultNonTranslatableAttributes are markup attributes whose values are never prose.
var DefaultNonTranslatableAttributes = []string{
	"class", "className", "style", "id", "key", "ref", "name", "type", "role",
	"href", "src", "srcSet", "action", "method", "target", "rel", "htmlFor", "for",
	"lang", "dir", "as", "to", "variant", "size", "color", "align", "mode", "theme",
	"autoComplete", "inputMode", "pattern", "accept", "encType", "form", "slot",
	"width", "height", "tabIndex", "xmlns", "viewBox", "d", "fill", "stroke",
	"fillRule", "clipRule", "strokeWidth", "strokeLinecap", "strokeLinejoin", "transform",
	"testId", "data-testid", "data-test", "data-cy", "i18nKey", "ns",
}

// Classifier applies the classification rules with a configurable pair of
// attribute lists. The zero value is not usable; call New.
type Classifier struct {
	translatableAttrs    map[string]bool
	nonTranslatableAttrs map[string]bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithAttributeLists replaces the attribute allow-list and deny-list. A nil
// slice keeps the corresponding default.
func WithAttributeLists(translatable, nonTranslatable []string) Option {
	return func(c *Classifier) {
		if translatable != nil {
			c.translatableAttrs = attributeSet(translatable)
		}
		if nonTranslatable != nil {
			c.nonTranslatableAttrs = attributeSet(nonTranslatable)
		}
	}
}

// New creates a classifier with the default attribute lists, modified by opts.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		translatableAttrs:    attributeSet(DefaultTranslatableAttributes),
		nonTranslatableAttrs: attributeSet(DefaultNonTranslatableAttributes),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// Classify runs the default classifier.
func Classify(text string, ctx types.Context, meta types.Metadata) types.Classification {
	return defaultClassifier.Classify(text, ctx, meta)
}

// Classify returns a definite verdict for every input.
func (c *Classifier) Classify(text string, ctx types.Context, meta types.Metadata) types.Classification {
	s := strings.TrimSpace(text)

	if reason, skip := unconditionalSkip(s); skip {
		return reject(types.ConfidenceHigh, reason)
	}

	if ctx == types.ContextMarkupAttribute {
		name := meta.Attribute
		lower := strings.ToLower(name)
		switch {
		case c.nonTranslatableAttrs[lower]:
			return reject(types.ConfidenceHigh, fmt.Sprintf("attribute %q is not translatable", name))
		case strings.HasPrefix(lower, "data-") && !c.translatableAttrs[lower]:
			return reject(types.ConfidenceHigh, fmt.Sprintf("data attribute %q", name))
		case eventHandlerPattern.MatchString(name):
			return reject(types.ConfidenceHigh, fmt.Sprintf("event handler attribute %q", name))
		case c.translatableAttrs[lower]:
			return accept(types.ConfidenceHigh, fmt.Sprintf("translatable attribute %q", name))
		}
	}

	if ctx == types.ContextMarkupText && letterRunPattern.MatchString(s) {
		return accept(types.ConfidenceHigh, "markup text")
	}

	if !strings.ContainsFunc(s, unicode.IsSpace) && isIdentifierShape(s) {
		return reject(types.ConfidenceHigh, "looks like a code identifier")
	}

	if isUtilityClassList(s) {
		return reject(types.ConfidenceHigh, "looks like utility CSS classes")
	}

	if meta.InThrow {
		return reject(types.ConfidenceHigh, "thrown error message")
	}
	if isNonTranslatableCall(meta.Call) {
		return reject(types.ConfidenceHigh, fmt.Sprintf("argument to %s()", meta.Call))
	}

	if meta.IsVariableInitializer() {
		return accept(types.ConfidenceMedium, "variable initializer")
	}

	words := strings.Fields(s)
	if len(words) >= 3 {
		return accept(types.ConfidenceMedium, fmt.Sprintf("%d-word phrase", len(words)))
	}
	if len(words) == 2 && letterPattern.MatchString(words[0]) && letterPattern.MatchString(words[1]) {
		return accept(types.ConfidenceLow, "two-word phrase")
	}
	if ctx != types.ContextStringLiteral {
		if r, _ := utf8.DecodeRuneInString(s); unicode.IsUpper(r) {
			return accept(types.ConfidenceLow, "capitalized word")
		}
	}

	return reject(types.ConfidenceLow, "single ambiguous word")
}

func unconditionalSkip(s string) (string, bool) {
	switch {
	case s == "":
		return "empty", true
	case utf8.RuneCountInString(s) == 1:
		return "single character", true
	case !letterPattern.MatchString(s):
		return "no letters", true
	case urlPattern.MatchString(s):
		return "URL", true
	case emailPattern.MatchString(s):
		return "email address", true
	case isPath(s):
		return "file path", true
	case hexColorPattern.MatchString(s):
		return "hex color", true
	case colorFunctionPattern.MatchString(s):
		return "color function", true
	case cssUnitPattern.MatchString(s), cssFunctionPattern.MatchString(s):
		return "CSS value", true
	case mimePattern.MatchString(s):
		return "MIME type", true
	case isDateFormat(s):
		return "date format", true
	}
	return "", false
}

func accept(c types.Confidence, reason string) types.Classification {
	return types.Classification{Translatable: true, Confidence: c, Reason: reason}
}

func reject(c types.Confidence, reason string) types.Classification {
	return types.Classification{Translatable: false, Confidence: c, Reason: reason}
}

func attributeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

// translatableVarNames is matched case-insensitively against the whole name or its suffix.
var translatableVarNames = []string{
	"label", "message", "title", "description", "placeholder", "caption", "heading",
	"subtitle", "tooltip", "hint", "summary", "greeting", "prompt", "notice",
	"errormessage", "successmessage", "warningmessage", "buttontext", "buttonlabel",
	"helpertext", "helptext", "emptytext", "linktext", "alttext", "arialabel",
	"confirmtext", "canceltext",
}

// IsTranslatableVarName reports whether a variable name suggests it holds
// user-facing text. It never decides translatability by itself; callers use it
// to raise the confidence of an already accepted candidate.
func IsTranslatableVarName(name string) bool {
	lower := strings.ToLower(name)
	if lower == "" {
		return false
	}
	for _, v := range translatableVarNames {
		if lower == v || strings.HasSuffix(lower, v) {
			return true
		}
	}
	return false
}
