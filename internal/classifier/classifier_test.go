package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/lingo/internal/types"
)

func attr(name string) types.Metadata {
	return types.Metadata{Attribute: name}
}

func TestClassify_TrivialInputs(t *testing.T) {
	for _, ctx := range []types.Context{
		types.ContextMarkupText, types.ContextMarkupAttribute,
		types.ContextStringLiteral, types.ContextTemplateLiteral,
	} {
		for _, text := range []string{"", "   ", "x", "...", "42", "€"} {
			got := Classify(text, ctx, attr("placeholder"))
			assert.False(t, got.Translatable, "%q in %s", text, ctx)
			assert.Equal(t, types.ConfidenceHigh, got.Confidence, "%q in %s", text, ctx)
		}
	}
}

func TestClassify_UnconditionalSkips(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"url", "https://example.com/docs"},
		{"protocol relative url", "//cdn.example.com/app.js"},
		{"www url", "www.example.com"},
		{"mailto", "mailto:support@example.com"},
		{"email", "support@example.com"},
		{"relative path", "./components/Button"},
		{"parent path", "../assets/logo.svg"},
		{"absolute path", "/api/v1/users"},
		{"home path", "~/projects"},
		{"windows path", `C:\Users\me`},
		{"nested path", "src/components/Header"},
		{"file with dir", "images/logo.png"},
		{"scoped package", "@mui/material"},
		{"bare file", "index.tsx"},
		{"hex color", "#ff00aa"},
		{"short hex", "#fff"},
		{"rgb", "rgb(255, 0, 0)"},
		{"hsla", "hsla(120, 100%, 50%, 0.3)"},
		{"css unit", "16px"},
		{"css units", "0 4px 12rem"},
		{"calc", "calc(100% - 2rem)"},
		{"mime", "application/json"},
		{"image mime", "image/svg+xml"},
		{"date format", "YYYY-MM-DD"},
		{"time format", "HH:mm:ss"},
		{"long date", "dddd, MMMM Do YYYY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Skip rules dominate even an allow-listed attribute and markup text
			for _, ctx := range []types.Context{types.ContextMarkupAttribute, types.ContextMarkupText, types.ContextStringLiteral} {
				got := Classify(tt.text, ctx, types.Metadata{Attribute: "title", ParentKind: types.ParentVariableDeclarator})
				assert.False(t, got.Translatable, "%q in %s: %s", tt.text, ctx, got.Reason)
				assert.Equal(t, types.ConfidenceHigh, got.Confidence)
			}
		})
	}
}

func TestClassify_AttributeRules(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		attribute    string
		translatable bool
		confidence   types.Confidence
	}{
		{"utility classes", "flex items-center p-4", "className", false, types.ConfidenceHigh},
		{"prose in className still skipped", "Hello world again", "className", false, types.ConfidenceHigh},
		{"placeholder", "Enter your name", "placeholder", true, types.ConfidenceHigh},
		{"alt looks like identifier", "MyLogo", "alt", true, types.ConfidenceHigh},
		{"aria label single word", "close", "aria-label", true, types.ConfidenceHigh},
		{"case insensitive allow", "Choose one", "Title", true, types.ConfidenceHigh},
		{"test id", "Submit form button", "data-testid", false, types.ConfidenceHigh},
		{"generic data attribute", "Some value here", "data-state", false, types.ConfidenceHigh},
		{"allow-listed data attribute", "More details here", "data-tooltip", true, types.ConfidenceHigh},
		{"event handler", "Do something now", "onClick", false, types.ConfidenceHigh},
		{"unknown attribute falls through", "Save all changes", "value", true, types.ConfidenceMedium},
		{"unknown attribute single word", "Submit", "value", true, types.ConfidenceLow},
		{"unknown attribute identifier", "submitButton", "value", false, types.ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, types.ContextMarkupAttribute, attr(tt.attribute))
			assert.Equal(t, tt.translatable, got.Translatable, got.Reason)
			assert.Equal(t, tt.confidence, got.Confidence, got.Reason)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestClassify_MarkupTextShortcut(t *testing.T) {
	got := Classify("Welcome to our app", types.ContextMarkupText, types.Metadata{})
	assert.True(t, got.Translatable)
	assert.Equal(t, types.ConfidenceHigh, got.Confidence)

	// Identifier-looking markup text is still prose
	got = Classify("GitHub", types.ContextMarkupText, types.Metadata{})
	assert.True(t, got.Translatable)
	assert.Equal(t, types.ConfidenceHigh, got.Confidence)
}

func TestClassify_IdentifierShapes(t *testing.T) {
	for _, text := range []string{
		"submitButton", "UserProfile", "MAX_RETRIES", "primary-button", "user_name", "common.save",
	} {
		got := Classify(text, types.ContextStringLiteral, types.Metadata{ParentKind: types.ParentVariableDeclarator})
		assert.False(t, got.Translatable, text)
		assert.Equal(t, types.ConfidenceHigh, got.Confidence, text)
	}
}

func TestClassify_UtilityClasses(t *testing.T) {
	for _, text := range []string{
		"flex items-center p-4",
		"md:hidden bg-white dark:bg-gray-900",
		"btn btn-primary",
		"w-full max-w-[320px] rounded-lg shadow",
	} {
		got := Classify(text, types.ContextStringLiteral, types.Metadata{})
		assert.False(t, got.Translatable, text)
	}

	// Lowercase prose is not a class list
	got := Classify("please try again later", types.ContextStringLiteral, types.Metadata{})
	assert.True(t, got.Translatable)
}

func TestClassify_CallAndThrowContext(t *testing.T) {
	tests := []struct {
		call string
	}{
		{"console.log"},
		{"console.error"},
		{"logger.debug"},
		{"require"},
		{"JSON.parse"},
		{"document.querySelector"},
		{"el.setAttribute"},
		{"window.localStorage.getItem"},
		{"node.classList.add"},
		{"encodeURIComponent"},
		{"RegExp"},
	}
	for _, tt := range tests {
		got := Classify("Something went wrong here", types.ContextStringLiteral, types.Metadata{Call: tt.call})
		assert.False(t, got.Translatable, tt.call)
		assert.Equal(t, types.ConfidenceHigh, got.Confidence, tt.call)
	}

	got := Classify("Something went wrong here", types.ContextStringLiteral, types.Metadata{InThrow: true, Call: "Error"})
	assert.False(t, got.Translatable)

	// A user-facing call is not excluded
	got = Classify("Something went wrong here", types.ContextStringLiteral, types.Metadata{Call: "toast.error"})
	assert.True(t, got.Translatable)
}

func TestClassify_ConfidenceTiers(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		ctx          types.Context
		meta         types.Metadata
		translatable bool
		confidence   types.Confidence
	}{
		{"variable initializer", "Hello", types.ContextStringLiteral, types.Metadata{ParentKind: types.ParentVariableDeclarator}, true, types.ConfidenceMedium},
		{"three words", "Save your changes", types.ContextStringLiteral, types.Metadata{}, true, types.ConfidenceMedium},
		{"two words", "Save changes", types.ContextStringLiteral, types.Metadata{}, true, types.ConfidenceLow},
		{"word and number", "Total 5", types.ContextStringLiteral, types.Metadata{}, false, types.ConfidenceLow},
		{"word and number in template", "Total 5", types.ContextTemplateLiteral, types.Metadata{}, true, types.ConfidenceLow},
		{"capitalized template", "Loading", types.ContextTemplateLiteral, types.Metadata{}, true, types.ConfidenceLow},
		{"capitalized bare string", "Loading", types.ContextStringLiteral, types.Metadata{}, false, types.ConfidenceLow},
		{"lowercase word", "loading", types.ContextTemplateLiteral, types.Metadata{}, false, types.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, tt.ctx, tt.meta)
			assert.Equal(t, tt.translatable, got.Translatable, got.Reason)
			assert.Equal(t, tt.confidence, got.Confidence, got.Reason)
		})
	}
}

func TestClassify_MonotonicConfidence(t *testing.T) {
	phrases := []string{"You have new messages", "Are you sure about this", "Click here to continue"}
	for _, p := range phrases {
		for _, ctx := range []types.Context{types.ContextStringLiteral, types.ContextTemplateLiteral, types.ContextMarkupAttribute} {
			got := Classify(p, ctx, attr("value"))
			if got.Translatable {
				assert.NotEqual(t, types.ConfidenceLow, got.Confidence, "%q in %s", p, ctx)
			}
		}
	}

	for _, w := range []string{"Hello", "world", "Cancel"} {
		for _, ctx := range []types.Context{types.ContextStringLiteral, types.ContextTemplateLiteral} {
			got := Classify(w, ctx, types.Metadata{})
			if got.Translatable {
				assert.NotEqual(t, types.ConfidenceHigh, got.Confidence, "%q in %s", w, ctx)
			}
		}
	}
}

func TestClassify_Total(t *testing.T) {
	inputs := []string{
		"", "\x00", "\xff\xfe", strings.Repeat("a", 10000), "日本語のテキスト", "🙂🙂", "a b", "{value}",
	}
	for _, in := range inputs {
		for _, ctx := range []types.Context{types.ContextMarkupText, types.ContextMarkupAttribute, types.ContextStringLiteral, types.ContextTemplateLiteral} {
			assert.NotPanics(t, func() {
				got := Classify(in, ctx, types.Metadata{})
				assert.NotEmpty(t, got.Reason)
			})
		}
	}
}

func TestNew_WithAttributeLists(t *testing.T) {
	c := New(WithAttributeLists([]string{"headline"}, []string{"placeholder"}))

	got := c.Classify("Read all about it", types.ContextMarkupAttribute, attr("headline"))
	assert.True(t, got.Translatable)
	assert.Equal(t, types.ConfidenceHigh, got.Confidence)

	got = c.Classify("Enter your name", types.ContextMarkupAttribute, attr("placeholder"))
	assert.False(t, got.Translatable)

	// nil keeps the default list
	c = New(WithAttributeLists(nil, []string{"tooltip"}))
	got = c.Classify("Enter your name", types.ContextMarkupAttribute, attr("placeholder"))
	assert.True(t, got.Translatable)
	assert.Equal(t, types.ConfidenceHigh, got.Confidence)
}

func TestIsTranslatableVarName(t *testing.T) {
	for _, name := range []string{"label", "LABEL", "submitLabel", "errorMessage", "pageTitle", "buttonText", "emptyStatePlaceholder"} {
		assert.True(t, IsTranslatableVarName(name), name)
	}
	for _, name := range []string{"", "url", "className", "context", "count", "labels"} {
		assert.False(t, IsTranslatableVarName(name), name)
	}
}
