package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnquoteJS(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"Hello"`, "Hello"},
		{`'It\'s here'`, "It's here"},
		{`"Line\nbreak"`, "Line\nbreak"},
		{`"tab\there"`, "tab\there"},
		{`"caf\u00e9"`, "café"},
		{`"smile \u{1F600}"`, "smile \U0001F600"},
		{`"\x41BC"`, "ABC"},
		{`"back\\slash"`, `back\slash`},
		{`"bad \q escape"`, "bad q escape"},
		{`"bad \xZZ"`, "bad xZZ"},
		{"\"cont\\\ninued\"", "continued"},
		{"`template`", "template"},
		{`unquoted`, "unquoted"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UnquoteJS(tt.raw), tt.raw)
	}
}

func TestUnquoteJSX(t *testing.T) {
	assert.Equal(t, `C:\path`, UnquoteJSX(`"C:\path"`))
	assert.Equal(t, "Hi", UnquoteJSX(`'Hi'`))
}

func TestQuoteJS(t *testing.T) {
	assert.Equal(t, `"Hello"`, QuoteJS("Hello", '"'))
	assert.Equal(t, `"Say \"hi\""`, QuoteJS(`Say "hi"`, '"'))
	assert.Equal(t, `'It\'s'`, QuoteJS("It's", '\''))
	assert.Equal(t, `"It's"`, QuoteJS("It's", 0))
	assert.Equal(t, `"a\nb\\c"`, QuoteJS("a\nb\\c", '"'))
	assert.Equal(t, `"\x01"`, QuoteJS("\x01", '"'))
	assert.Equal(t, `"café"`, QuoteJS("café", '"'))

	// Round trip through the decoder
	for _, s := range []string{"plain", "with \"quotes\" and 'apostrophes'", "multi\nline\ttext", "emoji 🙂"} {
		assert.Equal(t, s, UnquoteJS(QuoteJS(s, '"')))
		assert.Equal(t, s, UnquoteJS(QuoteJS(s, '\'')))
	}
}
