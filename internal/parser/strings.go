package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// UnquoteJS decodes the raw text of a JavaScript string literal, quotes
// included. Malformed escapes decode to the escaped character itself, the way
// sloppy-mode engines treat them.
func UnquoteJS(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'' || raw[0] == '`') && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
	}
	return DecodeEscapes(raw)
}

// UnquoteJSX strips the quotes of a JSX attribute string. JSX attribute
// strings have no backslash escapes.
func UnquoteJSX(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// DecodeEscapes resolves JavaScript backslash escapes in s.
func DecodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'x':
			if r, ok := hexRune(s, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				if end := strings.IndexByte(s[i+2:], '}'); end > 0 {
					if r, ok := hexRune(s, i+2, end); ok {
						b.WriteRune(r)
						i += end + 2
						break
					}
				}
				b.WriteByte('u')
			} else if r, ok := hexRune(s, i+1, 4); ok {
				b.WriteRune(r)
				i += 4
			} else {
				b.WriteByte('u')
			}
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexRune(s string, start, n int) (rune, bool) {
	if start+n > len(s) || n == 0 || n > 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, false
	}
	return rune(v), true
}

// QuoteJS renders s as a JavaScript string literal delimited by quote, which
// must be '"' or '\''.
func QuoteJS(s string, quote byte) string {
	if quote != '\'' {
		quote = '"'
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quote)
	for _, r := range s {
		switch r {
		case rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\x`)
				b.WriteString(strconv.FormatInt(int64(r)>>4, 16))
				b.WriteString(strconv.FormatInt(int64(r)&0xf, 16))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// TemplateText normalizes a template literal into its static text with each
// substitution rendered as {name} for a bare identifier and {value} for any
// other expression.
func TemplateText(n *tree_sitter.Node, src []byte) string {
	var b strings.Builder
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Kind() {
		case "string_fragment":
			b.WriteString(Text(c, src))
		case "escape_sequence":
			b.WriteString(DecodeEscapes(Text(c, src)))
		case "template_substitution":
			expr := c.NamedChild(0)
			if expr != nil && expr.Kind() == "identifier" {
				b.WriteString("{" + Text(expr, src) + "}")
			} else {
				b.WriteString("{value}")
			}
		}
	}
	return b.String()
}
