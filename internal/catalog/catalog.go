// Package catalog collects the texts a project already routes through the
// translation API into a source-language message catalog.
package catalog

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Ref is a location a message was found at.
type Ref struct {
	File string `yaml:"file" json:"file"`
	Line int    `yaml:"line" json:"line"`
}

// Message is one distinct source text.
type Message struct {
	Key  string `yaml:"key" json:"key"`
	Text string `yaml:"text" json:"text"`
	// ID is an explicit translation key (i18nKey) when the source gives one.
	ID   string `yaml:"id,omitempty" json:"id,omitempty"`
	Refs []Ref  `yaml:"refs,omitempty" json:"refs,omitempty"`
}

// Catalog is a set of messages for one source locale, keyed by the hash of
// their NFC-normalized text.
type Catalog struct {
	locale   language.Tag
	messages map[string]*Message
}

// New creates an empty catalog. locale must be a valid BCP 47 tag.
func New(locale string) (*Catalog, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog locale %q: %w", locale, err)
	}
	return &Catalog{locale: tag, messages: make(map[string]*Message)}, nil
}

// Locale returns the catalog's source locale.
func (c *Catalog) Locale() language.Tag {
	return c.locale
}

// Key returns the stable message key of text.
func Key(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(norm.NFC.String(text)))
}

// Add records an occurrence of text and returns its key. Empty texts are
// ignored and yield "".
func (c *Catalog) Add(text, id, file string, line int) string {
	if text == "" {
		return ""
	}
	key := Key(text)
	m, ok := c.messages[key]
	if !ok {
		m = &Message{Key: key, Text: norm.NFC.String(text)}
		c.messages[key] = m
	}
	if m.ID == "" {
		m.ID = id
	}
	if file != "" {
		ref := Ref{File: file, Line: line}
		for _, r := range m.Refs {
			if r == ref {
				return key
			}
		}
		m.Refs = append(m.Refs, ref)
	}
	return key
}

// Len returns the number of distinct messages.
func (c *Catalog) Len() int {
	return len(c.messages)
}

// Lookup returns the message stored under key.
func (c *Catalog) Lookup(key string) (Message, bool) {
	m, ok := c.messages[key]
	if !ok {
		return Message{}, false
	}
	return *m, true
}

// Messages returns the messages ordered by text, with sorted references.
func (c *Catalog) Messages() []Message {
	out := make([]Message, 0, len(c.messages))
	for _, m := range c.messages {
		cp := *m
		cp.Refs = append([]Ref(nil), m.Refs...)
		sort.Slice(cp.Refs, func(i, j int) bool {
			if cp.Refs[i].File != cp.Refs[j].File {
				return cp.Refs[i].File < cp.Refs[j].File
			}
			return cp.Refs[i].Line < cp.Refs[j].Line
		})
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Text != out[j].Text {
			return out[i].Text < out[j].Text
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Hash fingerprints the set of message texts. It ignores references and
// insertion order, so it only changes when a text is added or removed.
func (c *Catalog) Hash() string {
	keys := make([]string, 0, len(c.messages))
	for k := range c.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := xxhash.New()
	_, _ = d.WriteString(c.locale.String())
	for _, k := range keys {
		_, _ = d.WriteString("\x00" + k)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Merge adds every message and reference of other.
func (c *Catalog) Merge(other *Catalog) {
	for _, m := range other.messages {
		if len(m.Refs) == 0 {
			c.Add(m.Text, m.ID, "", 0)
			continue
		}
		for _, r := range m.Refs {
			c.Add(m.Text, m.ID, r.File, r.Line)
		}
	}
}

type document struct {
	Locale   string    `yaml:"locale"`
	Hash     string    `yaml:"hash"`
	Messages []Message `yaml:"messages"`
}

// WriteYAML writes the catalog as a YAML document.
func (c *Catalog) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Locale: c.locale.String(), Hash: c.Hash(), Messages: c.Messages()}); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}

// ReadYAML loads a catalog written by WriteYAML. Keys are recomputed from
// the texts; a stored hash that no longer matches is an error.
func ReadYAML(r io.Reader) (*Catalog, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	c, err := New(doc.Locale)
	if err != nil {
		return nil, err
	}
	for _, m := range doc.Messages {
		if len(m.Refs) == 0 {
			c.Add(m.Text, m.ID, "", 0)
		}
		for _, ref := range m.Refs {
			c.Add(m.Text, m.ID, ref.File, ref.Line)
		}
	}
	if doc.Hash != "" && doc.Hash != c.Hash() {
		return nil, fmt.Errorf("catalog hash mismatch: file says %s, texts hash to %s", doc.Hash, c.Hash())
	}
	return c, nil
}
