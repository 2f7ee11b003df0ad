package config

import (
	"fmt"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDL overlays a .lingo.kdl document on cfg:
//
//	project { root "." }
//	adapter "react-i18next" { import_source "@acme/i18n" }
//	analysis { min_confidence "high"; max_file_size "2MB" }
//	catalog { locale "en"; path "locales/en.yaml" }
//	watch { debounce_ms 300 }
//	include "src/**"
//	exclude { "legacy/**" }
//
// Unknown nodes are ignored.
func parseKDL(content string, cfg *Config) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	a := &cfg.Adapter
	sections := map[string]fields{
		"project": {
			"root": str(&cfg.Project.Root),
			"name": str(&cfg.Project.Name),
		},
		"adapter": {
			"name":                        str(&a.Name),
			"import_source":               str(&a.ImportSource),
			"component":                   str(&a.Component),
			"function":                    str(&a.Function),
			"hook":                        str(&a.Hook),
			"translatable_attributes":     list(&a.TranslatableAttributes),
			"non_translatable_attributes": list(&a.NonTranslatableAttributes),
		},
		"analysis": {
			"min_confidence":    str(&cfg.Analysis.MinConfidence),
			"workers":           integer(&cfg.Analysis.Workers),
			"max_file_size":     size(&cfg.Analysis.MaxFileSize),
			"respect_gitignore": boolean(&cfg.Analysis.RespectGitignore),
		},
		"catalog": {
			"locale": str(&cfg.Catalog.Locale),
			"path":   str(&cfg.Catalog.Path),
		},
		"watch": {
			"debounce_ms": integer(&cfg.Watch.DebounceMs),
		},
	}
	top := fields{
		"version":   integer(&cfg.Version),
		"log_level": str(&cfg.LogLevel),
		"adapter":   str(&a.Name),
		"include":   appendList(&cfg.Include),
		"exclude":   appendList(&cfg.Exclude),
	}

	for _, n := range doc.Nodes {
		name := nodeName(n)
		if set, ok := top[name]; ok {
			if err := set(n); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		section, ok := sections[name]
		if !ok {
			continue
		}
		for _, child := range n.Children {
			field := nodeName(child)
			set, ok := section[field]
			if !ok {
				continue
			}
			if err := set(child); err != nil {
				return fmt.Errorf("%s.%s: %w", name, field, err)
			}
		}
	}
	return nil
}

// fields maps a node name to the setter that stores its arguments.
type fields map[string]func(*document.Node) error

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstValue(n *document.Node) any {
	if len(n.Arguments) == 0 {
		return nil
	}
	return n.Arguments[0].Value
}

func str(dst *string) func(*document.Node) error {
	return func(n *document.Node) error {
		if s, ok := firstValue(n).(string); ok {
			*dst = s
		}
		return nil
	}
}

func integer(dst *int) func(*document.Node) error {
	return func(n *document.Node) error {
		switch v := firstValue(n).(type) {
		case int64:
			*dst = int(v)
		case float64:
			*dst = int(v)
		}
		return nil
	}
}

// size accepts a byte count or a string such as "2MB".
func size(dst *int64) func(*document.Node) error {
	return func(n *document.Node) error {
		switch v := firstValue(n).(type) {
		case int64:
			*dst = v
		case float64:
			*dst = int64(v)
		case string:
			sz, err := parseSize(v)
			if err != nil {
				return err
			}
			*dst = sz
		}
		return nil
	}
}

func boolean(dst *bool) func(*document.Node) error {
	return func(n *document.Node) error {
		switch v := firstValue(n).(type) {
		case bool:
			*dst = v
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "yes", "on", "1":
				*dst = true
			default:
				*dst = false
			}
		}
		return nil
	}
}

func list(dst *[]string) func(*document.Node) error {
	return func(n *document.Node) error {
		*dst = stringValues(n)
		return nil
	}
}

func appendList(dst *[]string) func(*document.Node) error {
	return func(n *document.Node) error {
		*dst = append(*dst, stringValues(n)...)
		return nil
	}
}

// stringValues reads `exclude "a" "b"` as well as the block form
// `exclude { "a"; "b" }`, whose children are named by their value.
func stringValues(n *document.Node) []string {
	var out []string
	for _, arg := range n.Arguments {
		if s, ok := arg.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, child := range n.Children {
		if s, ok := firstValue(child).(string); ok {
			out = append(out, s)
		} else if child.Name != nil {
			if s, ok := child.Name.Value.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// parseSize reads "2048", "64B", "500KB", "10MB" or "1GB" (case-insensitive).
func parseSize(s string) (int64, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	digits, factor := upper, int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(upper, u.suffix) {
			digits, factor = strings.TrimSuffix(upper, u.suffix), u.factor
			break
		}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(digits), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * factor, nil
}
