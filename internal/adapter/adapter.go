// Package adapter describes the wrapping conventions of a UI templating
// dialect: which component wraps markup text, which function translates a
// string, which hook yields that function and where they are imported from.
//
// The analyzer and transformer only ever see the FrameworkAdapter interface,
// so retargeting the engine means registering another adapter.
package adapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/standardbeagle/lingo/internal/classifier"
)

// Role is the part a local binding plays in the translation API.
type Role uint8

const (
	RoleNone Role = iota
	RoleComponent
	RoleFunction
	RoleHook
)

func (r Role) String() string {
	switch r {
	case RoleComponent:
		return "component"
	case RoleFunction:
		return "function"
	case RoleHook:
		return "hook"
	default:
		return "none"
	}
}

// Bindings maps local names in one file to the role they were bound to, either
// through an import from the adapter's source or a hook destructuring.
type Bindings map[string]Role

// Add records name under role. Empty names are ignored.
func (b Bindings) Add(name string, role Role) {
	if name != "" {
		b[name] = role
	}
}

// Names returns the local names bound to role.
func (b Bindings) Names(role Role) []string {
	var names []string
	for name, r := range b {
		if r == role {
			names = append(names, name)
		}
	}
	return names
}

// FrameworkAdapter is the only configuration surface of the analyzer and the
// transformer. Implementations must be safe for concurrent use and must not
// change after construction.
type FrameworkAdapter interface {
	Name() string
	ImportSource() string
	ComponentName() string
	FunctionName() string
	HookName() string
	TranslatableAttributes() []string
	NonTranslatableAttributes() []string

	// IsWrapped reports whether markup nested in elements with the given names
	// (innermost first) is already wrapped.
	IsWrapped(ancestors []string, b Bindings) bool

	// IsTranslateCall reports whether a call to callee (a flattened member
	// chain such as "t" or "i18n.t") is already a translation.
	IsTranslateCall(callee string, b Bindings) bool
}

// Spec declares an adapter. Empty attribute lists fall back to the classifier
// defaults.
type Spec struct {
	Name                      string   `json:"name" toml:"name"`
	ImportSource              string   `json:"import_source" toml:"import_source"`
	Component                 string   `json:"component" toml:"component"`
	Function                  string   `json:"function" toml:"function"`
	Hook                      string   `json:"hook" toml:"hook"`
	TranslatableAttributes    []string `json:"translatable_attributes,omitempty" toml:"translatable_attributes"`
	NonTranslatableAttributes []string `json:"non_translatable_attributes,omitempty" toml:"non_translatable_attributes"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// Validate checks that every name is a usable JavaScript identifier and that
// the component can be told apart from an intrinsic element.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.ImportSource) == "" {
		return fmt.Errorf("adapter %q: import source is required", s.Name)
	}
	for _, f := range []struct{ label, value string }{
		{"component", s.Component},
		{"function", s.Function},
		{"hook", s.Hook},
	} {
		if !identifierPattern.MatchString(f.value) {
			return fmt.Errorf("adapter %q: %s name %q is not a valid identifier", s.Name, f.label, f.value)
		}
	}
	if first := s.Component[0]; first < 'A' || first > 'Z' {
		return fmt.Errorf("adapter %q: component name %q must start with an uppercase letter", s.Name, s.Component)
	}
	return nil
}

// Adapter is the Spec-driven FrameworkAdapter used by every built-in.
type Adapter struct {
	spec Spec
}

// New validates spec and returns an adapter for it.
func New(spec Spec) (*Adapter, error) {
	if spec.Name == "" {
		spec.Name = "custom"
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	spec.TranslatableAttributes = cloneOr(spec.TranslatableAttributes, classifier.DefaultTranslatableAttributes)
	spec.NonTranslatableAttributes = cloneOr(spec.NonTranslatableAttributes, classifier.DefaultNonTranslatableAttributes)
	return &Adapter{spec: spec}, nil
}

func cloneOr(list, fallback []string) []string {
	if len(list) == 0 {
		list = fallback
	}
	return append([]string(nil), list...)
}

func (a *Adapter) Name() string          { return a.spec.Name }
func (a *Adapter) ImportSource() string  { return a.spec.ImportSource }
func (a *Adapter) ComponentName() string { return a.spec.Component }
func (a *Adapter) FunctionName() string  { return a.spec.Function }
func (a *Adapter) HookName() string      { return a.spec.Hook }

func (a *Adapter) TranslatableAttributes() []string {
	return append([]string(nil), a.spec.TranslatableAttributes...)
}

func (a *Adapter) NonTranslatableAttributes() []string {
	return append([]string(nil), a.spec.NonTranslatableAttributes...)
}

// Spec returns a copy of the adapter's declaration.
func (a *Adapter) Spec() Spec {
	s := a.spec
	s.TranslatableAttributes = a.TranslatableAttributes()
	s.NonTranslatableAttributes = a.NonTranslatableAttributes()
	return s
}

func (a *Adapter) IsWrapped(ancestors []string, b Bindings) bool {
	for _, name := range ancestors {
		if a.isComponent(name, b) {
			return true
		}
	}
	return false
}

func (a *Adapter) isComponent(name string, b Bindings) bool {
	if name == a.spec.Component || b[name] == RoleComponent {
		return true
	}
	// <i18n.Trans> style member elements
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:] == a.spec.Component
	}
	return false
}

func (a *Adapter) IsTranslateCall(callee string, b Bindings) bool {
	if callee == "" {
		return false
	}
	if callee == a.spec.Function || b[callee] == RoleFunction {
		return true
	}
	// i18n.t, i18next.t, props.t
	if i := strings.LastIndexByte(callee, '.'); i >= 0 {
		return callee[i+1:] == a.spec.Function
	}
	return false
}

// Classifier builds a classifier configured with the adapter's attribute lists.
func Classifier(a FrameworkAdapter) *classifier.Classifier {
	return classifier.New(classifier.WithAttributeLists(a.TranslatableAttributes(), a.NonTranslatableAttributes()))
}
