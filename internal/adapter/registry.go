package adapter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/standardbeagle/lingo/internal/suggest"
)

// DefaultName is the adapter used when none is configured.
const DefaultName = "react-i18next"

var builtins = []Spec{
	{
		Name:         "react-i18next",
		ImportSource: "react-i18next",
		Component:    "Trans",
		Function:     "t",
		Hook:         "useTranslation",
	},
	{
		Name:         "next-i18next",
		ImportSource: "next-i18next",
		Component:    "Trans",
		Function:     "t",
		Hook:         "useTranslation",
	},
}

var (
	registryMu sync.RWMutex
	registry   = map[string]FrameworkAdapter{}
)

func init() {
	for _, spec := range builtins {
		a, err := New(spec)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in adapter %q: %v", spec.Name, err))
		}
		registry[spec.Name] = a
	}
}

// Register makes a available under its name, replacing any previous adapter
// with the same name.
func Register(a FrameworkAdapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[a.Name()] = a
}

// Lookup returns the adapter registered under name.
func Lookup(name string) (FrameworkAdapter, error) {
	if name == "" {
		name = DefaultName
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[name]
	if !ok {
		names := namesLocked()
		return nil, fmt.Errorf("unknown adapter %q%s (available: %v)", name, suggest.DidYouMean(name, names), names)
	}
	return a, nil
}

// Names lists registered adapters in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReactI18next returns the default adapter.
func ReactI18next() FrameworkAdapter {
	a, _ := Lookup(DefaultName)
	return a
}

// Resolve starts from the named adapter and applies the non-empty overrides in
// o, returning a new adapter when anything changed.
func Resolve(name string, o Spec) (FrameworkAdapter, error) {
	base, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if o.ImportSource == "" && o.Component == "" && o.Function == "" && o.Hook == "" &&
		len(o.TranslatableAttributes) == 0 && len(o.NonTranslatableAttributes) == 0 {
		return base, nil
	}

	spec := Spec{
		Name:                      base.Name(),
		ImportSource:              base.ImportSource(),
		Component:                 base.ComponentName(),
		Function:                  base.FunctionName(),
		Hook:                      base.HookName(),
		TranslatableAttributes:    base.TranslatableAttributes(),
		NonTranslatableAttributes: base.NonTranslatableAttributes(),
	}
	if o.ImportSource != "" {
		spec.ImportSource = o.ImportSource
	}
	if o.Component != "" {
		spec.Component = o.Component
	}
	if o.Function != "" {
		spec.Function = o.Function
	}
	if o.Hook != "" {
		spec.Hook = o.Hook
	}
	if len(o.TranslatableAttributes) > 0 {
		spec.TranslatableAttributes = o.TranslatableAttributes
	}
	if len(o.NonTranslatableAttributes) > 0 {
		spec.NonTranslatableAttributes = o.NonTranslatableAttributes
	}
	return New(spec)
}
