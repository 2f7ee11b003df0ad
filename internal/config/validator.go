package config

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/language"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/debug"
	lingoerrors "github.com/standardbeagle/lingo/internal/errors"
	"github.com/standardbeagle/lingo/internal/types"
)

// Validator checks a configuration and fills in values derived from the host.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates every section, then applies smart
// defaults. Errors are *errors.ConfigError naming the offending field.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateAdapter(&cfg.Adapter); err != nil {
		return err
	}
	if err := v.validateAnalysis(&cfg.Analysis); err != nil {
		return err
	}
	if err := v.validatePatterns("include", cfg.Include); err != nil {
		return err
	}
	if err := v.validatePatterns("exclude", cfg.Exclude); err != nil {
		return err
	}
	if _, err := language.Parse(cfg.Catalog.Locale); err != nil {
		return lingoerrors.NewConfigError("catalog.locale", cfg.Catalog.Locale, err)
	}
	if cfg.Watch.DebounceMs < 0 {
		return lingoerrors.NewConfigError("watch.debounce_ms", strconv.Itoa(cfg.Watch.DebounceMs), fmt.Errorf("cannot be negative"))
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return lingoerrors.NewConfigError("log_level", cfg.LogLevel, fmt.Errorf("expected debug, info, warn or error"))
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateAdapter(a *Adapter) error {
	if _, err := adapter.Lookup(a.Name); err != nil {
		return lingoerrors.NewConfigError("adapter.name", a.Name, err)
	}
	// overrides are checked by building the adapter once
	cfg := Config{Adapter: *a}
	if _, err := cfg.FrameworkAdapter(); err != nil {
		return lingoerrors.NewConfigError("adapter", a.Name, err)
	}
	return nil
}

func (v *Validator) validateAnalysis(an *Analysis) error {
	if _, err := types.ParseConfidence(an.MinConfidence); err != nil {
		return lingoerrors.NewConfigError("analysis.min_confidence", an.MinConfidence, err)
	}
	if an.Workers < 0 {
		return lingoerrors.NewConfigError("analysis.workers", strconv.Itoa(an.Workers), fmt.Errorf("cannot be negative"))
	}
	if an.MaxFileSize < 0 {
		return lingoerrors.NewConfigError("analysis.max_file_size", strconv.FormatInt(an.MaxFileSize, 10), fmt.Errorf("cannot be negative"))
	}
	return nil
}

func (v *Validator) validatePatterns(field string, patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return lingoerrors.NewConfigError(field, p, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// setSmartDefaults leaves one core to the rest of the system.
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = max(1, runtime.NumCPU()-1)
		debug.LogAnalyze("workers defaulted to %d\n", cfg.Analysis.Workers)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
