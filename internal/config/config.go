package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/types"
)

// File names looked up in the project root, in order.
const (
	KDLFileName  = ".lingo.kdl"
	TOMLFileName = ".lingo.toml"
)

type Config struct {
	Version  int      `toml:"version"`
	Project  Project  `toml:"project" envPrefix:"PROJECT_"`
	Adapter  Adapter  `toml:"adapter" envPrefix:"ADAPTER_"`
	Analysis Analysis `toml:"analysis"`
	Catalog  Catalog  `toml:"catalog" envPrefix:"CATALOG_"`
	Watch    Watch    `toml:"watch" envPrefix:"WATCH_"`
	LogLevel string   `toml:"log_level" env:"LOG_LEVEL"`
	Include  []string `toml:"include" env:"INCLUDE"`
	Exclude  []string `toml:"exclude" env:"EXCLUDE"`
}

type Project struct {
	Root string `toml:"root" env:"ROOT"`
	Name string `toml:"name"`
}

// Adapter selects a registered framework adapter and overrides parts of it.
type Adapter struct {
	Name                      string   `toml:"name" env:"NAME"`
	ImportSource              string   `toml:"import_source" env:"IMPORT_SOURCE"`
	Component                 string   `toml:"component" env:"COMPONENT"`
	Function                  string   `toml:"function" env:"FUNCTION"`
	Hook                      string   `toml:"hook" env:"HOOK"`
	TranslatableAttributes    []string `toml:"translatable_attributes" env:"TRANSLATABLE_ATTRIBUTES"`
	NonTranslatableAttributes []string `toml:"non_translatable_attributes" env:"NON_TRANSLATABLE_ATTRIBUTES"`
}

type Analysis struct {
	MinConfidence    string `toml:"min_confidence" env:"MIN_CONFIDENCE"`
	Workers          int    `toml:"workers" env:"WORKERS"`
	MaxFileSize      int64  `toml:"max_file_size" env:"MAX_FILE_SIZE"`
	RespectGitignore bool   `toml:"respect_gitignore" env:"RESPECT_GITIGNORE"`
}

type Catalog struct {
	Locale string `toml:"locale" env:"LOCALE"`
	Path   string `toml:"path" env:"PATH"`
}

type Watch struct {
	DebounceMs int `toml:"debounce_ms" env:"DEBOUNCE_MS"`
}

// Default returns the built-in configuration rooted at the working directory.
func Default() *Config {
	root, _ := os.Getwd()
	if root == "" {
		root = "."
	}
	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Adapter: Adapter{Name: adapter.DefaultName},
		Analysis: Analysis{
			MinConfidence:    types.ConfidenceMedium.String(),
			MaxFileSize:      1024 * 1024,
			RespectGitignore: true,
		},
		Catalog:  Catalog{Locale: "en", Path: "locales/catalog.yaml"},
		Watch:    Watch{DebounceMs: 200},
		LogLevel: "info",
		Include:  []string{},
		Exclude:  []string{},
	}
}

// Load reads the configuration for the current directory.
func Load() (*Config, error) {
	return LoadWithRoot("")
}

// LoadWithRoot layers defaults, LINGO_* environment variables, the global
// ~/.lingo.kdl and the project's .lingo.kdl or .lingo.toml, then validates.
// An empty root means the working directory.
func LoadWithRoot(root string) (*Config, error) {
	cfg := Default()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if root != "" {
		cfg.Project.Root = resolveRoot(root, ".")
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, KDLFileName)
		if err := loadFileInto(cfg, global); err != nil {
			return nil, err
		}
	}

	dir := resolveRoot(cfg.Project.Root, ".")
	for _, name := range []string{KDLFileName, TOMLFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFileInto(cfg, path); err != nil {
			return nil, err
		}
		break
	}

	return finish(cfg, dir)
}

// LoadFile is LoadWithRoot with an explicit configuration file. A relative
// project root inside the file resolves against the file's directory.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg := Default()
	cfg.Project.Root = ""
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := loadFileInto(cfg, path); err != nil {
		return nil, err
	}
	return finish(cfg, filepath.Dir(path))
}

func finish(cfg *Config, dir string) (*Config, error) {
	cfg.Project.Root = resolveRoot(cfg.Project.Root, dir)
	cfg.EnrichExclusions()
	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	debug.LogAnalyze("config loaded: root=%s adapter=%s exclusions=%d\n", cfg.Project.Root, cfg.Adapter.Name, len(cfg.Exclude))
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "LINGO_"}); err != nil {
		return fmt.Errorf("reading LINGO_ environment: %w", err)
	}
	return nil
}

// loadFileInto overlays the file at path on cfg. A missing file is not an
// error. Exclusions accumulate across layers; inclusions are replaced.
func loadFileInto(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	base := *cfg
	cfg.Exclude = nil
	cfg.Include = nil
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = parseTOML(data, cfg)
	default:
		err = parseKDL(string(data), cfg)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	mergeLists(&base, cfg)
	return nil
}

func mergeLists(base, overlay *Config) {
	overlay.Exclude = DeduplicatePatterns(append(append([]string{}, base.Exclude...), overlay.Exclude...))
	if len(overlay.Include) == 0 {
		overlay.Include = base.Include
	}
}

func resolveRoot(root, dir string) string {
	if root == "" {
		root = dir
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(dir, root)
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return filepath.Clean(root)
}

// EnrichExclusions adds the build output directories declared by the
// project's JavaScript tooling and, when enabled, its .gitignore entries.
func (c *Config) EnrichExclusions() {
	patterns := append([]string{}, c.Exclude...)
	patterns = append(patterns, NewBuildArtifactDetector(c.Project.Root).DetectOutputPatterns()...)
	if c.Analysis.RespectGitignore {
		globs, err := gitignoreGlobs(c.Project.Root)
		if err != nil {
			debug.LogAnalyze("ignoring unreadable .gitignore: %v\n", err)
		}
		patterns = append(patterns, globs...)
	}
	c.Exclude = DeduplicatePatterns(patterns)
}

// Overrides carries command-line values. Zero values leave the
// configuration unchanged.
type Overrides struct {
	Root          string
	Include       []string
	Exclude       []string
	Adapter       string
	ImportSource  string
	MinConfidence string
	LogLevel      string
	Workers       int
}

// Apply layers command-line values on top of the loaded configuration.
// Exclusions are added; inclusions replace the configured ones.
func (c *Config) Apply(o Overrides) error {
	if o.Root != "" {
		c.Project.Root = resolveRoot(o.Root, ".")
		c.EnrichExclusions()
	}
	if len(o.Include) > 0 {
		c.Include = append([]string{}, o.Include...)
	}
	c.Exclude = DeduplicatePatterns(append(c.Exclude, o.Exclude...))
	if o.Adapter != "" {
		c.Adapter.Name = o.Adapter
	}
	if o.ImportSource != "" {
		c.Adapter.ImportSource = o.ImportSource
	}
	if o.MinConfidence != "" {
		c.Analysis.MinConfidence = o.MinConfidence
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.Workers > 0 {
		c.Analysis.Workers = o.Workers
	}
	return ValidateConfig(c)
}

// FrameworkAdapter resolves the configured adapter and its overrides.
func (c *Config) FrameworkAdapter() (adapter.FrameworkAdapter, error) {
	fa, err := adapter.Resolve(c.Adapter.Name, adapter.Spec{
		ImportSource:              c.Adapter.ImportSource,
		Component:                 c.Adapter.Component,
		Function:                  c.Adapter.Function,
		Hook:                      c.Adapter.Hook,
		TranslatableAttributes:    c.Adapter.TranslatableAttributes,
		NonTranslatableAttributes: c.Adapter.NonTranslatableAttributes,
	})
	if err != nil {
		return nil, fmt.Errorf("adapter: %w", err)
	}
	return fa, nil
}

// MinConfidence returns the parsed confidence threshold.
func (c *Config) MinConfidence() types.Confidence {
	conf, err := types.ParseConfidence(c.Analysis.MinConfidence)
	if err != nil {
		return types.ConfidenceMedium
	}
	return conf
}

// DebounceInterval returns the watch debounce as a duration.
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// ProjectOptions returns the options of a project-wide analysis.
func (c *Config) ProjectOptions(logger *slog.Logger) analyzer.ProjectOptions {
	return analyzer.ProjectOptions{
		Root:        c.Project.Root,
		Include:     c.Include,
		Exclude:     c.Exclude,
		Workers:     c.Analysis.Workers,
		MaxFileSize: c.Analysis.MaxFileSize,
		Logger:      logger,
	}
}

// Scanner returns a file scanner matching the configured patterns.
func (c *Config) Scanner() *analyzer.FileScanner {
	return analyzer.NewFileScanner(c.Project.Root, c.Include, c.Exclude)
}
