package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lingoerrors "github.com/standardbeagle/lingo/internal/errors"
	"github.com/standardbeagle/lingo/internal/types"
)

// isolate points HOME at an empty directory so a developer's global
// ~/.lingo.kdl never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseKDL(t *testing.T) {
	cfg := Default()
	err := parseKDL(`
project {
    root "app"
    name "storefront"
}
adapter "next-i18next" {
    import_source "@acme/i18n"
    hook "useMsg"
    translatable_attributes "title" "label"
}
analysis {
    min_confidence "high"
    workers 3
    max_file_size "2MB"
    respect_gitignore false
}
catalog {
    locale "fr-CA"
    path "i18n/source.yaml"
}
watch {
    debounce_ms 50
}
log_level "debug"
include "src/**"
exclude {
    "legacy/**"
    "**/*.generated.tsx"
}
`, cfg)
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.Project.Root)
	assert.Equal(t, "storefront", cfg.Project.Name)
	assert.Equal(t, "next-i18next", cfg.Adapter.Name)
	assert.Equal(t, "@acme/i18n", cfg.Adapter.ImportSource)
	assert.Equal(t, "useMsg", cfg.Adapter.Hook)
	assert.Equal(t, []string{"title", "label"}, cfg.Adapter.TranslatableAttributes)
	assert.Equal(t, "high", cfg.Analysis.MinConfidence)
	assert.Equal(t, 3, cfg.Analysis.Workers)
	assert.Equal(t, int64(2*1024*1024), cfg.Analysis.MaxFileSize)
	assert.False(t, cfg.Analysis.RespectGitignore)
	assert.Equal(t, "fr-CA", cfg.Catalog.Locale)
	assert.Equal(t, "i18n/source.yaml", cfg.Catalog.Path)
	assert.Equal(t, 50, cfg.Watch.DebounceMs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"src/**"}, cfg.Include)
	assert.Equal(t, []string{"legacy/**", "**/*.generated.tsx"}, cfg.Exclude)
}

func TestParseKDL_Errors(t *testing.T) {
	assert.Error(t, parseKDL(`analysis { max_file_size "lots" }`, Default()))
	assert.Error(t, parseKDL(`project {`, Default()))
}

func TestParseTOML(t *testing.T) {
	cfg := Default()
	err := parseTOML([]byte(`
log_level = "warn"
exclude = ["legacy/**"]

[adapter]
import_source = "@acme/i18n"
component = "Msg"

[analysis]
min_confidence = "low"
max_file_size = "512KB"

[catalog]
locale = "de"
`), cfg)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "react-i18next", cfg.Adapter.Name, "untouched keys keep their value")
	assert.Equal(t, "@acme/i18n", cfg.Adapter.ImportSource)
	assert.Equal(t, "Msg", cfg.Adapter.Component)
	assert.Equal(t, "low", cfg.Analysis.MinConfidence)
	assert.Equal(t, int64(512*1024), cfg.Analysis.MaxFileSize)
	assert.True(t, cfg.Analysis.RespectGitignore)
	assert.Equal(t, "de", cfg.Catalog.Locale)
	assert.Equal(t, "locales/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, []string{"legacy/**"}, cfg.Exclude)

	cfg = Default()
	require.NoError(t, parseTOML([]byte("[analysis]\nmax_file_size = 4096\n"), cfg))
	assert.Equal(t, int64(4096), cfg.Analysis.MaxFileSize)
}

func TestParseTOML_UnknownKey(t *testing.T) {
	err := parseTOML([]byte("[analysis]\nmin_confidnce = \"low\"\n"), Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_confidnce")
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 * 1024 * 1024},
		{"500kb", 500 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"64B", 64},
		{"2048", 2048},
	}
	for _, tt := range tests {
		got, err := parseSize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := parseSize("MB")
	assert.Error(t, err)
}

func TestLoadWithRoot_Defaults(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	cfg, err := LoadWithRoot(root)
	require.NoError(t, err)

	abs, _ := filepath.Abs(root)
	assert.Equal(t, abs, cfg.Project.Root)
	assert.Equal(t, "react-i18next", cfg.Adapter.Name)
	assert.Equal(t, types.ConfidenceMedium, cfg.MinConfidence())
	assert.GreaterOrEqual(t, cfg.Analysis.Workers, 1)
	assert.Empty(t, cfg.Exclude)

	fa, err := cfg.FrameworkAdapter()
	require.NoError(t, err)
	assert.Equal(t, "Trans", fa.ComponentName())
}

func TestLoadWithRoot_Layers(t *testing.T) {
	home := isolate(t)
	root := t.TempDir()

	t.Setenv("LINGO_MIN_CONFIDENCE", "low")
	t.Setenv("LINGO_CATALOG_LOCALE", "fr")
	t.Setenv("LINGO_ADAPTER_IMPORT_SOURCE", "@env/i18n")

	write(t, home, KDLFileName, `exclude "**/global/**"`)
	write(t, root, KDLFileName, `
analysis { min_confidence "high" }
adapter { import_source "@acme/i18n" }
exclude "legacy/**" "**/global/**"
`)

	cfg, err := LoadWithRoot(root)
	require.NoError(t, err)

	assert.Equal(t, types.ConfidenceHigh, cfg.MinConfidence(), "file beats environment")
	assert.Equal(t, "fr", cfg.Catalog.Locale, "environment beats defaults")
	assert.Equal(t, "@acme/i18n", cfg.Adapter.ImportSource)
	assert.Equal(t, []string{"**/global/**", "legacy/**"}, cfg.Exclude)
}

func TestLoadWithRoot_TOML(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	write(t, root, TOMLFileName, "include = [\"app/**\"]\n[watch]\ndebounce_ms = 25\n")

	cfg, err := LoadWithRoot(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"app/**"}, cfg.Include)
	assert.Equal(t, 25, cfg.Watch.DebounceMs)
	assert.Equal(t, int64(25), cfg.DebounceInterval().Milliseconds())
}

func TestLoadWithRoot_KDLWinsOverTOML(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	write(t, root, KDLFileName, `log_level "warn"`)
	write(t, root, TOMLFileName, "log_level = \"error\"\n")

	cfg, err := LoadWithRoot(root)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFile_RelativeRoot(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "web"), 0o755))
	write(t, dir, "lingo.kdl", `project { root "web" }`)

	cfg, err := LoadFile(filepath.Join(dir, "lingo.kdl"))
	require.NoError(t, err)
	abs, _ := filepath.Abs(filepath.Join(dir, "web"))
	assert.Equal(t, abs, cfg.Project.Root)

	_, err = LoadFile(filepath.Join(dir, "missing.kdl"))
	assert.Error(t, err)
}

func TestLoadWithRoot_EnrichesExclusions(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	write(t, root, "package.json", `{"scripts": {"build": "tsc --outDir lib"}}`)
	write(t, root, ".gitignore", "coverage/\n")

	cfg, err := LoadWithRoot(root)
	require.NoError(t, err)
	assert.Contains(t, cfg.Exclude, "**/lib/**")
	assert.Contains(t, cfg.Exclude, "**/coverage/**")

	write(t, root, KDLFileName, `analysis { respect_gitignore false }`)
	cfg, err = LoadWithRoot(root)
	require.NoError(t, err)
	assert.NotContains(t, cfg.Exclude, "**/coverage/**")
}

func TestValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown adapter", func(c *Config) { c.Adapter.Name = "vue-i18n" }, "adapter.name"},
		{"invalid hook override", func(c *Config) { c.Adapter.Hook = "use-msg" }, "adapter"},
		{"bad confidence", func(c *Config) { c.Analysis.MinConfidence = "certain" }, "analysis.min_confidence"},
		{"negative workers", func(c *Config) { c.Analysis.Workers = -1 }, "analysis.workers"},
		{"bad exclude glob", func(c *Config) { c.Exclude = []string{"src/[a"} }, "exclude"},
		{"bad locale", func(c *Config) { c.Catalog.Locale = "not a locale" }, "catalog.locale"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -5 }, "watch.debounce_ms"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			var cerr *lingoerrors.ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Exclude = []string{"legacy/**"}
	cfg.Include = []string{"src/**"}

	err := cfg.Apply(Overrides{
		Include:       []string{"app/**"},
		Exclude:       []string{"legacy/**", "tmp/**"},
		ImportSource:  "@acme/i18n",
		MinConfidence: "high",
		LogLevel:      "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"app/**"}, cfg.Include)
	assert.Equal(t, []string{"legacy/**", "tmp/**"}, cfg.Exclude)
	assert.Equal(t, types.ConfidenceHigh, cfg.MinConfidence())
	assert.Equal(t, "debug", cfg.LogLevel)

	fa, err := cfg.FrameworkAdapter()
	require.NoError(t, err)
	assert.Equal(t, "@acme/i18n", fa.ImportSource())
	assert.Equal(t, "useTranslation", fa.HookName())

	assert.Error(t, cfg.Apply(Overrides{MinConfidence: "sure"}))
}

func TestProjectOptions(t *testing.T) {
	cfg := Default()
	cfg.Analysis.Workers = 2
	cfg.Include = []string{"src/**"}
	opts := cfg.ProjectOptions(nil)
	assert.Equal(t, cfg.Project.Root, opts.Root)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, []string{"src/**"}, opts.Include)
	assert.True(t, cfg.Scanner().Match("src/App.tsx"))
	assert.False(t, cfg.Scanner().Match("lib/App.tsx"))
}

func TestIgnoreLineGlobs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"node_modules/", []string{"**/node_modules/**"}},
		{"*.log", []string{"**/*.log", "**/*.log/**"}},
		{"/dist", []string{"dist", "dist/**"}},
		{"docs/build/", []string{"docs/build/**"}},
		{"!keep.log", nil},
		{"# comment", nil},
		{"   ", nil},
		{"/", nil},
		{"[", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ignoreLineGlobs(tt.line), tt.line)
	}
}
