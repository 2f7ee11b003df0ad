package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/catalog"
)

const greeting = `export function Greeting() {
  return <h1>Welcome back to your dashboard</h1>;
}
`

const translated = `import { Trans, useTranslation } from "react-i18next";

export function Footer() {
  const { t } = useTranslation();
  return (
    <footer title={t("Contact support")}>
      <Trans>All rights reserved</Trans>
    </footer>
  );
}
`

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"lingo", "--no-color"}, args...))
	return out.String(), errOut.String(), err
}

func TestScan_JSON(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/Greeting.jsx": greeting,
		"src/Footer.jsx":   translated,
	})

	out, _, err := run(t, "", "--root", root, "scan", "--json")
	require.NoError(t, err)

	var res analyzer.ProjectResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Scanned)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "src/Greeting.jsx", res.Files[0].Path)
	require.Len(t, res.Files[0].Candidates, 1)
	assert.Equal(t, "Welcome back to your dashboard", res.Files[0].Candidates[0].Text)
}

func TestScan_Text(t *testing.T) {
	root := newProject(t, map[string]string{"src/Greeting.jsx": greeting})

	out, _, err := run(t, "", "--root", root, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, `src/Greeting.jsx:2:`)
	assert.Contains(t, out, `"Welcome back to your dashboard"`)
	assert.Contains(t, out, "1 strings to translate in 1 of 1 files")
}

func TestScan_PathArgument(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/Greeting.jsx":   greeting,
		"other/Greeting.jsx": greeting,
	})

	out, _, err := run(t, "", "--root", root, "scan", "--json", filepath.Join(root, "other"))
	require.NoError(t, err)
	var res analyzer.ProjectResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Files, 1)
	assert.Equal(t, "other/Greeting.jsx", res.Files[0].Path)

	_, _, err = run(t, "", "--root", root, "scan", t.TempDir())
	assert.ErrorContains(t, err, "outside the project root")
}

func TestScan_InvalidAdapter(t *testing.T) {
	root := newProject(t, map[string]string{"src/Greeting.jsx": greeting})

	_, _, err := run(t, "", "--root", root, "--adapter", "nope", "scan")
	assert.Error(t, err)
}

func TestWrap_DryRun(t *testing.T) {
	root := newProject(t, map[string]string{"src/Greeting.jsx": greeting})
	path := filepath.Join(root, "src", "Greeting.jsx")

	out, _, err := run(t, "", "--root", root, "wrap", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "+++ b/src/Greeting.jsx")
	assert.Contains(t, out, "+  return <h1><Trans>Welcome back to your dashboard</Trans></h1>;")
	assert.Contains(t, out, "Would wrap 1 strings in 1 files")

	disk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, greeting, string(disk))
}

func TestWrap_Writes(t *testing.T) {
	root := newProject(t, map[string]string{"src/Greeting.jsx": greeting})
	path := filepath.Join(root, "src", "Greeting.jsx")

	out, _, err := run(t, "", "--root", root, "wrap")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrapped 1 strings in 1 files")

	disk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(disk), `import { Trans } from "react-i18next";`)
	assert.Contains(t, string(disk), "<Trans>Welcome back to your dashboard</Trans>")

	out, _, err = run(t, "", "--root", root, "wrap")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to wrap")
}

func TestWrap_InteractiveReject(t *testing.T) {
	root := newProject(t, map[string]string{"src/Greeting.jsx": greeting})

	out, _, err := run(t, "n\n", "--root", root, "wrap", "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "wrap? [y]es [n]o [a]ll [q]uit (1/1)")
	assert.Contains(t, out, "Nothing to wrap")

	disk, err := os.ReadFile(filepath.Join(root, "src", "Greeting.jsx"))
	require.NoError(t, err)
	assert.Equal(t, greeting, string(disk))
}

func TestWrap_InteractiveAcrossFiles(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/A.jsx": greeting,
		"src/B.jsx": greeting,
	})

	out, _, err := run(t, "y\nn\n", "--root", root, "wrap", "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "(2/2)")
	assert.Contains(t, out, "Wrapped 1 strings in 1 files")

	a, err := os.ReadFile(filepath.Join(root, "src", "A.jsx"))
	require.NoError(t, err)
	assert.Contains(t, string(a), "<Trans>Welcome back to your dashboard</Trans>")
	b, err := os.ReadFile(filepath.Join(root, "src", "B.jsx"))
	require.NoError(t, err)
	assert.Equal(t, greeting, string(b))
}

func TestExtract(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/Greeting.jsx": greeting,
		"src/Footer.jsx":   translated,
	})

	out, _, err := run(t, "", "--root", root, "extract")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 messages from 2 files")

	f, err := os.Open(filepath.Join(root, "locales", "catalog.yaml"))
	require.NoError(t, err)
	defer f.Close()
	cat, err := catalog.ReadYAML(f)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	m, ok := cat.Lookup(catalog.Key("Contact support"))
	require.True(t, ok)
	assert.Equal(t, []catalog.Ref{{File: "src/Footer.jsx", Line: 6}}, m.Refs)
}

func TestExtract_MergeKeepsStaleMessages(t *testing.T) {
	root := newProject(t, map[string]string{"src/Footer.jsx": translated})

	_, _, err := run(t, "", "--root", root, "extract")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "Footer.jsx"),
		[]byte(strings.Replace(translated, "All rights reserved", "Some rights reserved", 1)), 0o644))

	out, _, err := run(t, "", "--root", root, "extract", "--merge", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "All rights reserved")
	assert.Contains(t, out, "Some rights reserved")

	out, _, err = run(t, "", "--root", root, "extract", "--out", "-", "--locale", "de-CH")
	require.NoError(t, err)
	assert.Contains(t, out, "locale: de-CH")
	assert.NotContains(t, out, "All rights reserved")
}

func TestClassify(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, _, err := run(t, "", "--root", t.TempDir(), "classify", "--context", "markup-text", "Save your changes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "translate [high]"), out)

	out, _, err = run(t, "", "--root", t.TempDir(), "classify", "https://example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "skip "), out)

	_, _, err = run(t, "", "--root", t.TempDir(), "classify")
	assert.ErrorContains(t, err, "exactly one text argument")

	_, _, err = run(t, "", "--root", t.TempDir(), "classify", "--context", "sideways", "x")
	assert.Error(t, err)
}

func TestHelp_WorkersDefault(t *testing.T) {
	out, _, err := run(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Files analyzed in parallel (0 = one per CPU)")
}
