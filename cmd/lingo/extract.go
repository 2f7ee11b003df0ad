package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lingo/internal/catalog"
)

func extractCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)

	locale := cfg.Catalog.Locale
	if l := c.String("locale"); l != "" {
		locale = l
	}
	cat, err := catalog.New(locale)
	if err != nil {
		return err
	}
	fa, err := cfg.FrameworkAdapter()
	if err != nil {
		return err
	}

	files, err := cfg.Scanner().Scan(c.Context)
	if err != nil {
		return err
	}
	for _, rel := range files {
		src, err := os.ReadFile(filepath.Join(cfg.Project.Root, filepath.FromSlash(rel)))
		if err != nil {
			logger.Warn("skipping file", "file", rel, "error", err)
			continue
		}
		occs, err := catalog.Extract(rel, src, fa)
		if err != nil {
			logger.Warn("skipping file", "file", rel, "error", err)
			continue
		}
		cat.AddFile(rel, occs)
	}

	out := c.String("out")
	if out == "" {
		out = cfg.Catalog.Path
	}
	existing := out
	if out == "-" {
		existing = cfg.Catalog.Path
	}
	if !filepath.IsAbs(existing) {
		existing = filepath.Join(cfg.Project.Root, existing)
	}
	if c.Bool("merge") {
		if err := keepStale(cat, existing); err != nil {
			return err
		}
	}
	if out == "-" {
		return cat.WriteYAML(c.App.Writer)
	}
	out = existing

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := cat.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Wrote %d messages from %d files to %s (hash %s)\n", cat.Len(), len(files), out, cat.Hash())
	return nil
}

// keepStale adds the messages of the catalog at path that the current scan
// no longer found. They keep their text and id but lose their references.
func keepStale(cat *catalog.Catalog, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	old, err := catalog.ReadYAML(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, m := range old.Messages() {
		if _, ok := cat.Lookup(m.Key); !ok {
			cat.Add(m.Text, m.ID, "", 0)
		}
	}
	return nil
}
