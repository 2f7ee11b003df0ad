package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/config"
	"github.com/standardbeagle/lingo/internal/filter"
)

// analyzeProject runs the configured project analysis, restricted to the
// command's path arguments, and drops candidates below the threshold.
func analyzeProject(c *cli.Context, cfg *config.Config, logger *slog.Logger) (*analyzer.ProjectResult, error) {
	if c.NArg() > 0 {
		patterns, err := relToRoot(cfg.Project.Root, c.Args().Slice())
		if err != nil {
			return nil, err
		}
		cfg.Include = patterns
	}

	fa, err := cfg.FrameworkAdapter()
	if err != nil {
		return nil, err
	}
	res, err := analyzer.New(fa).AnalyzeProject(c.Context, cfg.ProjectOptions(logger))
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("no file could be analyzed: %w", err)
	}

	threshold := cfg.MinConfidence()
	kept := res.Files[:0]
	for _, f := range res.Files {
		f.Candidates = filter.ByConfidence(f.Candidates, threshold)
		if len(f.Candidates) > 0 {
			kept = append(kept, f)
		}
	}
	res.Files = kept
	return res, nil
}

func scanCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)

	res, err := analyzeProject(c, cfg, logger)
	if err != nil {
		return err
	}
	if res.Files == nil {
		res.Files = []analyzer.FileResult{}
	}

	out := c.App.Writer
	switch {
	case c.Bool("json"):
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case c.Bool("yaml"):
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}
	printScan(out, res)
	return nil
}

func printScan(w io.Writer, res *analyzer.ProjectResult) {
	total := 0
	for _, f := range res.Files {
		for _, cand := range f.Candidates {
			fmt.Fprintln(w, filter.Describe(cand))
			total++
		}
	}
	if total == 0 {
		color.New(color.FgGreen).Fprintf(w, "No untranslated strings in %d files\n", res.Scanned)
		return
	}
	fmt.Fprintf(w, "\n%d strings to translate in %d of %d files", total, len(res.Files), res.Scanned)
	if len(res.Failures) > 0 {
		color.New(color.FgYellow).Fprintf(w, " (%d skipped)", len(res.Failures))
	}
	fmt.Fprintln(w)
}
