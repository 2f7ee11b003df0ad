package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/lingo/internal/filter"
	"github.com/standardbeagle/lingo/internal/transformer"
	"github.com/standardbeagle/lingo/internal/types"
	"github.com/standardbeagle/lingo/pkg/pathutil"
)

type fileOutcome struct {
	path   string
	src    []byte
	result *types.TransformResult
	err    error
}

func wrapCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)

	res, err := analyzeProject(c, cfg, logger)
	if err != nil {
		return err
	}

	// One Confirm call for the whole run: it buffers its input.
	cands := res.Candidates()
	if c.Bool("interactive") {
		if cands, err = filter.Confirm(cands, c.App.Reader, c.App.Writer); err != nil {
			return fmt.Errorf("reading answers: %w", err)
		}
	}
	byFile := make(map[string][]types.WrapCandidate)
	var order []string
	for _, cand := range cands {
		if _, seen := byFile[cand.File]; !seen {
			order = append(order, cand.File)
		}
		byFile[cand.File] = append(byFile[cand.File], cand)
	}
	if len(order) == 0 {
		fmt.Fprintln(c.App.Writer, "Nothing to wrap")
		return nil
	}

	fa, err := cfg.FrameworkAdapter()
	if err != nil {
		return err
	}
	tr := transformer.New(fa)
	outcomes := make([]fileOutcome, len(order))

	workers := cfg.Analysis.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, rel := range order {
		g.Go(func() error {
			abs := filepath.Join(cfg.Project.Root, filepath.FromSlash(rel))
			o := fileOutcome{path: rel}
			if o.src, o.err = os.ReadFile(abs); o.err == nil {
				o.result, o.err = tr.Transform(rel, o.src, byFile[rel])
			}
			if o.err == nil && !c.Bool("dry-run") && o.result.Changed() {
				o.err = pathutil.WriteFile(abs, o.result.Output)
			}
			outcomes[i] = o
			return nil
		})
	}
	_ = g.Wait()

	var wrapped, skipped, files, failed int
	for _, o := range outcomes {
		if o.err != nil {
			logger.Error("wrap failed", "file", o.path, "error", o.err)
			failed++
			continue
		}
		for _, s := range o.result.Skipped {
			logger.Warn("candidate not wrapped", "file", o.path, "key", s.Key(), "text", s.Text)
		}
		wrapped += o.result.WrappedCount
		skipped += len(o.result.Skipped)
		if o.result.Changed() {
			files++
		}
		if c.Bool("dry-run") {
			printDiff(c.App.Writer, o.path, o.src, o.result.Output)
		}
	}

	verb := "Wrapped"
	if c.Bool("dry-run") {
		verb = "Would wrap"
	}
	fmt.Fprintf(c.App.Writer, "%s %d strings in %d files", verb, wrapped, files)
	if skipped > 0 {
		fmt.Fprintf(c.App.Writer, ", %d skipped", skipped)
	}
	fmt.Fprintln(c.App.Writer)

	if failed == len(outcomes) {
		return fmt.Errorf("wrap failed for all %d files", failed)
	}
	return nil
}

var (
	diffHeader = color.New(color.Bold)
	diffHunk   = color.New(color.FgCyan)
	diffAdd    = color.New(color.FgGreen)
	diffDel    = color.New(color.FgRed)
)

func printDiff(w io.Writer, rel string, before, after []byte) {
	text, err := unifiedDiff(rel, before, after)
	if err != nil || text == "" {
		return
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			diffHeader.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			diffHunk.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			diffAdd.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			diffDel.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}
