package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/lingo/internal/errors"
	"github.com/standardbeagle/lingo/internal/types"
)

// ProjectOptions controls a project-wide analysis.
type ProjectOptions struct {
	Root    string
	Include []string
	Exclude []string
	// Workers bounds the number of files analyzed at once; 0 means NumCPU.
	Workers int
	// MaxFileSize skips larger files; 0 disables the limit.
	MaxFileSize int64
	Logger      *slog.Logger
}

// FileResult holds the candidates of one file. Path is relative to the root.
type FileResult struct {
	Path       string                `json:"path" yaml:"path"`
	Candidates []types.WrapCandidate `json:"candidates" yaml:"candidates"`
}

// Failure records a file that could not be analyzed.
type Failure struct {
	Path    string `json:"path" yaml:"path"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message string `json:"message" yaml:"message"`
	Err     error  `json:"-" yaml:"-"`
}

// Skip records a file that was deliberately not analyzed.
type Skip struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// ProjectResult aggregates a project analysis in path order.
type ProjectResult struct {
	Root     string       `json:"root" yaml:"root"`
	Files    []FileResult `json:"files" yaml:"files"`
	Failures []Failure    `json:"failures,omitempty" yaml:"failures,omitempty"`
	Skipped  []Skip       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Scanned  int          `json:"scanned" yaml:"scanned"`
}

// Candidates flattens the per-file candidates.
func (r *ProjectResult) Candidates() []types.WrapCandidate {
	var all []types.WrapCandidate
	for _, f := range r.Files {
		all = append(all, f.Candidates...)
	}
	return all
}

// Err returns a MultiError of the failures when no file could be analyzed.
// Partial failures are warnings, not errors.
func (r *ProjectResult) Err() error {
	if len(r.Failures) == 0 || len(r.Failures) < r.Scanned {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return errors.NewMultiError(errs).ErrorOrNil()
}

// AnalyzeProject discovers files below opts.Root and analyzes them in
// parallel. A file that cannot be read or parsed is logged and recorded in
// Failures; only cancellation of ctx aborts the batch.
func (a *Analyzer) AnalyzeProject(ctx context.Context, opts ProjectOptions) (*ProjectResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	root := opts.Root
	if root == "" {
		root = "."
	}

	files, err := NewFileScanner(root, opts.Include, opts.Exclude).Scan(ctx)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]FileResult, len(files))
	failures := make([]error, len(files))
	skips := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cands, skip, err := a.analyzeFile(root, rel, opts.MaxFileSize)
			if err != nil {
				failures[i] = err
				return nil
			}
			skips[i] = skip
			results[i] = FileResult{Path: rel, Candidates: cands}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ProjectResult{Root: root, Scanned: len(files)}
	for i, rel := range files {
		if err := failures[i]; err != nil {
			kind, _ := errors.KindOf(err)
			logger.Warn("skipping file", "file", rel, "kind", kind, "error", err)
			out.Failures = append(out.Failures, Failure{Path: rel, Kind: string(kind), Message: err.Error(), Err: err})
			continue
		}
		if skips[i] != "" {
			logger.Debug("skipping file", "file", rel, "reason", skips[i])
			out.Skipped = append(out.Skipped, Skip{Path: rel, Reason: skips[i]})
			continue
		}
		if len(results[i].Candidates) > 0 {
			out.Files = append(out.Files, results[i])
		}
	}
	return out, nil
}

// analyzeFile returns a non-empty skip reason for files that are too large,
// binary or minified.
func (a *Analyzer) analyzeFile(root, rel string, maxSize int64) ([]types.WrapCandidate, string, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	if maxSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, "", errors.NewFileError("stat", rel, err)
		}
		if info.Size() > maxSize {
			return nil, fmt.Sprintf("larger than %d bytes", maxSize), nil
		}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.NewFileError("read", rel, err)
	}
	if err := a.validator.Validate(src); err != nil {
		return nil, err.Error(), nil
	}
	cands, err := a.Analyze(rel, src)
	return cands, "", err
}
