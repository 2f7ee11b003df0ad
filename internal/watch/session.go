package watch

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/types"
)

// Report is the outcome of re-analyzing one changed file.
type Report struct {
	Path string
	// Added holds candidates that were not present before the change,
	// identified by text and strategy so that shifted lines do not count.
	Added []types.WrapCandidate
	Total int
	Err   error
}

// Session remembers the candidates of every file it has seen so that only
// new work is reported as files change.
type Session struct {
	analyzer *analyzer.Analyzer
	root     string
	logger   *slog.Logger
	known    map[string]map[string]int
}

func NewSession(a *analyzer.Analyzer, root string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{analyzer: a, root: root, logger: logger, known: make(map[string]map[string]int)}
}

// Seed records the candidates of an earlier project analysis.
func (s *Session) Seed(res *analyzer.ProjectResult) {
	for _, f := range res.Files {
		s.known[f.Path] = fingerprint(f.Candidates)
	}
}

// Handle re-analyzes the files of a batch. Removed files are forgotten and
// produce no report.
func (s *Session) Handle(batch []Event) []Report {
	var reports []Report
	for _, ev := range batch {
		if ev.Type == EventRemove {
			delete(s.known, ev.Path)
			continue
		}
		r := s.reanalyze(ev.Path)
		if r.Err != nil {
			s.logger.Warn("skipping file", "file", r.Path, "error", r.Err)
		}
		reports = append(reports, r)
	}
	return reports
}

func (s *Session) reanalyze(rel string) Report {
	src, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return Report{Path: rel, Err: err}
	}
	cands, err := s.analyzer.Analyze(rel, src)
	if err != nil {
		return Report{Path: rel, Err: err}
	}

	before := s.known[rel]
	seen := make(map[string]int, len(before))
	var added []types.WrapCandidate
	for _, c := range cands {
		id := identity(c)
		seen[id]++
		if seen[id] > before[id] {
			added = append(added, c)
		}
	}
	s.known[rel] = seen
	return Report{Path: rel, Added: added, Total: len(cands)}
}

func fingerprint(cands []types.WrapCandidate) map[string]int {
	m := make(map[string]int, len(cands))
	for _, c := range cands {
		m[identity(c)]++
	}
	return m
}

func identity(c types.WrapCandidate) string {
	return c.Strategy.String() + "\x00" + c.Text
}
