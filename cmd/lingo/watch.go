package main

import (
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/filter"
	"github.com/standardbeagle/lingo/internal/watch"
)

func watchCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)

	fa, err := cfg.FrameworkAdapter()
	if err != nil {
		return err
	}
	a := analyzer.New(fa)
	res, err := a.AnalyzeProject(c.Context, cfg.ProjectOptions(logger))
	if err != nil {
		return err
	}

	session := watch.NewSession(a, cfg.Project.Root, logger)
	session.Seed(res)
	logger.Info("watching", "root", cfg.Project.Root, "files", res.Scanned, "candidates", len(res.Candidates()))

	fw, err := watch.NewFileWatcher(cfg.Scanner(), cfg.DebounceInterval(), logger)
	if err != nil {
		return err
	}
	threshold := cfg.MinConfidence()
	return fw.Run(c.Context, func(batch []watch.Event) {
		for _, r := range session.Handle(batch) {
			if r.Err != nil {
				logger.Warn("analysis failed", "file", r.Path, "error", r.Err)
				continue
			}
			for _, cand := range filter.ByConfidence(r.Added, threshold) {
				logger.Info("new untranslated string", "file", r.Path, "key", cand.Key(), "confidence", cand.Confidence.String(), "text", cand.Text)
				_, _ = c.App.Writer.Write([]byte(filter.Describe(cand) + "\n"))
			}
		}
	})
}
