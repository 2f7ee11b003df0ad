package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlAnalysis accepts max_file_size as bytes or as a size string.
type tomlAnalysis struct {
	MinConfidence    *string `toml:"min_confidence"`
	Workers          *int    `toml:"workers"`
	MaxFileSize      any     `toml:"max_file_size"`
	RespectGitignore *bool   `toml:"respect_gitignore"`
}

type tomlFile struct {
	Version  *int         `toml:"version"`
	Project  Project      `toml:"project"`
	Adapter  Adapter      `toml:"adapter"`
	Analysis tomlAnalysis `toml:"analysis"`
	Catalog  Catalog      `toml:"catalog"`
	Watch    Watch        `toml:"watch"`
	LogLevel *string      `toml:"log_level"`
	Include  []string     `toml:"include"`
	Exclude  []string     `toml:"exclude"`
}

// parseTOML overlays a .lingo.toml document on cfg. Unknown keys are errors.
func parseTOML(data []byte, cfg *Config) error {
	f := tomlFile{
		Project: cfg.Project,
		Adapter: cfg.Adapter,
		Catalog: cfg.Catalog,
		Watch:   cfg.Watch,
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("failed to parse TOML config: %s", strict.String())
		}
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	cfg.Project = f.Project
	cfg.Adapter = f.Adapter
	cfg.Catalog = f.Catalog
	cfg.Watch = f.Watch
	if f.Version != nil {
		cfg.Version = *f.Version
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	a := f.Analysis
	if a.MinConfidence != nil {
		cfg.Analysis.MinConfidence = *a.MinConfidence
	}
	if a.Workers != nil {
		cfg.Analysis.Workers = *a.Workers
	}
	if a.RespectGitignore != nil {
		cfg.Analysis.RespectGitignore = *a.RespectGitignore
	}
	switch v := a.MaxFileSize.(type) {
	case nil:
	case int64:
		cfg.Analysis.MaxFileSize = v
	case string:
		sz, err := parseSize(v)
		if err != nil {
			return fmt.Errorf("analysis.max_file_size: %w", err)
		}
		cfg.Analysis.MaxFileSize = sz
	default:
		return fmt.Errorf("analysis.max_file_size: unexpected %T", v)
	}
	cfg.Include = append(cfg.Include, f.Include...)
	cfg.Exclude = append(cfg.Exclude, f.Exclude...)
	return nil
}
