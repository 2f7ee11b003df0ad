package config

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// BuildArtifactDetector finds the output directories a JavaScript project's
// tooling writes to, so generated bundles are never analyzed.
type BuildArtifactDetector struct {
	projectRoot string
}

func NewBuildArtifactDetector(projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot}
}

// outDir: "build", "outDir": "lib", distDir: 'out'
var outDirPattern = regexp.MustCompile(`["']?(?:outDir|distDir)["']?\s*:\s*["']([^"']+)["']`)

// DetectOutputPatterns returns exclusion globs such as "**/lib/**" derived
// from package.json, tsconfig.json and bundler configuration.
func (bad *BuildArtifactDetector) DetectOutputPatterns() []string {
	var dirs []string
	dirs = append(dirs, bad.packageJSONOutputs()...)
	for _, name := range []string{
		"tsconfig.json",
		"vite.config.js", "vite.config.ts", "vite.config.mjs",
		"next.config.js", "next.config.mjs",
	} {
		dirs = append(dirs, bad.configOutputs(name)...)
	}

	var patterns []string
	for _, d := range dirs {
		if p := dirPattern(d); p != "" {
			patterns = append(patterns, p)
		}
	}
	return DeduplicatePatterns(patterns)
}

func (bad *BuildArtifactDetector) packageJSONOutputs() []string {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, "package.json"))
	if err != nil {
		return nil
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
		Build   struct {
			OutDir string `json:"outDir"`
		} `json:"build"`
	}
	if json.Unmarshal(data, &pkg) != nil {
		return nil
	}

	var dirs []string
	for _, script := range pkg.Scripts {
		parts := strings.Fields(script)
		for i, part := range parts {
			switch {
			case (part == "--outDir" || part == "-outDir" || part == "--out-dir" || part == "-d") && i+1 < len(parts):
				dirs = append(dirs, parts[i+1])
			case strings.HasPrefix(part, "--outDir="), strings.HasPrefix(part, "--out-dir="):
				dirs = append(dirs, part[strings.IndexByte(part, '=')+1:])
			}
		}
	}
	if pkg.Build.OutDir != "" {
		dirs = append(dirs, pkg.Build.OutDir)
	}
	return dirs
}

// configOutputs scans a config file textually; tsconfig.json allows
// comments and bundler configs are code, so neither is decoded.
func (bad *BuildArtifactDetector) configOutputs(name string) []string {
	data, err := os.ReadFile(filepath.Join(bad.projectRoot, name))
	if err != nil {
		return nil
	}
	var dirs []string
	for _, m := range outDirPattern.FindAllSubmatch(data, -1) {
		dirs = append(dirs, string(m[1]))
	}
	return dirs
}

func dirPattern(dir string) string {
	dir = strings.Trim(strings.TrimSpace(dir), "\"'")
	dir = path.Clean(filepath.ToSlash(dir))
	dir = strings.TrimPrefix(dir, "./")
	if dir == "." || dir == "" || strings.HasPrefix(dir, "..") || path.IsAbs(dir) {
		return ""
	}
	return "**/" + dir + "/**"
}

// DeduplicatePatterns removes duplicate patterns while preserving order
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
