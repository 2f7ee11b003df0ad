package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/parser"
)

// DefaultExclusions are always applied on top of user exclusions: build
// output, dependencies, tests and generated declarations.
var DefaultExclusions = []string{
	// Git metadata and hidden directories
	"**/.git/**",
	"**/.*/**",

	// installed packages
	"**/node_modules/**",
	"**/bower_components/**",
	"**/jspm_packages/**",
	"**/vendor/**",

	// build output
	"**/dist/**",
	"**/build/**",
	"**/out/**",
	"**/coverage/**",
	"**/storybook-static/**",
	"**/*.min.js",
	"**/*.bundle.js",
	"**/*.chunk.js",
	"**/*.d.ts",

	// Tests, stories and fixtures (Jest, Vitest, Mocha, Storybook)
	"**/*.test.*",
	"**/*.spec.*",
	"**/*.stories.*",
	"**/__tests__/**",
	"**/__mocks__/**",
	"**/test/**",
	"**/tests/**",
	"**/e2e/**",
	"**/cypress/**",
	"**/fixtures/**",
	"**/testdata/**",
}

// FileScanner discovers analyzable source files below a root directory.
type FileScanner struct {
	root       string
	inclusions []string
	exclusions []string
}

// NewFileScanner creates a scanner. Without include patterns every file with
// a supported extension is included.
func NewFileScanner(root string, include, exclude []string) *FileScanner {
	exclusions := make([]string, 0, len(DefaultExclusions)+len(exclude))
	exclusions = append(exclusions, DefaultExclusions...)
	exclusions = append(exclusions, exclude...)
	return &FileScanner{
		root:       root,
		inclusions: append([]string(nil), include...),
		exclusions: exclusions,
	}
}

// shouldExclude checks if a slash-separated relative path matches any exclusion
func (fs *FileScanner) shouldExclude(path string) bool {
	for _, pattern := range fs.exclusions {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// bad pattern shouldn't break scanning
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// shouldInclude checks inclusion patterns, falling back to the supported
// extensions when none are configured
func (fs *FileScanner) shouldInclude(path string) bool {
	if !parser.IsSupported(path) {
		return false
	}
	if len(fs.inclusions) == 0 {
		return true
	}
	for _, pattern := range fs.inclusions {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// Match reports whether a path relative to the root would be scanned.
func (fs *FileScanner) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	return !fs.shouldExclude(rel) && fs.shouldInclude(rel)
}

// Excluded reports whether a relative file or directory path matches an
// exclusion pattern.
func (fs *FileScanner) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	return fs.shouldExclude(rel) || fs.shouldExclude(rel+"/")
}

// Root returns the directory the scanner walks.
func (fs *FileScanner) Root() string {
	return fs.root
}

// Scan walks the root and returns matching files as sorted, slash-separated
// paths relative to the root.
func (fs *FileScanner) Scan(ctx context.Context) ([]string, error) {
	var files []string

	// symlinked directories are entered once
	visitedDirs := make(map[string]bool)

	err := filepath.WalkDir(fs.root, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			debug.LogAnalyze("scanner error for %s: %v\n", path, err)
			return nil
		}

		rel, relErr := filepath.Rel(fs.root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == fs.root {
				return nil
			}
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return filepath.SkipDir
			}
			if visitedDirs[realPath] {
				return filepath.SkipDir
			}
			visitedDirs[realPath] = true

			// Early directory pruning
			if fs.shouldExclude(rel) || fs.shouldExclude(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if fs.shouldExclude(rel) || !fs.shouldInclude(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
