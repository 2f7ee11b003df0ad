// Package pathutil converts between the absolute paths used on disk and the
// slash-separated, root-relative paths used in reports, config patterns and
// tool arguments.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to a slash-separated path relative to
// rootDir. Paths that are already relative, or that lie outside rootDir, are
// returned unchanged apart from separator normalization.
//
// Examples:
//   - ToRelative("/home/user/app/src/App.tsx", "/home/user/app") → "src/App.tsx"
//   - ToRelative("/other/App.tsx", "/home/user/app") → "/other/App.tsx"
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" || !filepath.IsAbs(absPath) {
		return filepath.ToSlash(absPath)
	}
	rel, ok := Within(rootDir, absPath)
	if !ok {
		return filepath.ToSlash(filepath.Clean(absPath))
	}
	return rel
}

// Within resolves path against rootDir (relative paths are joined to it) and
// returns the slash-separated relative form. ok is false when the result
// leaves rootDir.
func Within(rootDir, path string) (rel string, ok bool) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(rootDir, abs)
	}
	r, err := filepath.Rel(filepath.Clean(rootDir), filepath.Clean(abs))
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(r), true
}
