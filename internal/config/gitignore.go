package config

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// gitignoreGlobs converts root/.gitignore into exclusion globs. A missing
// file yields none.
func gitignoreGlobs(root string) ([]string, error) {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var globs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		globs = append(globs, ignoreLineGlobs(sc.Text())...)
	}
	return globs, sc.Err()
}

// ignoreLineGlobs translates one .gitignore line. Negations cannot be
// expressed as exclusions and are dropped, as are comments and blanks.
func ignoreLineGlobs(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' || line[0] == '!' {
		return nil
	}

	dirOnly := strings.HasSuffix(line, "/")
	line = strings.TrimSuffix(line, "/")
	// Any slash other than a trailing one anchors the entry at the root.
	anchored := strings.Contains(line, "/")
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return nil
	}
	if !anchored {
		line = "**/" + line
	}
	if !doublestar.ValidatePattern(line) {
		return nil
	}
	if dirOnly {
		return []string{line + "/**"}
	}
	return []string{line, line + "/**"}
}
