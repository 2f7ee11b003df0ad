package pathutil

import "os"

// WriteFile replaces path's contents, keeping its permission bits. New files
// are created 0644.
func WriteFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
