package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	script := filepath.Join(dir, "build.js")
	require.NoError(t, os.WriteFile(script, []byte("old"), 0o755))
	require.NoError(t, WriteFile(script, []byte("new")))
	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	data, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	fresh := filepath.Join(dir, "App.jsx")
	require.NoError(t, WriteFile(fresh, []byte("x")))
	info, err = os.Stat(fresh)
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0o133, "0644 before umask")
}
