package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/analyzer"
)

const banner = `export function Banner() {
  return <div>Welcome to our app</div>;
}
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileWatcher_DebouncesBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))

	fw, err := NewFileWatcher(analyzer.NewFileScanner(root, nil, nil), 50*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan []Event, 4)
	done := make(chan error, 1)
	go func() {
		done <- fw.Run(ctx, func(b []Event) {
			select {
			case batches <- b:
			default:
			}
		})
	}()

	// the watch is installed asynchronously; retry until the first batch
	var got []Event
	deadline := time.After(5 * time.Second)
	for got == nil {
		writeFile(t, root, "src/Banner.jsx", banner)
		writeFile(t, root, "src/notes.md", "ignored")
		writeFile(t, root, "node_modules/pkg/index.js", "ignored")
		select {
		case got = <-batches:
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("no batch delivered")
		}
	}

	require.NotEmpty(t, got)
	for _, ev := range got {
		assert.Equal(t, "src/Banner.jsx", ev.Path)
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileWatcher_MissingRoot(t *testing.T) {
	defer goleak.VerifyNone(t)

	fw, err := NewFileWatcher(analyzer.NewFileScanner(filepath.Join(t.TempDir(), "gone"), nil, nil), 0, nil)
	require.NoError(t, err)
	assert.Error(t, fw.Run(context.Background(), func([]Event) {}))
}

func TestFileWatcher_FlushOrder(t *testing.T) {
	fw := &FileWatcher{pending: map[string]EventType{
		"src/b.jsx": EventWrite,
		"src/a.jsx": EventCreate,
	}}
	assert.Equal(t, []Event{
		{Path: "src/a.jsx", Type: EventCreate},
		{Path: "src/b.jsx", Type: EventWrite},
	}, fw.flush())
	assert.Empty(t, fw.pending)
}

func TestSession_ReportsOnlyNewCandidates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Banner.jsx", banner)

	a := analyzer.New(adapter.ReactI18next())
	res, err := a.AnalyzeProject(context.Background(), analyzer.ProjectOptions{Root: root})
	require.NoError(t, err)

	s := NewSession(a, root, nil)
	s.Seed(res)

	writeFile(t, root, "src/Banner.jsx", `export function Banner() {
  return (
    <section>
      <div>Welcome to our app</div>
      <p>Your trial ends soon</p>
    </section>
  );
}
`)
	writeFile(t, root, "src/broken.jsx", "export const = ;")

	reports := s.Handle([]Event{
		{Path: "src/Banner.jsx", Type: EventWrite},
		{Path: "src/broken.jsx", Type: EventCreate},
		{Path: "src/old.jsx", Type: EventRemove},
	})
	require.Len(t, reports, 2)

	assert.Equal(t, "src/Banner.jsx", reports[0].Path)
	assert.Equal(t, 2, reports[0].Total)
	require.Len(t, reports[0].Added, 1)
	assert.Equal(t, "Your trial ends soon", reports[0].Added[0].Text)

	assert.Equal(t, "src/broken.jsx", reports[1].Path)
	assert.Error(t, reports[1].Err)

	// unchanged content yields nothing new
	again := s.Handle([]Event{{Path: "src/Banner.jsx", Type: EventWrite}})
	require.Len(t, again, 1)
	assert.Empty(t, again[0].Added)
}
