// Package watch re-analyzes source files as they change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/pkg/pathutil"
)

// EventType is the net effect of the events seen for a path during one
// debounce window.
type EventType int

const (
	EventWrite EventType = iota
	EventCreate
	EventRemove
)

func (t EventType) String() string {
	switch t {
	case EventCreate:
		return "create"
	case EventRemove:
		return "remove"
	default:
		return "write"
	}
}

// Event is a change to a file, relative to the watched root.
type Event struct {
	Path string
	Type EventType
}

// FileWatcher watches every non-excluded directory below the scanner's root
// and delivers batches of matching file events after a quiet period.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	scanner  *analyzer.FileScanner
	debounce time.Duration
	logger   *slog.Logger
	pending  map[string]EventType
}

// NewFileWatcher creates a watcher for the files scanner would analyze.
func NewFileWatcher(scanner *analyzer.FileScanner, debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &FileWatcher{
		watcher:  w,
		scanner:  scanner,
		debounce: debounce,
		logger:   logger,
		pending:  make(map[string]EventType),
	}, nil
}

// Run watches until ctx is cancelled, calling handle with each debounced
// batch sorted by path. handle runs on the watcher's goroutine. The
// underlying watcher is closed when Run returns; events pending at
// cancellation are dropped.
func (fw *FileWatcher) Run(ctx context.Context, handle func([]Event)) error {
	defer fw.watcher.Close()

	root := fw.scanner.Root()
	debug.LogWatch("starting file watcher for %s\n", root)
	if err := fw.addWatches(root); err != nil {
		return fmt.Errorf("failed to add watches starting from %s: %w", root, err)
	}

	timer := time.NewTimer(fw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if fw.handleEvent(event) {
				timer.Reset(fw.debounce)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn("file watcher error", "error", err)

		case <-timer.C:
			if batch := fw.flush(); len(batch) > 0 {
				handle(batch)
			}
		}
	}
}

func (fw *FileWatcher) addWatches(root string) error {
	visited := make(map[string]bool)
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil || visited[realPath] {
			return filepath.SkipDir
		}
		visited[realPath] = true

		if path != root && fw.scanner.Excluded(fw.rel(path)) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn("failed to watch directory", "dir", path, "error", err)
		}
		return nil
	})
}

func (fw *FileWatcher) rel(path string) string {
	return pathutil.ToRelative(path, fw.scanner.Root())
}

// handleEvent records event and reports whether it is pending.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) bool {
	debug.LogWatch("received %v for %s\n", event.Op, event.Name)
	rel := fw.rel(event.Name)

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !fw.scanner.Excluded(rel) {
				if err := fw.addWatches(event.Name); err != nil {
					fw.logger.Warn("failed to watch new directory", "dir", rel, "error", err)
				}
			}
			return false
		}
	}
	if !fw.scanner.Match(rel) {
		return false
	}

	var t EventType
	switch {
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		t = EventRemove
	case event.Op.Has(fsnotify.Create):
		t = EventCreate
	case event.Op.Has(fsnotify.Write):
		t = EventWrite
	default:
		return false
	}

	// a file created and then written in one window is still a creation
	if prev, ok := fw.pending[rel]; ok && prev == EventCreate && t == EventWrite {
		t = EventCreate
	}
	fw.pending[rel] = t
	return true
}

func (fw *FileWatcher) flush() []Event {
	batch := make([]Event, 0, len(fw.pending))
	for path, t := range fw.pending {
		batch = append(batch, Event{Path: path, Type: t})
	}
	clear(fw.pending)
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
	debug.LogWatch("flushing %d events\n", len(batch))
	return batch
}
