// Package debug carries lingo's loggers: the slog logger commands report
// through, and a component trace enabled by LINGO_DEBUG for engine internals.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Forced turns tracing on regardless of the environment. Set it at link time:
//
//	go build -ldflags "-X github.com/standardbeagle/lingo/internal/debug.Forced=true"
var Forced = "false"

var trace struct {
	mu  sync.Mutex
	out io.Writer
	// stdio carries MCP frames; nothing else may write to it.
	mcp atomic.Bool
}

// SetMCPMode silences tracing while serving MCP.
func SetMCPMode(on bool) { trace.mcp.Store(on) }

// SetDebugOutput sets where trace lines go; nil discards them.
func SetDebugOutput(w io.Writer) {
	trace.mu.Lock()
	trace.out = w
	trace.mu.Unlock()
}

// IsDebugEnabled reports whether tracing is on: Forced, LINGO_DEBUG or DEBUG
// set to 1 or true, and not in MCP mode.
func IsDebugEnabled() bool {
	if trace.mcp.Load() {
		return false
	}
	if Forced == "true" {
		return true
	}
	for _, key := range [...]string{"LINGO_DEBUG", "DEBUG"} {
		switch os.Getenv(key) {
		case "1", "true":
			return true
		}
	}
	return false
}

func emit(prefix, format string, args []any) {
	if !IsDebugEnabled() {
		return
	}
	trace.mu.Lock()
	defer trace.mu.Unlock()
	if trace.out == nil {
		return
	}
	fmt.Fprint(trace.out, prefix)
	fmt.Fprintf(trace.out, format, args...)
}

// Printf writes an untagged trace line.
func Printf(format string, args ...any) { emit("[DEBUG] ", format, args) }

// Log writes a trace line tagged with component.
func Log(component, format string, args ...any) {
	emit("[DEBUG:"+component+"] ", format, args)
}

func tagged(component string) func(string, ...any) {
	prefix := "[DEBUG:" + component + "] "
	return func(format string, args ...any) { emit(prefix, format, args) }
}

var (
	LogAnalyze   = tagged("ANALYZE")
	LogTransform = tagged("TRANSFORM")
	LogWatch     = tagged("WATCH")
	LogMCP       = tagged("MCP")
)
