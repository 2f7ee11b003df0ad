// Package mcp exposes classification, analysis and wrapping as Model Context
// Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/analyzer"
	"github.com/standardbeagle/lingo/internal/classifier"
	"github.com/standardbeagle/lingo/internal/config"
	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/security"
	"github.com/standardbeagle/lingo/internal/transformer"
	"github.com/standardbeagle/lingo/internal/version"
	"github.com/standardbeagle/lingo/pkg/pathutil"
)

type Server struct {
	cfg         *config.Config
	adapter     adapter.FrameworkAdapter
	analyzer    *analyzer.Analyzer
	transformer *transformer.Transformer
	classifier  *classifier.Classifier
	validator   *security.FileValidator
	server      *mcp.Server
	logger      *slog.Logger
}

// NewServer builds a server for the project described by cfg.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fa, err := cfg.FrameworkAdapter()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:         cfg,
		adapter:     fa,
		analyzer:    analyzer.New(fa),
		transformer: transformer.New(fa),
		classifier:  adapter.Classifier(fa),
		validator:   security.NewFileValidator(),
		logger:      logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "lingo",
			Version: version.Info(),
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Start serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting MCP server", "root", s.cfg.Project.Root, "adapter", s.adapter.Name())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "info",
		Description: "Server version, project root and the active translation adapter.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleInfo)

	s.server.AddTool(&mcp.Tool{
		Name:        "classify",
		Description: "Decide whether a single string is user-facing text that should be translated.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"text": {Type: "string", Description: "The string content, without quotes"},
				"context": {
					Type:        "string",
					Description: "Where the string appears",
					Enum:        []any{"markup-text", "markup-attribute", "string-literal", "template-literal"},
				},
				"attribute": {Type: "string", Description: "Enclosing markup attribute name, e.g. placeholder"},
				"call":      {Type: "string", Description: "Enclosing call, e.g. console.log"},
				"variable":  {Type: "string", Description: "Name of the variable the string initializes"},
			},
			Required: []string{"text"},
		},
	}, s.handleClassify)

	s.server.AddTool(&mcp.Tool{
		Name:        "analyze_file",
		Description: "List the untranslated, user-facing strings of a JS/JSX/TS/TSX file with their positions, confidence and wrap strategy.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path":           {Type: "string", Description: "File path relative to the project root"},
				"source":         {Type: "string", Description: "File content to analyze instead of reading path; path still selects the dialect"},
				"min_confidence": {Type: "string", Enum: []any{"high", "medium", "low"}},
			},
			Required: []string{"path"},
		},
	}, s.handleAnalyzeFile)

	s.server.AddTool(&mcp.Tool{
		Name:        "wrap_file",
		Description: "Wrap the untranslated strings of a file in translation calls and components, adding hooks and imports. Returns the rewritten source; writes it only when write is true.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path":           {Type: "string", Description: "File path relative to the project root"},
				"source":         {Type: "string", Description: "File content to rewrite instead of reading path"},
				"min_confidence": {Type: "string", Enum: []any{"high", "medium", "low"}},
				"keys": {
					Type:        "array",
					Items:       &jsonschema.Schema{Type: "string"},
					Description: "Only wrap candidates with these line:column keys, as returned by analyze_file",
				},
				"write": {Type: "boolean", Description: "Write the result back to path"},
			},
			Required: []string{"path"},
		},
	}, s.handleWrapFile)

	debug.LogMCP("registered tools for adapter %s\n", s.adapter.Name())
}

// resolve maps a client path onto the project root and refuses paths that
// leave it.
func (s *Server) resolve(path string) (abs, rel string, err error) {
	if path == "" {
		return "", "", fmt.Errorf("path is required")
	}
	rel, ok := pathutil.Within(s.cfg.Project.Root, path)
	if !ok {
		return "", "", fmt.Errorf("path %q is outside the project root", path)
	}
	return filepath.Join(s.cfg.Project.Root, filepath.FromSlash(rel)), rel, nil
}
