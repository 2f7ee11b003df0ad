package mcp

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/lingo/internal/filter"
	"github.com/standardbeagle/lingo/internal/types"
	"github.com/standardbeagle/lingo/internal/version"
	"github.com/standardbeagle/lingo/pkg/pathutil"
)

type ClassifyParams struct {
	Text      string `json:"text"`
	Context   string `json:"context"`
	Attribute string `json:"attribute"`
	Call      string `json:"call"`
	Variable  string `json:"variable"`
}

type FileParams struct {
	Path          string   `json:"path"`
	Source        *string  `json:"source"`
	MinConfidence string   `json:"min_confidence"`
	Keys          []string `json:"keys"`
	Write         bool     `json:"write"`
}

type AnalyzeResponse struct {
	File       string                `json:"file"`
	Count      int                   `json:"count"`
	Candidates []types.WrapCandidate `json:"candidates"`
}

type WrapResponse struct {
	File    string                 `json:"file"`
	Written bool                   `json:"written"`
	Result  *types.TransformResult `json:"result"`
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return createJSONResponse(map[string]any{
		"server_version": version.FullInfo(),
		"go_version":     runtime.Version(),
		"root":           s.cfg.Project.Root,
		"adapter": map[string]string{
			"name":          s.adapter.Name(),
			"import_source": s.adapter.ImportSource(),
			"component":     s.adapter.ComponentName(),
			"function":      s.adapter.FunctionName(),
			"hook":          s.adapter.HookName(),
		},
		"tools": []string{"info", "classify", "analyze_file", "wrap_file"},
	})
}

func (s *Server) handleClassify(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p ClassifyParams
	unknown, err := decodeArgs(req.Params.Arguments, &p, "text", "context", "attribute", "call", "variable")
	if err != nil {
		return createErrorResponse("classify", err)
	}

	c := types.ContextStringLiteral
	if p.Context != "" {
		if c, err = types.ParseContext(p.Context); err != nil {
			return createErrorResponse("classify", err)
		}
	} else if p.Attribute != "" {
		c = types.ContextMarkupAttribute
	}
	meta := types.Metadata{Attribute: p.Attribute, Call: p.Call, VariableName: p.Variable}
	if p.Variable != "" {
		meta.ParentKind = types.ParentVariableDeclarator
	}

	cls := s.classifier.Classify(p.Text, c, meta)
	return createResponseWithWarnings(struct {
		Text    string `json:"text"`
		Context string `json:"context"`
		types.Classification
	}{p.Text, c.String(), cls}, unknown)
}

func (s *Server) handleAnalyzeFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p FileParams
	unknown, err := decodeArgs(req.Params.Arguments, &p, "path", "source", "min_confidence")
	if err != nil {
		return createErrorResponse("analyze_file", err)
	}
	rel, _, cands, err := s.candidates(p)
	if err != nil {
		return createErrorResponse("analyze_file", err)
	}
	if cands == nil {
		cands = []types.WrapCandidate{}
	}
	return createResponseWithWarnings(AnalyzeResponse{File: rel, Count: len(cands), Candidates: cands}, unknown)
}

func (s *Server) handleWrapFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p FileParams
	unknown, err := decodeArgs(req.Params.Arguments, &p, "path", "source", "min_confidence", "keys", "write")
	if err != nil {
		return createErrorResponse("wrap_file", err)
	}
	rel, src, cands, err := s.candidates(p)
	if err != nil {
		return createErrorResponse("wrap_file", err)
	}
	if len(p.Keys) > 0 {
		want := make(map[string]bool, len(p.Keys))
		for _, k := range p.Keys {
			want[k] = true
		}
		kept := cands[:0]
		for _, c := range cands {
			if want[c.Key()] {
				kept = append(kept, c)
			}
		}
		cands = kept
	}

	res, err := s.transformer.Transform(rel, src, cands)
	if err != nil {
		return createErrorResponse("wrap_file", err)
	}

	written := false
	if p.Write && p.Source == nil && res.Changed() {
		abs, _, _ := s.resolve(p.Path)
		if err := pathutil.WriteFile(abs, res.Output); err != nil {
			return createErrorResponse("wrap_file", err)
		}
		written = true
		s.logger.Info("wrapped file", "file", rel, "wrapped", res.WrappedCount)
	}
	return createResponseWithWarnings(WrapResponse{File: rel, Written: written, Result: res}, unknown)
}

// candidates reads or takes the source named by p and analyzes it, keeping
// candidates at or above the requested confidence.
func (s *Server) candidates(p FileParams) (rel string, src []byte, cands []types.WrapCandidate, err error) {
	abs, rel, err := s.resolve(p.Path)
	if err != nil {
		return "", nil, nil, err
	}
	if p.Source != nil {
		src = []byte(*p.Source)
	} else {
		if err = s.validator.ValidateFile(abs); err != nil {
			return "", nil, nil, fmt.Errorf("%s: %w", rel, err)
		}
		if src, err = os.ReadFile(abs); err != nil {
			return "", nil, nil, fmt.Errorf("reading %s: %w", rel, err)
		}
	}

	threshold := s.cfg.MinConfidence()
	if p.MinConfidence != "" {
		if threshold, err = types.ParseConfidence(p.MinConfidence); err != nil {
			return "", nil, nil, err
		}
	}

	cands, err = s.analyzer.Analyze(rel, src)
	if err != nil {
		return "", nil, nil, err
	}
	return rel, src, filter.ByConfidence(cands, threshold), nil
}
