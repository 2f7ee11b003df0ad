package mcp

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/lingo/internal/suggest"
)

// UnknownField is an argument the tool does not recognize. It is reported
// back as a warning instead of failing the call.
type UnknownField struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	// Suggestion is the closest known parameter, if any is close.
	Suggestion string `json:"suggestion,omitempty"`
}

// decodeArgs unmarshals raw into params and lists the top-level keys that are
// not in known.
func decodeArgs(raw json.RawMessage, params any, known ...string) ([]UnknownField, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if err := json.Unmarshal(raw, params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	allowed := make(map[string]bool, len(known))
	for _, k := range known {
		allowed[k] = true
	}
	var unknown []UnknownField
	for name, value := range fields {
		if allowed[name] {
			continue
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			v = string(value)
		}
		u := UnknownField{Name: name, Value: v}
		u.Suggestion, _ = suggest.Closest(name, known)
		unknown = append(unknown, u)
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Name < unknown[j].Name })
	return unknown, nil
}

func createJSONResponse(data any) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(content)}},
	}, nil
}

// createResponseWithWarnings adds a "warnings" member to data's JSON object.
func createResponseWithWarnings(data any, unknown []UnknownField) (*mcp.CallToolResult, error) {
	if len(unknown) == 0 {
		return createJSONResponse(data)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return createJSONResponse(data)
	}
	warnings := make([]string, 0, len(unknown))
	for _, u := range unknown {
		w := fmt.Sprintf("unknown parameter %q ignored", u.Name)
		if u.Suggestion != "" {
			w += fmt.Sprintf(", did you mean %q?", u.Suggestion)
		}
		warnings = append(warnings, w)
	}
	m["warnings"] = warnings
	return createJSONResponse(m)
}

// createErrorResponse reports a tool failure inside the result with IsError
// set, so the client model sees the message rather than a protocol error.
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	res, marshalErr := createJSONResponse(map[string]any{
		"success":   false,
		"error":     err.Error(),
		"operation": operation,
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	res.IsError = true
	return res, nil
}
