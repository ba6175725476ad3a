package anthropic

import "encoding/json"

// Tool describes a tool the model may invoke. InputSchema is a JSON Schema
// document; it is carried opaquely and never validated client-side.
type Tool struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	InputSchema  json.RawMessage `json:"input_schema"`
	CacheControl *CacheControl   `json:"cache_control,omitempty"`
}

// Cached returns a copy with a cache breakpoint set. Idempotent.
func (t Tool) Cached() Tool {
	t.CacheControl = Ephemeral()
	return t
}

// ToolChoice directs how the model selects tools.
type ToolChoice struct {
	// Type is "auto", "any", or "tool".
	Type string `json:"type"`
	// Name names the forced tool when Type is "tool".
	Name string `json:"name,omitempty"`
}

// ToolAuto lets the model decide whether to use a tool.
func ToolAuto() *ToolChoice { return &ToolChoice{Type: "auto"} }

// ToolAny forces the model to use some tool.
func ToolAny() *ToolChoice { return &ToolChoice{Type: "any"} }

// ToolNamed forces the model to use the named tool.
func ToolNamed(name string) *ToolChoice { return &ToolChoice{Type: "tool", Name: name} }
