package anthropic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anthropic "github.com/telsho/anthropic-go"
)

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     *anthropic.Request
		wantErr bool
	}{
		{
			name:    "empty",
			req:     anthropic.NewRequest(),
			wantErr: true,
		},
		{
			name:    "single user message",
			req:     anthropic.NewRequest(anthropic.UserMessage("Hi")),
			wantErr: false,
		},
		{
			name:    "assistant first",
			req:     anthropic.NewRequest(anthropic.AssistantMessage("Hi")),
			wantErr: true,
		},
		{
			name:    "non-alternating",
			req:     anthropic.NewRequest(anthropic.UserMessage("a"), anthropic.UserMessage("b")),
			wantErr: true,
		},
		{
			name:    "alternating",
			req:     anthropic.NewRequest().AddUser("a").AddAssistant("b").AddUser("c"),
			wantErr: false,
		},
		{
			name: "temperature out of range",
			req: func() *anthropic.Request {
				r := anthropic.NewRequest(anthropic.UserMessage("Hi"))
				temp := 1.5
				r.Temperature = &temp
				return r
			}(),
			wantErr: true,
		},
		{
			name: "tool choice without tools",
			req: func() *anthropic.Request {
				r := anthropic.NewRequest(anthropic.UserMessage("Hi"))
				r.ToolChoice = anthropic.ToolAuto()
				return r
			}(),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, anthropic.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestJSON(t *testing.T) {
	t.Parallel()

	req := anthropic.NewRequest().
		AddUser("Hello").
		SetSystem("Be brief.")
	req.StopSequences = []string{"\n\n"}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"model": "claude-sonnet-4-20250514",
		"max_tokens": 4096,
		"system": "Be brief.",
		"stop_sequences": ["\n\n"],
		"messages": [{"role": "user", "content": "Hello"}]
	}`, string(data))
}

func TestRequestCacheMarkers(t *testing.T) {
	t.Parallel()

	req := anthropic.NewRequest().AddUser("long document here").CacheLast()
	req.Tools = []anthropic.Tool{{Name: "get_weather", InputSchema: json.RawMessage(`{"type":"object"}`)}}
	req.CacheTools()

	last := req.Messages[0].Content
	assert.True(t, last.IsMultiPart())
	block, ok := last.Last()
	require.True(t, ok)
	assert.True(t, block.IsCached())
	assert.NotNil(t, req.Tools[0].CacheControl)
}

func TestResponseToolUses(t *testing.T) {
	t.Parallel()

	resp := anthropic.Response{
		Role: anthropic.RoleAssistant,
		Content: anthropic.Blocks(
			anthropic.TextBlock{Text: "Let me check."},
			anthropic.ToolUseBlock{ID: "tu_1", Name: "get_weather", Input: json.RawMessage(`{"location":"Paris"}`)},
		),
	}
	uses := resp.ToolUses()
	require.Len(t, uses, 1)
	assert.Equal(t, "tu_1", uses[0].ID)

	msg := resp.Message()
	assert.Equal(t, anthropic.RoleAssistant, msg.Role)
	assert.Equal(t, "Let me check.", msg.Content.String())
}
