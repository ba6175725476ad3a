package anthropic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anthropic "github.com/telsho/anthropic-go"
)

func TestTextBlockMergeDeltas(t *testing.T) {
	t.Parallel()

	block := anthropic.TextBlock{Text: "Hello"}
	merged, err := block.MergeDeltas(
		anthropic.TextDelta{Text: ","},
		anthropic.TextDelta{Text: " world"},
	)
	require.NoError(t, err)
	assert.Equal(t, anthropic.TextBlock{Text: "Hello, world"}, merged)

	// The receiver is unchanged.
	assert.Equal(t, "Hello", block.Text)
}

func TestTextBlockMergeDeltasEmpty(t *testing.T) {
	t.Parallel()

	block := anthropic.TextBlock{Text: "Hello"}
	merged, err := block.MergeDeltas()
	require.NoError(t, err)
	assert.Equal(t, anthropic.Block(block), merged)
}

func TestTextBlockRejectsJSONDelta(t *testing.T) {
	t.Parallel()

	_, err := anthropic.TextBlock{}.MergeDeltas(anthropic.JSONDelta{PartialJSON: "{}"})
	var mismatch *anthropic.ContentMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "TextBlock", mismatch.To)
}

func TestToolUseBlockMergeDeltas(t *testing.T) {
	t.Parallel()

	block := anthropic.ToolUseBlock{ID: "tu_1", Name: "get_weather"}
	merged, err := block.MergeDeltas(
		anthropic.JSONDelta{PartialJSON: `{"location":`},
		anthropic.JSONDelta{PartialJSON: ` "Paris"}`},
	)
	require.NoError(t, err)

	tu, ok := merged.(anthropic.ToolUseBlock)
	require.True(t, ok)
	assert.JSONEq(t, `{"location": "Paris"}`, string(tu.Input))
}

func TestToolUseBlockIncompleteJSON(t *testing.T) {
	t.Parallel()

	// A lone fragment that is not a complete document is a parse error.
	_, err := anthropic.ToolUseBlock{}.MergeDeltas(anthropic.JSONDelta{PartialJSON: `{"location":`})
	require.Error(t, err)
}

func TestToolUseBlockInputReplaced(t *testing.T) {
	t.Parallel()

	block := anthropic.ToolUseBlock{Input: json.RawMessage(`{"old": true}`)}
	merged, err := block.MergeDeltas(anthropic.JSONDelta{PartialJSON: `{"new": true}`})
	require.NoError(t, err)

	tu := merged.(anthropic.ToolUseBlock)
	assert.JSONEq(t, `{"new": true}`, string(tu.Input))
}

func TestImageBlockRejectsDeltas(t *testing.T) {
	t.Parallel()

	_, err := anthropic.ImageBlock{}.MergeDeltas(anthropic.TextDelta{Text: "hi"})
	var mismatch *anthropic.ContentMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestContentPromotion(t *testing.T) {
	t.Parallel()

	c := anthropic.Text("Hello")
	assert.True(t, c.IsSinglePart())
	assert.Equal(t, 1, c.Len())

	c.Push(anthropic.TextBlock{Text: "world"})
	assert.True(t, c.IsMultiPart())
	assert.Equal(t, 2, c.Len())

	// The original text became block 0.
	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, anthropic.TextBlock{Text: "Hello"}, first)
}

func TestContentCachePromotes(t *testing.T) {
	t.Parallel()

	c := anthropic.Text("stable prefix")
	c.Cache()
	assert.True(t, c.IsMultiPart())

	last, ok := c.Last()
	require.True(t, ok)
	assert.True(t, last.IsCached())
}

func TestContentPushDelta(t *testing.T) {
	t.Parallel()

	c := anthropic.Text("Hello")
	require.NoError(t, c.PushDelta(anthropic.TextDelta{Text: ", world"}))
	assert.True(t, c.IsMultiPart())
	assert.Equal(t, "Hello, world", c.String())
}

func TestContentString(t *testing.T) {
	t.Parallel()

	c := anthropic.Blocks(
		anthropic.TextBlock{Text: "first"},
		anthropic.ToolUseBlock{ID: "tu_1", Name: "f", Input: json.RawMessage(`{}`)},
		anthropic.TextBlock{Text: "second"},
	)
	assert.Equal(t, "first\n\nsecond", c.String())
}

func TestContentJSONSinglePart(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(anthropic.Text("Hello"))
	require.NoError(t, err)
	assert.Equal(t, `"Hello"`, string(data))

	var c anthropic.Content
	require.NoError(t, json.Unmarshal([]byte(`"Hello"`), &c))
	assert.True(t, c.IsSinglePart())
	assert.Equal(t, "Hello", c.String())
}

func TestContentJSONMultiPart(t *testing.T) {
	t.Parallel()

	c := anthropic.Blocks(anthropic.TextBlock{Text: "hi"}.Cached())
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"text","text":"hi","cache_control":{"type":"ephemeral"}}]`, string(data))

	var back anthropic.Content
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsMultiPart())
	last, ok := back.Last()
	require.True(t, ok)
	assert.True(t, last.IsCached())
}

func TestContentUnmarshalToolBlocks(t *testing.T) {
	t.Parallel()

	raw := `[
		{"type":"tool_use","id":"tu_1","name":"get_weather","input":{"location":"Paris"}},
		{"type":"tool_result","tool_use_id":"tu_1","content":"sunny","is_error":false}
	]`
	var c anthropic.Content
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	require.Equal(t, 2, c.Len())

	use, ok := c.At(0)
	require.True(t, ok)
	tu, ok := use.(anthropic.ToolUseBlock)
	require.True(t, ok)
	assert.Equal(t, "get_weather", tu.Name)

	result, ok := c.At(1)
	require.True(t, ok)
	tr, ok := result.(anthropic.ToolResultBlock)
	require.True(t, ok)
	assert.Equal(t, "tu_1", tr.ToolUseID)
	assert.Equal(t, "sunny", tr.Content.String())
}

func TestContentUnmarshalUnknownBlock(t *testing.T) {
	t.Parallel()

	var c anthropic.Content
	err := json.Unmarshal([]byte(`[{"type":"hologram"}]`), &c)
	require.Error(t, err)
}
