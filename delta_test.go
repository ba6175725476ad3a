package anthropic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anthropic "github.com/telsho/anthropic-go"
)

func TestTextDeltaMerge(t *testing.T) {
	t.Parallel()

	merged, err := anthropic.TextDelta{Text: "Hello"}.Merge(anthropic.TextDelta{Text: " world"})
	require.NoError(t, err)
	assert.Equal(t, anthropic.TextDelta{Text: "Hello world"}, merged)
}

func TestJSONDeltaMerge(t *testing.T) {
	t.Parallel()

	merged, err := anthropic.JSONDelta{PartialJSON: `{"key":`}.Merge(anthropic.JSONDelta{PartialJSON: ` "value"}`})
	require.NoError(t, err)
	assert.Equal(t, anthropic.JSONDelta{PartialJSON: `{"key": "value"}`}, merged)
}

func TestDeltaMergeMismatch(t *testing.T) {
	t.Parallel()

	_, err := anthropic.TextDelta{Text: "hi"}.Merge(anthropic.JSONDelta{PartialJSON: "{}"})
	var mismatch *anthropic.ContentMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "JSONDelta", mismatch.From)
	assert.Equal(t, "TextDelta", mismatch.To)

	_, err = anthropic.JSONDelta{PartialJSON: "{}"}.Merge(anthropic.TextDelta{Text: "hi"})
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "TextDelta", mismatch.From)
	assert.Equal(t, "JSONDelta", mismatch.To)
}
