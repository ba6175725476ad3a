package anthropic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anthropic "github.com/telsho/anthropic-go"
)

func TestUsageAdd(t *testing.T) {
	t.Parallel()

	u := anthropic.Usage{InputTokens: 10, OutputTokens: 5}
	u.Add(anthropic.Usage{InputTokens: 3, OutputTokens: 7})
	assert.Equal(t, uint64(13), u.InputTokens)
	assert.Equal(t, uint64(12), u.OutputTokens)
	assert.Nil(t, u.CacheReadInputTokens)
}

func TestUsageAddCacheFields(t *testing.T) {
	t.Parallel()

	read := uint64(100)
	u := anthropic.Usage{}
	u.Add(anthropic.Usage{CacheReadInputTokens: &read})
	require.NotNil(t, u.CacheReadInputTokens)
	assert.Equal(t, uint64(100), *u.CacheReadInputTokens)

	u.Add(anthropic.Usage{CacheReadInputTokens: &read})
	assert.Equal(t, uint64(200), *u.CacheReadInputTokens)
}
