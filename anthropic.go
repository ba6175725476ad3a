// Package anthropic is a client SDK for the Anthropic Messages API.
//
// A [Client] sends a [Request] and returns either a complete [Response] or a
// [Stream] of server-sent events. The stream is pull-based: call
// [Stream.Next] until it returns io.EOF, or narrow it first with the
// composable views [Stream.FilterTransient], [Stream.Deltas] and
// [Stream.Text]. An [Accumulator] folds streamed events back into a
// [Response].
package anthropic

const (
	defaultBaseURL    = "https://api.anthropic.com"
	defaultMaxTokens  = 4096
	apiVersion        = "2023-06-01"
	promptCachingBeta = "prompt-caching-2024-07-31"
	messagesPath      = "/v1/messages"
)
