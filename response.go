package anthropic

// StopReason explains why the model stopped generating.
type StopReason string

const (
	// StopEndTurn means the model reached a natural stopping point.
	StopEndTurn StopReason = "end_turn"
	// StopMaxTokens means the max_tokens limit was hit.
	StopMaxTokens StopReason = "max_tokens"
	// StopSequence means a configured stop sequence was generated.
	StopSequence StopReason = "stop_sequence"
	// StopToolUse means the model invoked a tool.
	StopToolUse StopReason = "tool_use"
)

// Usage is billing and rate-limit token accounting. The cache fields are
// only present when prompt caching is in play.
type Usage struct {
	InputTokens              uint64  `json:"input_tokens"`
	OutputTokens             uint64  `json:"output_tokens"`
	CacheCreationInputTokens *uint64 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *uint64 `json:"cache_read_input_tokens,omitempty"`
}

// Add accumulates other into u. Cache fields are summed only when either
// side has them.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheCreationInputTokens = addOpt(u.CacheCreationInputTokens, other.CacheCreationInputTokens)
	u.CacheReadInputTokens = addOpt(u.CacheReadInputTokens, other.CacheReadInputTokens)
}

// addOpt sums two optional counters, staying nil only when both are.
func addOpt(a, b *uint64) *uint64 {
	if a == nil && b == nil {
		return nil
	}
	var sum uint64
	if a != nil {
		sum += *a
	}
	if b != nil {
		sum += *b
	}
	return &sum
}

// DeltaUsage is the partial usage carried by a message_delta event. All
// fields are optional on the wire.
type DeltaUsage struct {
	InputTokens              *uint64 `json:"input_tokens,omitempty"`
	OutputTokens             *uint64 `json:"output_tokens,omitempty"`
	CacheCreationInputTokens *uint64 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *uint64 `json:"cache_read_input_tokens,omitempty"`
}

// Response is a complete message returned by the API, or the skeleton of one
// under construction during streaming.
type Response struct {
	// ID uniquely identifies the message.
	ID string `json:"id"`
	// Type is always "message".
	Type string `json:"type,omitempty"`
	// Role is always RoleAssistant for responses.
	Role Role `json:"role"`
	// Content is the generated content.
	Content Content `json:"content"`
	// Model is the model that produced the response.
	Model Model `json:"model"`
	// StopReason is nil while generation is in progress.
	StopReason *StopReason `json:"stop_reason,omitempty"`
	// StopSequence is the matched stop sequence, when StopReason is
	// StopSequence.
	StopSequence *string `json:"stop_sequence,omitempty"`
	// Usage is the token accounting for the exchange.
	Usage Usage `json:"usage"`
}

// Message converts the response into an assistant [Message] for appending to
// a conversation.
func (r Response) Message() Message {
	return Message{Role: r.Role, Content: r.Content}
}

// ToolUses returns the tool invocations in the response, in order.
func (r Response) ToolUses() []ToolUseBlock {
	var uses []ToolUseBlock
	for _, b := range r.Content.Parts() {
		if u, ok := b.(ToolUseBlock); ok {
			uses = append(uses, u)
		}
	}
	return uses
}

// String renders the response content as plain text.
func (r Response) String() string { return r.Content.String() }
