package anthropic

// Metadata describes the request for abuse detection purposes.
type Metadata struct {
	// UserID is an opaque identifier for the end user, never their name or
	// contact details.
	UserID string `json:"user_id,omitempty"`
}

// Request is the body of a messages API call. Zero fields fall back to
// defaults at send time: [DefaultModel] and a max token budget of 4096.
type Request struct {
	Model         Model       `json:"model"`
	Messages      []Message   `json:"messages"`
	MaxTokens     uint64      `json:"max_tokens"`
	Metadata      *Metadata   `json:"metadata,omitempty"`
	System        *Content    `json:"system,omitempty"`
	StopSequences []string    `json:"stop_sequences,omitempty"`
	Temperature   *float64    `json:"temperature,omitempty"`
	TopP          *float64    `json:"top_p,omitempty"`
	TopK          *uint64     `json:"top_k,omitempty"`
	Tools         []Tool      `json:"tools,omitempty"`
	ToolChoice    *ToolChoice `json:"tool_choice,omitempty"`
	Stream        bool        `json:"stream,omitempty"`
}

// NewRequest returns a request with the default model and token budget.
func NewRequest(messages ...Message) *Request {
	return &Request{
		Model:     DefaultModel,
		MaxTokens: defaultMaxTokens,
		Messages:  messages,
	}
}

// AddUser appends a user turn with single-part text content.
func (r *Request) AddUser(text string) *Request {
	r.Messages = append(r.Messages, UserMessage(text))
	return r
}

// AddAssistant appends an assistant turn with single-part text content.
func (r *Request) AddAssistant(text string) *Request {
	r.Messages = append(r.Messages, AssistantMessage(text))
	return r
}

// Add appends a message.
func (r *Request) Add(m Message) *Request {
	r.Messages = append(r.Messages, m)
	return r
}

// SetSystem sets the system prompt to single-part text content.
func (r *Request) SetSystem(text string) *Request {
	c := Text(text)
	r.System = &c
	return r
}

// CacheSystem sets a cache breakpoint on the system prompt, if any.
func (r *Request) CacheSystem() *Request {
	if r.System != nil {
		r.System.Cache()
	}
	return r
}

// CacheTools sets a cache breakpoint on the final tool, if any. One marker
// on the last tool caches the whole tool definition prefix.
func (r *Request) CacheTools() *Request {
	if n := len(r.Tools); n > 0 {
		r.Tools[n-1] = r.Tools[n-1].Cached()
	}
	return r
}

// CacheLast sets a cache breakpoint on the final content block of the final
// message, if any.
func (r *Request) CacheLast() *Request {
	if n := len(r.Messages); n > 0 {
		r.Messages[n-1].Content.Cache()
	}
	return r
}

// usesCache reports whether any part of the request carries a cache
// breakpoint, which determines whether the beta header is sent.
func (r *Request) usesCache() bool {
	if r.System != nil {
		for _, b := range r.System.Parts() {
			if b.IsCached() {
				return true
			}
		}
	}
	for _, t := range r.Tools {
		if t.CacheControl != nil {
			return true
		}
	}
	for _, m := range r.Messages {
		if m.Content.IsSinglePart() {
			continue
		}
		for _, b := range m.Content.Parts() {
			if b.IsCached() {
				return true
			}
		}
	}
	return false
}

// Validate checks the request for problems the server would reject.
func (r *Request) Validate() error {
	if len(r.Messages) == 0 {
		return errValidation("at least one message is required")
	}
	if r.Messages[0].Role != RoleUser {
		return errValidation("first message must be from the user")
	}
	for i := 1; i < len(r.Messages); i++ {
		if r.Messages[i].Role == r.Messages[i-1].Role {
			return errValidation("messages must alternate between user and assistant")
		}
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 1) {
		return errValidation("temperature must be between 0 and 1")
	}
	if r.TopP != nil && (*r.TopP < 0 || *r.TopP > 1) {
		return errValidation("top_p must be between 0 and 1")
	}
	if r.ToolChoice != nil && len(r.Tools) == 0 {
		return errValidation("tool_choice requires tools")
	}
	return nil
}
