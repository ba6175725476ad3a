package anthropic

import (
	"encoding/json"
	"fmt"
)

// CacheControl marks a prompt-caching breakpoint on a content block.
type CacheControl struct {
	Type string `json:"type"` // always "ephemeral"
}

// Ephemeral is the only cache control type the API currently accepts.
func Ephemeral() *CacheControl { return &CacheControl{Type: "ephemeral"} }

// Block is a sealed interface for one structured unit of message content,
// addressed by position within a message. The unexported marker method
// prevents external implementations.
type Block interface {
	block()

	// IsCached reports whether the block carries a cache breakpoint.
	IsCached() bool

	// MergeDeltas folds the deltas into one and applies the result,
	// returning the updated block. Only a [TextBlock] accepts a
	// [TextDelta]; only a [ToolUseBlock] accepts a [JSONDelta]. Any other
	// pairing returns a [ContentMismatch]. An empty sequence is a no-op.
	MergeDeltas(deltas ...Delta) (Block, error)
}

// TextBlock contains text content.
type TextBlock struct {
	Text         string
	CacheControl *CacheControl
}

func (TextBlock) block() {}

// IsCached implements [Block].
func (b TextBlock) IsCached() bool { return b.CacheControl != nil }

// Cached returns a copy with a cache breakpoint set. Idempotent.
func (b TextBlock) Cached() TextBlock {
	b.CacheControl = Ephemeral()
	return b
}

// MergeDeltas implements [Block] by appending the merged text.
func (b TextBlock) MergeDeltas(deltas ...Delta) (Block, error) {
	merged, err := mergeDeltas(deltas)
	if err != nil || merged == nil {
		return b, err
	}
	d, ok := merged.(TextDelta)
	if !ok {
		return b, &ContentMismatch{From: deltaName(merged), To: "TextBlock"}
	}
	b.Text += d.Text
	return b, nil
}

// ImageSource is a base64-encoded image payload.
type ImageSource struct {
	Type      string `json:"type"` // always "base64"
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// ImageBlock contains image content.
type ImageBlock struct {
	Source       ImageSource
	CacheControl *CacheControl
}

func (ImageBlock) block() {}

// IsCached implements [Block].
func (b ImageBlock) IsCached() bool { return b.CacheControl != nil }

// Cached returns a copy with a cache breakpoint set. Idempotent.
func (b ImageBlock) Cached() ImageBlock {
	b.CacheControl = Ephemeral()
	return b
}

// MergeDeltas implements [Block]. Images never accept deltas.
func (b ImageBlock) MergeDeltas(deltas ...Delta) (Block, error) {
	merged, err := mergeDeltas(deltas)
	if err != nil || merged == nil {
		return b, err
	}
	return b, &ContentMismatch{From: deltaName(merged), To: "ImageBlock"}
}

// ToolUseBlock is a tool invocation by the assistant.
type ToolUseBlock struct {
	ID           string
	Name         string
	Input        json.RawMessage
	CacheControl *CacheControl
}

func (ToolUseBlock) block() {}

// IsCached implements [Block].
func (b ToolUseBlock) IsCached() bool { return b.CacheControl != nil }

// Cached returns a copy with a cache breakpoint set. Idempotent.
func (b ToolUseBlock) Cached() ToolUseBlock {
	b.CacheControl = Ephemeral()
	return b
}

// MergeDeltas implements [Block]. The merged partial-JSON fragment is parsed
// from scratch and replaces Input wholesale. A fragment that is not yet a
// complete JSON document is a parse error; callers that receive tool-input
// deltas one at a time should collect them and apply the batch at
// content_block_stop.
func (b ToolUseBlock) MergeDeltas(deltas ...Delta) (Block, error) {
	merged, err := mergeDeltas(deltas)
	if err != nil || merged == nil {
		return b, err
	}
	d, ok := merged.(JSONDelta)
	if !ok {
		return b, &ContentMismatch{From: deltaName(merged), To: "ToolUseBlock"}
	}
	var v any
	if err := json.Unmarshal([]byte(d.PartialJSON), &v); err != nil {
		return b, fmt.Errorf("anthropic: parse tool input: %w", err)
	}
	b.Input = json.RawMessage(d.PartialJSON)
	return b, nil
}

// ToolResultBlock carries the result of a tool invocation back to the model.
type ToolResultBlock struct {
	ToolUseID    string
	Content      Content
	IsError      bool
	CacheControl *CacheControl
}

func (ToolResultBlock) block() {}

// IsCached implements [Block].
func (b ToolResultBlock) IsCached() bool { return b.CacheControl != nil }

// Cached returns a copy with a cache breakpoint set. Idempotent.
func (b ToolResultBlock) Cached() ToolResultBlock {
	b.CacheControl = Ephemeral()
	return b
}

// MergeDeltas implements [Block]. Tool results never accept deltas.
func (b ToolResultBlock) MergeDeltas(deltas ...Delta) (Block, error) {
	merged, err := mergeDeltas(deltas)
	if err != nil || merged == nil {
		return b, err
	}
	return b, &ContentMismatch{From: deltaName(merged), To: "ToolResultBlock"}
}

// Interface compliance checks.
var (
	_ Block = TextBlock{}
	_ Block = ImageBlock{}
	_ Block = ToolUseBlock{}
	_ Block = ToolResultBlock{}
)

func blockName(b Block) string {
	switch b.(type) {
	case TextBlock:
		return "TextBlock"
	case ImageBlock:
		return "ImageBlock"
	case ToolUseBlock:
		return "ToolUseBlock"
	case ToolResultBlock:
		return "ToolResultBlock"
	default:
		return "Block"
	}
}

// Content is the content of a [Message]: either a single implicit text part
// or an ordered list of [Block]s addressable by 0-based index. A single-part
// value is semantically block index 0; the first structural mutation (push,
// cache mark, delta) promotes it to multi-part. Promotion is monotonic:
// content never reverts to single-part.
//
// Content marshals to a bare JSON string in single-part form and to an array
// of blocks in multi-part form.
type Content struct {
	text  string
	parts []Block
	multi bool
}

// Text returns single-part text content.
func Text(s string) Content { return Content{text: s} }

// Blocks returns multi-part content from the given blocks.
func Blocks(blocks ...Block) Content {
	return Content{parts: blocks, multi: true}
}

// IsSinglePart reports whether the content is still in single-part form.
func (c Content) IsSinglePart() bool { return !c.multi }

// IsMultiPart reports whether the content has been promoted.
func (c Content) IsMultiPart() bool { return c.multi }

// Len returns the number of blocks. Single-part content counts as one.
func (c Content) Len() int {
	if !c.multi {
		return 1
	}
	return len(c.parts)
}

// promote converts single-part content to multi-part with the text as
// block 0. No-op when already multi-part.
func (c *Content) promote() {
	if c.multi {
		return
	}
	c.parts = []Block{TextBlock{Text: c.text}}
	c.text = ""
	c.multi = true
}

// Push appends a block, promoting single-part content first.
func (c *Content) Push(b Block) {
	c.promote()
	c.parts = append(c.parts, b)
}

// Cache sets a cache breakpoint on the final block, promoting single-part
// content first. No-op on empty multi-part content.
func (c *Content) Cache() {
	c.promote()
	if n := len(c.parts); n > 0 {
		c.parts[n-1] = cacheBlock(c.parts[n-1])
	}
}

func cacheBlock(b Block) Block {
	switch v := b.(type) {
	case TextBlock:
		return v.Cached()
	case ImageBlock:
		return v.Cached()
	case ToolUseBlock:
		return v.Cached()
	case ToolResultBlock:
		return v.Cached()
	default:
		return b
	}
}

// Last returns the final block, or false for empty multi-part content.
// Single-part content is returned as its implicit text block.
func (c Content) Last() (Block, bool) {
	if !c.multi {
		return TextBlock{Text: c.text}, true
	}
	if len(c.parts) == 0 {
		return nil, false
	}
	return c.parts[len(c.parts)-1], true
}

// At returns the block at the given index. Single-part content answers only
// index 0.
func (c Content) At(i int) (Block, bool) {
	if !c.multi {
		if i == 0 {
			return TextBlock{Text: c.text}, true
		}
		return nil, false
	}
	if i < 0 || i >= len(c.parts) {
		return nil, false
	}
	return c.parts[i], true
}

// setAt replaces the block at i, promoting first. The index must exist.
func (c *Content) setAt(i int, b Block) {
	c.promote()
	c.parts[i] = b
}

// PushDelta applies a delta to the final block, promoting single-part
// content first. The delta and block variants must be compatible.
func (c *Content) PushDelta(d Delta) error {
	c.promote()
	if len(c.parts) == 0 {
		return &ProtocolError{Index: 0, Msg: "delta with no content blocks"}
	}
	i := len(c.parts) - 1
	merged, err := c.parts[i].MergeDeltas(d)
	if err != nil {
		return err
	}
	c.parts[i] = merged
	return nil
}

// Parts returns the blocks of multi-part content, or the implicit text
// block for single-part content. The returned slice must not be mutated.
func (c Content) Parts() []Block {
	if !c.multi {
		return []Block{TextBlock{Text: c.text}}
	}
	return c.parts
}

// String renders the content as plain text: single-part text as-is,
// multi-part text blocks joined by blank lines. Non-text blocks are elided.
func (c Content) String() string {
	if !c.multi {
		return c.text
	}
	var out string
	for _, p := range c.parts {
		t, ok := p.(TextBlock)
		if !ok {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += t.Text
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	if !c.multi {
		return json.Marshal(c.text)
	}
	raw := make([]json.RawMessage, len(c.parts))
	for i, p := range c.parts {
		b, err := marshalBlock(p)
		if err != nil {
			return nil, err
		}
		raw[i] = b
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Content{text: s}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parts := make([]Block, len(raw))
	for i, r := range raw {
		b, err := unmarshalBlock(r)
		if err != nil {
			return err
		}
		parts[i] = b
	}
	*c = Content{parts: parts, multi: true}
	return nil
}

// blockJSON is the wire representation of a block.
type blockJSON struct {
	Type         string          `json:"type"`
	Text         *string         `json:"text,omitempty"`
	Source       *ImageSource    `json:"source,omitempty"`
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name,omitempty"`
	Input        json.RawMessage `json:"input,omitempty"`
	ToolUseID    string          `json:"tool_use_id,omitempty"`
	Content      *Content        `json:"content,omitempty"`
	IsError      bool            `json:"is_error,omitempty"`
	CacheControl *CacheControl   `json:"cache_control,omitempty"`
}

func marshalBlock(b Block) ([]byte, error) {
	switch v := b.(type) {
	case TextBlock:
		return json.Marshal(blockJSON{Type: "text", Text: &v.Text, CacheControl: v.CacheControl})
	case ImageBlock:
		src := v.Source
		return json.Marshal(blockJSON{Type: "image", Source: &src, CacheControl: v.CacheControl})
	case ToolUseBlock:
		return json.Marshal(blockJSON{Type: "tool_use", ID: v.ID, Name: v.Name, Input: v.Input, CacheControl: v.CacheControl})
	case ToolResultBlock:
		content := v.Content
		return json.Marshal(blockJSON{Type: "tool_result", ToolUseID: v.ToolUseID, Content: &content, IsError: v.IsError, CacheControl: v.CacheControl})
	default:
		return nil, fmt.Errorf("anthropic: unknown block type %T", b)
	}
}

func unmarshalBlock(data []byte) (Block, error) {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch raw.Type {
	// "text_delta" is accepted because empty blocks in content_block_start
	// frames share the delta's shape.
	case "text", "text_delta":
		var text string
		if raw.Text != nil {
			text = *raw.Text
		}
		return TextBlock{Text: text, CacheControl: raw.CacheControl}, nil
	case "image":
		var src ImageSource
		if raw.Source != nil {
			src = *raw.Source
		}
		return ImageBlock{Source: src, CacheControl: raw.CacheControl}, nil
	case "tool_use":
		return ToolUseBlock{ID: raw.ID, Name: raw.Name, Input: raw.Input, CacheControl: raw.CacheControl}, nil
	case "tool_result":
		var content Content
		if raw.Content != nil {
			content = *raw.Content
		}
		return ToolResultBlock{ToolUseID: raw.ToolUseID, Content: content, IsError: raw.IsError, CacheControl: raw.CacheControl}, nil
	default:
		return nil, errUnknownTag("content block", raw.Type)
	}
}

func errUnknownTag(kind, tag string) error {
	return fmt.Errorf("anthropic: unknown %s type %q", kind, tag)
}
