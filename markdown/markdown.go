// Package markdown renders conversations as markdown documents, suitable for
// transcripts and for feeding to an HTML or terminal renderer.
package markdown

import (
	"fmt"
	"strings"

	"github.com/telsho/anthropic-go"
)

// Options controls which parts of a conversation are rendered.
type Options struct {
	// System includes the system prompt under its own heading.
	System bool
	// ToolUse includes tool invocations as fenced JSON blocks.
	ToolUse bool
	// ToolResults includes tool results.
	ToolResults bool
	// HeadingLevel is the level used for role headings. Zero means 3.
	HeadingLevel int
}

// Default renders only user and assistant text.
func Default() Options { return Options{} }

// Verbose renders everything.
func Verbose() Options {
	return Options{System: true, ToolUse: true, ToolResults: true}
}

func (o Options) heading() string {
	level := o.HeadingLevel
	if level <= 0 {
		level = 3
	}
	return strings.Repeat("#", level)
}

// Request renders a full conversation, optionally with its system prompt.
func Request(r *anthropic.Request, o Options) string {
	var b strings.Builder
	if o.System && r.System != nil {
		writeSection(&b, o.heading()+" System", Content(*r.System, o))
	}
	for _, m := range r.Messages {
		writeSection(&b, o.heading()+" "+m.Role.String(), Content(m.Content, o))
	}
	return b.String()
}

// Message renders one turn with a role heading.
func Message(m anthropic.Message, o Options) string {
	var b strings.Builder
	writeSection(&b, o.heading()+" "+m.Role.String(), Content(m.Content, o))
	return b.String()
}

// Response renders the response content with an assistant heading.
func Response(r anthropic.Response, o Options) string {
	return Message(r.Message(), o)
}

// Content renders message content. Blocks filtered out by the options are
// elided.
func Content(c anthropic.Content, o Options) string {
	var parts []string
	for _, block := range c.Parts() {
		if s := Block(block, o); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Block renders one content block, or "" when the options exclude it. Images
// become markdown images with embedded base64 data URIs.
func Block(b anthropic.Block, o Options) string {
	switch v := b.(type) {
	case anthropic.TextBlock:
		return v.Text
	case anthropic.ImageBlock:
		return fmt.Sprintf("![Image](data:%s;base64,%s)", v.Source.MediaType, v.Source.Data)
	case anthropic.ToolUseBlock:
		if !o.ToolUse {
			return ""
		}
		return fmt.Sprintf("Tool call: `%s`\n\n```json\n%s\n```", v.Name, string(v.Input))
	case anthropic.ToolResultBlock:
		if !o.ToolResults {
			return ""
		}
		return "Tool result:\n\n" + Content(v.Content, o)
	default:
		return ""
	}
}

func writeSection(b *strings.Builder, heading, body string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(heading)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
}
