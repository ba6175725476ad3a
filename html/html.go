// Package html converts conversations to HTML. Rendering goes through the
// markdown package first, then goldmark converts the markdown to HTML.
package html

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/telsho/anthropic-go"
	"github.com/telsho/anthropic-go/markdown"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
)

// Render converts a markdown document to HTML. The unsafe renderer option is
// on so that data-URI images embedded by the markdown package survive.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Request renders a full conversation as HTML.
func Request(r *anthropic.Request, o markdown.Options) (string, error) {
	return Render(markdown.Request(r, o))
}

// Message renders one turn as HTML.
func Message(m anthropic.Message, o markdown.Options) (string, error) {
	return Render(markdown.Message(m, o))
}

// Response renders a response as HTML.
func Response(r anthropic.Response, o markdown.Options) (string, error) {
	return Render(markdown.Response(r, o))
}

// Content renders message content as HTML.
func Content(c anthropic.Content, o markdown.Options) (string, error) {
	return Render(markdown.Content(c, o))
}
