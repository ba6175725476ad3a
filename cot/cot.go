// Package cot splits assistant text into chain-of-thought and user-facing
// segments based on XML-style thinking tags. Nested tags are not supported.
package cot

import "strings"

// DefaultStartTags are the opening tags recognized as thoughts.
var DefaultStartTags = []string{"<thinking>", "<inner-voice>", "<thought>"}

// DefaultEndTags are the closing tags paired with [DefaultStartTags].
var DefaultEndTags = []string{"</thinking>", "</inner-voice>", "</thought>"}

// Segment is a contiguous span of text that is either a thought or speech.
type Segment struct {
	// Text is the span's content, tags stripped.
	Text string
	// Thought is true for text inside thinking tags.
	Thought bool
}

// Segments splits text using the default tags.
func Segments(text string) []Segment {
	return SegmentsCustom(text, DefaultStartTags, DefaultEndTags)
}

// SegmentsCustom splits text using custom tag pairs. startTags and endTags
// are matched by earliest occurrence, independently of pairing. An opening
// tag with no closing tag swallows the rest of the text as a thought, so a
// model that forgets to close the tag never leaks its reasoning as speech.
func SegmentsCustom(text string, startTags, endTags []string) []Segment {
	var segs []Segment
	for len(text) > 0 {
		start, startTag := findFirst(text, startTags)
		if start < 0 {
			segs = append(segs, Segment{Text: text})
			break
		}
		if start > 0 {
			segs = append(segs, Segment{Text: text[:start]})
		}
		rest := text[start+len(startTag):]
		end, endTag := findFirst(rest, endTags)
		if end < 0 {
			segs = append(segs, Segment{Text: rest, Thought: true})
			break
		}
		segs = append(segs, Segment{Text: rest[:end], Thought: true})
		text = rest[end+len(endTag):]
	}
	return segs
}

// Speech returns the user-facing portions of text, concatenated.
func Speech(text string) string {
	var b strings.Builder
	for _, s := range Segments(text) {
		if !s.Thought {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Thoughts returns the chain-of-thought portions of text, in order.
func Thoughts(text string) []string {
	var out []string
	for _, s := range Segments(text) {
		if s.Thought {
			out = append(out, s.Text)
		}
	}
	return out
}

// findFirst returns the earliest occurrence of any tag, and the tag that
// matched. The first tag in the list wins ties.
func findFirst(text string, tags []string) (int, string) {
	best := -1
	var bestTag string
	for _, tag := range tags {
		if i := strings.Index(text, tag); i >= 0 && (best < 0 || i < best) {
			best, bestTag = i, tag
		}
	}
	return best, bestTag
}
