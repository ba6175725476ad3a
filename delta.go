package anthropic

import "encoding/json"

// Delta is a sealed interface for the smallest unit of incremental content
// in a stream: a text fragment or a partial-JSON fragment. Deltas of the
// same variant merge by concatenation; merging across variants is a contract
// violation reported as a [ContentMismatch], never a panic.
type Delta interface {
	delta()

	// Merge concatenates other onto the receiver. Both deltas must be the
	// same variant.
	Merge(other Delta) (Delta, error)
}

// TextDelta is a fragment of text content (wire tag "text_delta").
type TextDelta struct {
	Text string
}

func (TextDelta) delta() {}

// Merge implements [Delta].
func (d TextDelta) Merge(other Delta) (Delta, error) {
	o, ok := other.(TextDelta)
	if !ok {
		return nil, &ContentMismatch{From: deltaName(other), To: deltaName(d)}
	}
	return TextDelta{Text: d.Text + o.Text}, nil
}

// JSONDelta is a fragment of a JSON document (wire tag "input_json_delta").
// Fragments accumulate toward one complete document; an individual fragment
// is usually not valid JSON on its own.
type JSONDelta struct {
	PartialJSON string
}

func (JSONDelta) delta() {}

// Merge implements [Delta].
func (d JSONDelta) Merge(other Delta) (Delta, error) {
	o, ok := other.(JSONDelta)
	if !ok {
		return nil, &ContentMismatch{From: deltaName(other), To: deltaName(d)}
	}
	return JSONDelta{PartialJSON: d.PartialJSON + o.PartialJSON}, nil
}

// Interface compliance checks.
var (
	_ Delta = TextDelta{}
	_ Delta = JSONDelta{}
)

// mergeDeltas left-folds deltas into one. Returns nil for an empty sequence.
func mergeDeltas(deltas []Delta) (Delta, error) {
	if len(deltas) == 0 {
		return nil, nil
	}
	acc := deltas[0]
	for _, d := range deltas[1:] {
		merged, err := acc.Merge(d)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

func deltaName(d Delta) string {
	switch d.(type) {
	case TextDelta:
		return "TextDelta"
	case JSONDelta:
		return "JSONDelta"
	default:
		return "Delta"
	}
}

// deltaJSON is the wire representation of a delta.
type deltaJSON struct {
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	PartialJSON string `json:"partial_json,omitempty"`
}

func marshalDelta(d Delta) ([]byte, error) {
	switch v := d.(type) {
	case TextDelta:
		return json.Marshal(deltaJSON{Type: "text_delta", Text: v.Text})
	case JSONDelta:
		return json.Marshal(deltaJSON{Type: "input_json_delta", PartialJSON: v.PartialJSON})
	default:
		return nil, &ContentMismatch{From: deltaName(d), To: "wire delta"}
	}
}

func unmarshalDelta(data []byte) (Delta, error) {
	var raw deltaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch raw.Type {
	case "text_delta", "text":
		return TextDelta{Text: raw.Text}, nil
	case "input_json_delta":
		return JSONDelta{PartialJSON: raw.PartialJSON}, nil
	default:
		return nil, errUnknownTag("delta", raw.Type)
	}
}
