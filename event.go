package anthropic

import (
	"encoding/json"
	"fmt"
)

// Event is a sealed interface for one frame of a message stream. The
// lifecycle of a successful stream is:
//
//	message_start
//	  (content_block_start, content_block_delta*, content_block_stop)*
//	message_delta
//	message_stop
//
// with ping frames possibly interleaved anywhere.
type Event interface {
	event()
}

// EventPing is a keep-alive frame. It carries nothing.
type EventPing struct{}

// EventMessageStart opens a message. The embedded response has empty content
// and no stop reason yet.
type EventMessageStart struct {
	Message Response
}

// EventContentBlockStart opens the content block at Index. The block is
// typically empty: text blocks start with "" and tool use blocks with
// unparsed input.
type EventContentBlockStart struct {
	Index int
	Block Block
}

// EventContentBlockDelta extends the content block at Index.
type EventContentBlockDelta struct {
	Index int
	Delta Delta
}

// EventContentBlockStop closes the content block at Index. No further deltas
// may address it.
type EventContentBlockStop struct {
	Index int
}

// EventMessageDelta carries top-level changes that arrive near the end of a
// message: the stop reason and final usage.
type EventMessageDelta struct {
	StopReason   *StopReason
	StopSequence *string
	Usage        *DeltaUsage
}

// EventMessageStop closes the message.
type EventMessageStop struct{}

func (EventPing) event()              {}
func (EventMessageStart) event()      {}
func (EventContentBlockStart) event() {}
func (EventContentBlockDelta) event() {}
func (EventContentBlockStop) event()  {}
func (EventMessageDelta) event()      {}
func (EventMessageStop) event()       {}

// Interface compliance checks.
var (
	_ Event = EventPing{}
	_ Event = EventMessageStart{}
	_ Event = EventContentBlockStart{}
	_ Event = EventContentBlockDelta{}
	_ Event = EventContentBlockStop{}
	_ Event = EventMessageDelta{}
	_ Event = EventMessageStop{}
)

// eventJSON is the wire shape shared by all tagged event frames.
type eventJSON struct {
	Type         string          `json:"type"`
	Message      json.RawMessage `json:"message,omitempty"`
	Index        *int            `json:"index,omitempty"`
	ContentBlock json.RawMessage `json:"content_block,omitempty"`
	Delta        json.RawMessage `json:"delta,omitempty"`
	Usage        *DeltaUsage     `json:"usage,omitempty"`
}

// messageDeltaJSON is the "delta" object of a message_delta frame.
type messageDeltaJSON struct {
	StopReason   *StopReason `json:"stop_reason,omitempty"`
	StopSequence *string     `json:"stop_sequence,omitempty"`
}

// errorEnvelope is the untagged error frame the server interleaves into a
// stream: {"error": {"type": ..., "message": ...}}.
type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// DecodeEvent decodes one data frame. Error frames are recognized first,
// before the type tag, because they carry no top-level "type" field; a
// recognized error frame is returned as an *APIError with the raw frame
// attached. Frames that match no known shape come back as a *DecodeError,
// which does not invalidate the stream.
func DecodeEvent(data []byte) (Event, error) {
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error != nil {
		env.Error.Raw = data
		return nil, env.Error
	}

	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Raw: data, Err: err}
	}

	switch raw.Type {
	case "ping":
		return EventPing{}, nil

	case "message_start":
		var msg Response
		if err := json.Unmarshal(raw.Message, &msg); err != nil {
			return nil, &DecodeError{Raw: data, Err: err}
		}
		return EventMessageStart{Message: msg}, nil

	case "content_block_start":
		if raw.Index == nil {
			return nil, &DecodeError{Raw: data, Err: errMissingField("index")}
		}
		block, err := unmarshalBlock(raw.ContentBlock)
		if err != nil {
			return nil, &DecodeError{Raw: data, Err: err}
		}
		return EventContentBlockStart{Index: *raw.Index, Block: block}, nil

	case "content_block_delta":
		if raw.Index == nil {
			return nil, &DecodeError{Raw: data, Err: errMissingField("index")}
		}
		delta, err := unmarshalDelta(raw.Delta)
		if err != nil {
			return nil, &DecodeError{Raw: data, Err: err}
		}
		return EventContentBlockDelta{Index: *raw.Index, Delta: delta}, nil

	case "content_block_stop":
		if raw.Index == nil {
			return nil, &DecodeError{Raw: data, Err: errMissingField("index")}
		}
		return EventContentBlockStop{Index: *raw.Index}, nil

	case "message_delta":
		var md messageDeltaJSON
		if raw.Delta != nil {
			if err := json.Unmarshal(raw.Delta, &md); err != nil {
				return nil, &DecodeError{Raw: data, Err: err}
			}
		}
		return EventMessageDelta{
			StopReason:   md.StopReason,
			StopSequence: md.StopSequence,
			Usage:        raw.Usage,
		}, nil

	case "message_stop":
		return EventMessageStop{}, nil

	default:
		return nil, &DecodeError{Raw: data, Err: errUnknownTag("event", raw.Type)}
	}
}

// EncodeEvent encodes an event as a data frame, the inverse of
// [DecodeEvent]. Useful for fixtures and proxies.
func EncodeEvent(e Event) ([]byte, error) {
	switch v := e.(type) {
	case EventPing:
		return json.Marshal(eventJSON{Type: "ping"})

	case EventMessageStart:
		msg, err := json.Marshal(v.Message)
		if err != nil {
			return nil, err
		}
		return json.Marshal(eventJSON{Type: "message_start", Message: msg})

	case EventContentBlockStart:
		block, err := marshalBlock(v.Block)
		if err != nil {
			return nil, err
		}
		i := v.Index
		return json.Marshal(eventJSON{Type: "content_block_start", Index: &i, ContentBlock: block})

	case EventContentBlockDelta:
		delta, err := marshalDelta(v.Delta)
		if err != nil {
			return nil, err
		}
		i := v.Index
		return json.Marshal(eventJSON{Type: "content_block_delta", Index: &i, Delta: delta})

	case EventContentBlockStop:
		i := v.Index
		return json.Marshal(eventJSON{Type: "content_block_stop", Index: &i})

	case EventMessageDelta:
		delta, err := json.Marshal(messageDeltaJSON{StopReason: v.StopReason, StopSequence: v.StopSequence})
		if err != nil {
			return nil, err
		}
		return json.Marshal(eventJSON{Type: "message_delta", Delta: delta, Usage: v.Usage})

	case EventMessageStop:
		return json.Marshal(eventJSON{Type: "message_stop"})

	default:
		return nil, fmt.Errorf("anthropic: unknown event type %T", e)
	}
}

func errMissingField(name string) error {
	return fmt.Errorf("anthropic: missing %q field", name)
}
