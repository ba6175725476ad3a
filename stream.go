package anthropic

import (
	"io"
)

// Stream is a pull-based reader of message events. Call Next until it
// returns io.EOF, then Close. A Stream is not safe for concurrent use.
//
// Errors from Next come in two severities. A *TransportError means the
// connection failed; it is returned once and every later call returns
// io.EOF. All other errors are item-level: an *APIError is an error the
// server put on the stream, a *DecodeError is a frame that did not parse.
// Both leave the stream usable and the next call keeps reading.
type Stream struct {
	body   io.ReadCloser
	sc     *sseScanner
	filter bool
	done   bool
	closed bool
}

// NewStream reads server-sent events from body. The stream takes ownership
// of body and closes it via [Stream.Close].
func NewStream(body io.ReadCloser) *Stream {
	return &Stream{body: body, sc: newSSEScanner(body)}
}

// FilterTransient drops transient server errors (rate limiting, overload)
// from the stream instead of yielding them. The server keeps the connection
// open through those conditions, so there is nothing for the caller to do
// with them. Idempotent; returns the same stream for chaining.
func (s *Stream) FilterTransient() *Stream {
	s.filter = true
	return s
}

// Next returns the next event. It returns io.EOF when the stream is
// exhausted. See the type documentation for error semantics.
func (s *Stream) Next() (Event, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}
	if s.done {
		return nil, io.EOF
	}
	for s.sc.Scan() {
		ev, err := DecodeEvent(s.sc.Data())
		if err != nil {
			if apiErr, ok := err.(*APIError); ok && s.filter && apiErr.Transient() {
				continue
			}
			return nil, err
		}
		return ev, nil
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		return nil, &TransportError{Err: err}
	}
	return nil, io.EOF
}

// Close releases the underlying connection. Safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}

// Deltas returns a view of the stream that yields only content deltas, in
// arrival order. Lifecycle events are skipped; errors pass through with the
// same severities as [Stream.Next].
func (s *Stream) Deltas() *DeltaStream { return &DeltaStream{s: s} }

// DeltaStream is the view returned by [Stream.Deltas].
type DeltaStream struct {
	s *Stream
}

// Next returns the next content delta, or io.EOF.
func (d *DeltaStream) Next() (Delta, error) {
	for {
		ev, err := d.s.Next()
		if err != nil {
			return nil, err
		}
		if e, ok := ev.(EventContentBlockDelta); ok {
			return e.Delta, nil
		}
	}
}

// Text returns a view of the stream that yields only text fragments, in
// arrival order. Tool-input deltas and lifecycle events are skipped; errors
// pass through with the same severities as [Stream.Next].
func (s *Stream) Text() *TextStream { return &TextStream{d: s.Deltas()} }

// TextStream is the view returned by [Stream.Text].
type TextStream struct {
	d *DeltaStream
}

// Next returns the next text fragment, or io.EOF.
func (t *TextStream) Next() (string, error) {
	for {
		delta, err := t.d.Next()
		if err != nil {
			return "", err
		}
		if td, ok := delta.(TextDelta); ok {
			return td.Text, nil
		}
	}
}

// Response drains the stream into a complete [Response] and closes it.
// Transient server errors are skipped; any other error aborts and is
// returned.
func (s *Stream) Response() (Response, error) {
	defer s.Close()
	s.FilterTransient()
	var acc Accumulator
	for {
		ev, err := s.Next()
		if err == io.EOF {
			return acc.Response()
		}
		if err != nil {
			return Response{}, err
		}
		if err := acc.Apply(ev); err != nil {
			return Response{}, err
		}
	}
}
