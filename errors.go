package anthropic

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrNoMessage indicates the accumulator has not seen a message_start.
	ErrNoMessage = errors.New("no message started")
)

func errValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Server error type tags as they appear on the wire.
const (
	ErrTypeInvalidRequest  = "invalid_request_error"
	ErrTypeAuthentication  = "authentication_error"
	ErrTypePermission      = "permission_error"
	ErrTypeNotFound        = "not_found_error"
	ErrTypeRequestTooLarge = "request_too_large" // inconsistency is in the API
	ErrTypeRateLimit       = "rate_limit_error"
	ErrTypeAPI             = "api_error"
	ErrTypeOverloaded      = "overloaded_error"
)

// APIError is a structured error reported by the server, either in the body
// of a non-200 HTTP response or as a data frame in an event stream.
// Unrecognized future error types are carried through as-is.
type APIError struct {
	// Type is the server's error type tag, e.g. "overloaded_error".
	Type string `json:"type"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Raw is the original frame or body the error was decoded from, when
	// available. Retained for diagnostics.
	Raw []byte `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic: %s: %s", e.Type, e.Message)
}

// Transient reports whether the condition resolves on its own: the server
// keeps sending on the same stream once ready, so there is nothing for the
// caller to retry. See [Stream.FilterTransient].
func (e *APIError) Transient() bool {
	return e.Type == ErrTypeRateLimit || e.Type == ErrTypeOverloaded
}

// Status returns the HTTP status code associated with the error type, or 0
// for unrecognized types.
func (e *APIError) Status() int {
	switch e.Type {
	case ErrTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrTypeAuthentication:
		return http.StatusUnauthorized
	case ErrTypePermission:
		return http.StatusForbidden
	case ErrTypeNotFound:
		return http.StatusNotFound
	case ErrTypeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrTypeRateLimit:
		return http.StatusTooManyRequests
	case ErrTypeAPI:
		return http.StatusInternalServerError
	case ErrTypeOverloaded:
		return 529
	default:
		return 0
	}
}

// DecodeError indicates a frame's JSON did not match any recognized event
// shape. It does not invalidate the connection; the stream continues after
// yielding it.
type DecodeError struct {
	// Raw is the frame that failed to decode.
	Raw []byte
	// Err is the underlying JSON error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("anthropic: decode event %q: %v", e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError indicates the underlying connection failed. It is fatal:
// the stream yields it once and then ends.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("anthropic: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ContentMismatch indicates a delta was applied to an incompatible target:
// either two deltas of different variants were merged, or a delta was
// dispatched into a content block of the wrong shape.
type ContentMismatch struct {
	// From is the variant of the delta being applied.
	From string
	// To is the variant of the merge target.
	To string
}

func (e *ContentMismatch) Error() string {
	return fmt.Sprintf("anthropic: cannot apply %s to %s", e.From, e.To)
}

// ProtocolError indicates the event sequence violated the message lifecycle,
// for example a delta addressed to a block that was never started or was
// already stopped.
type ProtocolError struct {
	// Index is the content block index involved, or -1 when the violation
	// is not block-scoped.
	Index int
	// Msg describes the violation.
	Msg string
}

func (e *ProtocolError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("anthropic: protocol violation: %s", e.Msg)
	}
	return fmt.Sprintf("anthropic: protocol violation at block %d: %s", e.Index, e.Msg)
}
