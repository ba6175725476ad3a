package anthropic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	anthropic "github.com/telsho/anthropic-go"
)

func TestAPIErrorStatus(t *testing.T) {
	t.Parallel()

	statuses := map[string]int{
		anthropic.ErrTypeInvalidRequest:  400,
		anthropic.ErrTypeAuthentication:  401,
		anthropic.ErrTypePermission:      403,
		anthropic.ErrTypeNotFound:        404,
		anthropic.ErrTypeRequestTooLarge: 413,
		anthropic.ErrTypeRateLimit:       429,
		anthropic.ErrTypeAPI:             500,
		anthropic.ErrTypeOverloaded:      529,
	}
	for typ, want := range statuses {
		err := &anthropic.APIError{Type: typ}
		assert.Equal(t, want, err.Status(), typ)
	}
	assert.Equal(t, 0, (&anthropic.APIError{Type: "future_error"}).Status())
}

func TestAPIErrorTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, (&anthropic.APIError{Type: anthropic.ErrTypeRateLimit}).Transient())
	assert.True(t, (&anthropic.APIError{Type: anthropic.ErrTypeOverloaded}).Transient())
	assert.False(t, (&anthropic.APIError{Type: anthropic.ErrTypeAPI}).Transient())
	assert.False(t, (&anthropic.APIError{Type: anthropic.ErrTypeInvalidRequest}).Transient())
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	apiErr := &anthropic.APIError{Type: "overloaded_error", Message: "Overloaded"}
	assert.Equal(t, "anthropic: overloaded_error: Overloaded", apiErr.Error())

	mismatch := &anthropic.ContentMismatch{From: "JSONDelta", To: "TextBlock"}
	assert.Equal(t, "anthropic: cannot apply JSONDelta to TextBlock", mismatch.Error())

	protoErr := &anthropic.ProtocolError{Index: 2, Msg: "block never started"}
	assert.Contains(t, protoErr.Error(), "block 2")
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	assert.ErrorIs(t, &anthropic.TransportError{Err: inner}, inner)
	assert.ErrorIs(t, &anthropic.DecodeError{Raw: []byte("{}"), Err: inner}, inner)
}
