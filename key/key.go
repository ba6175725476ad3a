// Package key holds an Anthropic API key encrypted in process memory. The
// plaintext exists only inside [Key.Read] callers; at rest the key is sealed
// with NaCl secretbox under a per-process random secret, so it does not show
// up in heap dumps, logs, or accidental fmt verbs.
package key

import (
	"crypto/rand"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

// Length is the exact length of an Anthropic API key string.
const Length = 108

// InvalidLengthError indicates the key string was not [Length] bytes.
type InvalidLengthError struct {
	Len int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("key: invalid length %d, want %d", e.Len, Length)
}

// Key is an API key sealed in memory. The zero value is unusable; obtain one
// from [Parse].
type Key struct {
	box    []byte
	secret *[32]byte
	nonce  *[24]byte
}

// Parse validates and seals an API key string. Surrounding whitespace is
// trimmed first.
func Parse(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if len(s) != Length {
		return Key{}, &InvalidLengthError{Len: len(s)}
	}
	var secret [32]byte
	var nonce [24]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return Key{}, fmt.Errorf("key: generate secret: %w", err)
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return Key{}, fmt.Errorf("key: generate nonce: %w", err)
	}
	box := secretbox.Seal(nil, []byte(s), &nonce, &secret)
	return Key{box: box, secret: &secret, nonce: &nonce}, nil
}

// Read decrypts and returns the key string. The caller should not retain the
// plaintext longer than needed.
func (k Key) Read() (string, error) {
	if k.secret == nil {
		return "", fmt.Errorf("key: empty key")
	}
	plain, ok := secretbox.Open(nil, k.box, k.nonce, k.secret)
	if !ok {
		return "", fmt.Errorf("key: decrypt failed")
	}
	return string(plain), nil
}

// String returns a redacted form safe for logs.
func (k Key) String() string { return "sk-ant-..." }

// GoString prevents %#v from exposing internals.
func (k Key) GoString() string { return "key.Key{}" }
