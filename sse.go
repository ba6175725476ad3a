package anthropic

import (
	"bufio"
	"io"
	"strings"
)

// sseScanner frames a server-sent events byte stream into events. Each call
// to Scan advances to the next complete frame; Event and Data return the
// frame's fields. Comment lines (leading ':') and unknown fields are
// ignored. Multiple data lines within one frame are joined with newlines.
type sseScanner struct {
	s     *bufio.Scanner
	event string
	data  []string
	err   error
}

func newSSEScanner(r io.Reader) *sseScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &sseScanner{s: s}
}

// Scan advances to the next frame. It returns false at end of input or on a
// read error; check Err to distinguish.
func (sc *sseScanner) Scan() bool {
	sc.event = ""
	sc.data = sc.data[:0]

	for sc.s.Scan() {
		line := sc.s.Text()
		switch {
		case line == "":
			// Blank line dispatches the frame, but only if it has content.
			if len(sc.data) > 0 || sc.event != "" {
				return true
			}
		case strings.HasPrefix(line, ":"):
			// comment
		case strings.HasPrefix(line, "event:"):
			sc.event = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			sc.data = append(sc.data, strings.TrimPrefix(line[len("data:"):], " "))
		}
	}
	sc.err = sc.s.Err()

	// Dispatch a final unterminated frame at EOF.
	return sc.err == nil && (len(sc.data) > 0 || sc.event != "")
}

// Event returns the current frame's event name, possibly empty.
func (sc *sseScanner) Event() string { return sc.event }

// Data returns the current frame's data payload.
func (sc *sseScanner) Data() []byte {
	return []byte(strings.Join(sc.data, "\n"))
}

// Err returns the first read error encountered, if any.
func (sc *sseScanner) Err() error { return sc.err }
