package sse

import (
	"bufio"
	"io"
	"strings"
)

const (
	initialBufferSize = 64 * 1024
	maxLineSize       = 4 * 1024 * 1024
)

// Reader reads SSE events from a source io.Reader one at a time.
//
// Lines starting with ":" are comments. Lines that are neither blank, a
// comment, nor one of the "event:", "data:" and "id:" fields are ignored and
// do not terminate the event being accumulated.
type Reader struct {
	scanner *bufio.Scanner

	eventType string
	id        string
	data      []string
}

// NewReader returns a Reader that parses SSE events from src.
func NewReader(src io.Reader) *Reader {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, initialBufferSize), maxLineSize)

	return &Reader{scanner: scanner}
}

// Next returns the next parsed SSE event. It blocks until a complete event is
// available (terminated by a blank line in the stream).
// Next returns nil, nil when the source is exhausted.
func (r *Reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if len(r.data) > 0 {
				ev := &Event{
					Type: r.eventType,
					Data: strings.Join(r.data, "\n"),
					ID:   r.id,
				}
				r.reset()
				return ev, nil
			}

			// Blank line with nothing to emit, e.g. an id-only block or
			// a keep-alive.
			r.reset()
			continue
		}

		r.parseLine(line)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	// Unterminated accumulation is dropped.
	r.reset()
	return nil, nil
}

func (r *Reader) parseLine(line string) {
	switch {
	case strings.HasPrefix(line, ":"):
		// comment
	case strings.HasPrefix(line, "data:"):
		value := strings.TrimPrefix(line, "data:")
		r.data = append(r.data, strings.TrimPrefix(value, " "))
	case strings.HasPrefix(line, "event:"):
		r.eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
	case strings.HasPrefix(line, "id:"):
		r.id = strings.TrimSpace(strings.TrimPrefix(line, "id:"))
	default:
		// "retry:", unknown fields and bare lines such as the "hi" greeting
		// sent by the search socket are not part of any event.
	}
}

func (r *Reader) reset() {
	r.eventType = ""
	r.id = ""
	r.data = nil
}

// Parse frames an entire SSE text into its events, in order.
func Parse(text string) ([]Event, error) {
	r := NewReader(strings.NewReader(text))

	var events []Event
	for {
		ev, err := r.Next()
		if err != nil {
			return events, err
		}
		if ev == nil {
			return events, nil
		}
		events = append(events, *ev)
	}
}
