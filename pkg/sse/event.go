// Package sse frames Server-Sent Events text into discrete events.
//
// The framer is single pass: Reader.Next only holds the event currently being
// accumulated. An event is emitted when a blank line terminates it and at
// least one "data:" line was seen. Every producer this package talks to ends
// its events with a blank line, so accumulation left over at end of input is
// dropped rather than emitted.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import "strings"

// Event represents a single parsed SSE event, delimited by a blank line
// in the upstream byte stream.
type Event struct {
	// Type is the SSE event type from the "event:" field.
	// An empty string means no event name was sent.
	Type string

	// Data is the concatenated contents of all "data:" lines for this event,
	// joined with "\n".
	Data string

	// ID is the last event ID from the "id:" field, if present.
	ID string
}

// Format serializes the event back into SSE wire text, including the
// terminating blank line. Framing the output of Format reproduces the event.
func (e Event) Format() string {
	var b strings.Builder
	if e.Type != "" {
		b.WriteString("event: " + e.Type + "\n")
	}
	if e.ID != "" {
		b.WriteString("id: " + e.ID + "\n")
	}
	for line := range strings.SplitSeq(e.Data, "\n") {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
