// Package kstream frames Kagi's "tag:payload" line stream
// (application/vnd.kagi.stream) into tagged records.
//
// A record starts on a line of the form "tag:payload" where tag matches
// [a-zA-Z_][a-zA-Z0-9_.\-]*. Non-blank lines that follow and do not start a
// new record are continuation lines and are joined into the payload with
// "\n". Blank lines are skipped without ending the record.
//
//	hi:{"v":"202509261613"}
//	thread.json:{"id":"abc","title":"Test"}
//	thread_list.html:
//	  <div class="hide-if-no-threads">
//	  </div>
//	tokens.json:{"text":"<p>hello</p>","id":"msg-1"}
package kstream

import (
	"bufio"
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/papercomputeco/kagi/pkg/jsonx"
)

const (
	initialBufferSize = 64 * 1024
	maxLineSize       = 4 * 1024 * 1024
)

var tagRe = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_.\-]*):(.*)$`)

// Line is one framed record of the stream.
type Line struct {
	Tag     string
	Payload string
}

// ParseLine classifies a single line. Surrounding whitespace is ignored.
// It returns false when the line does not start a record.
func ParseLine(line string) (Line, bool) {
	return match(strings.TrimSpace(line))
}

func match(line string) (Line, bool) {
	m := tagRe.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false
	}
	return Line{Tag: m[1], Payload: m[2]}, true
}

// Reader frames records from a source io.Reader one at a time. A record is
// only complete once the next tag line or end of input is seen, so Next holds
// at most one record in memory.
type Reader struct {
	scanner *bufio.Scanner
	live    bool

	current *Line
	parts   []string
	ready   *Line
}

// NewReader returns a Reader that frames records from src.
func NewReader(src io.Reader) *Reader {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, initialBufferSize), maxLineSize)

	return &Reader{scanner: scanner}
}

// NewLiveReader is NewReader for streams consumed as they arrive. A record
// whose inline payload already holds a complete JSON value is returned as
// soon as its line is read, and the continuation lines after it are dropped.
// Decoding the first JSON value of such a payload gives the same result
// either way.
func NewLiveReader(src io.Reader) *Reader {
	r := NewReader(src)
	r.live = true
	return r
}

// Next returns the next record. Lines before the first tag line are dropped.
// Next returns nil, nil when the source is exhausted.
func (r *Reader) Next() (*Line, error) {
	if r.ready != nil {
		line := r.ready
		r.ready = nil
		return line, nil
	}

	for r.scanner.Scan() {
		raw := r.scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		next, isTag := match(raw)
		if !isTag {
			if r.current != nil {
				r.parts = append(r.parts, raw)
			}
			continue
		}

		done := r.flush()
		if r.live && completeJSON(next.Payload) {
			if done == nil {
				return &next, nil
			}
			r.ready = &next
			return done, nil
		}

		r.current = &next
		r.parts = []string{next.Payload}
		if done != nil {
			return done, nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	return r.flush(), nil
}

// flush completes the record being accumulated, if any. Blank parts (such as
// the empty inline remainder of "thread_list.html:") do not contribute.
func (r *Reader) flush() *Line {
	if r.current == nil {
		return nil
	}

	kept := make([]string, 0, len(r.parts))
	for _, p := range r.parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}

	line := &Line{Tag: r.current.Tag, Payload: strings.Join(kept, "\n")}
	r.current = nil
	r.parts = nil
	return line
}

func completeJSON(payload string) bool {
	var v json.RawMessage
	return jsonx.DecodeFirst(payload, &v) == nil
}

// Parse frames an entire stream text into its records, in order.
func Parse(text string) ([]Line, error) {
	r := NewReader(strings.NewReader(text))

	var lines []Line
	for {
		line, err := r.Next()
		if err != nil {
			return lines, err
		}
		if line == nil {
			return lines, nil
		}
		lines = append(lines, *line)
	}
}
