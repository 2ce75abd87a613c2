package proofread

import (
	"io"

	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/sse"
)

// Stream yields decoded proofread frames in arrival order while folding them
// into a Result.
type Stream struct {
	body    io.ReadCloser
	frames  *sse.Reader
	reducer Reducer
}

// NewStream reads frames from r. Closing the Stream closes r when it is an
// io.Closer.
func NewStream(r io.Reader) *Stream {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	return &Stream{body: rc, frames: sse.NewReader(rc)}
}

// Next returns the next decoded frame, or nil, nil once the stream ends.
// Frames that do not decode are skipped.
func (s *Stream) Next() (*Event, error) {
	for {
		frame, err := s.frames.Next()
		if err != nil {
			return nil, &kagierr.TransportError{Op: "reading proofread stream", Err: err}
		}
		if frame == nil {
			return nil, nil
		}
		if ev, ok := s.reducer.Add(*frame); ok {
			return &ev, nil
		}
	}
}

// Result returns the fold of every frame consumed so far.
func (s *Stream) Result() (*Result, error) {
	return s.reducer.Result()
}

// Close abandons the stream and releases the connection.
func (s *Stream) Close() error {
	return s.body.Close()
}
