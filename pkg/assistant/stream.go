package assistant

import (
	"io"

	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/kstream"
)

// Stream yields live reply snapshots as tokens.json records arrive. The
// records it passes over are also folded, so Result is available once Next
// has returned nil.
type Stream struct {
	body      io.ReadCloser
	lines     *kstream.Reader
	snapshots SnapshotReducer
	reducer   Reducer
}

// NewStream reads records from r. Closing the Stream closes r when it is an
// io.Closer.
func NewStream(r io.Reader) *Stream {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	return &Stream{body: rc, lines: kstream.NewLiveReader(rc)}
}

// Next returns the next distinct snapshot of the reply HTML, or "", nil
// once the stream ends.
func (s *Stream) Next() (string, error) {
	for {
		line, err := s.lines.Next()
		if err != nil {
			return "", &kagierr.TransportError{Op: "reading assistant stream", Err: err}
		}
		if line == nil {
			return "", nil
		}

		s.reducer.Add(*line)
		if text, ok := s.snapshots.Add(*line); ok {
			return text, nil
		}
	}
}

// Result returns the thread and message seen so far.
func (s *Stream) Result() (*Result, error) {
	return s.reducer.Result()
}

// Close abandons the stream and releases the connection.
func (s *Stream) Close() error {
	return s.body.Close()
}
