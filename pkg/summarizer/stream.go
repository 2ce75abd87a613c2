package summarizer

import (
	"io"

	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/kstream"
)

// Stream yields an Update per update or final record as it arrives.
type Stream struct {
	body    io.ReadCloser
	lines   *kstream.Reader
	reducer Reducer
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

// Next returns the next update, or nil, nil once the stream ends.
func (s *Stream) Next() (*Update, error) {
	for {
		line, err := s.lines.Next()
		if err != nil {
			return nil, &kagierr.TransportError{Op: "reading summarizer stream", Err: err}
		}
		if line == nil {
			return nil, nil
		}
		if u, ok := s.reducer.Add(*line); ok {
			return &u, nil
		}
	}
}

// Result returns the summary chosen from the records consumed so far.
func (s *Stream) Result() (*Result, error) {
	return s.reducer.Result()
}

// Close abandons the stream and releases the connection.
func (s *Stream) Close() error {
	return s.body.Close()
}
