package assistant

import (
	"github.com/papercomputeco/kagi/pkg/jsonx"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/kstream"
)

const (
	TagThread     = "thread.json"
	TagNewMessage = "new_message.json"
	TagTokens     = "tokens.json"
)

// Reducer folds assistant records into a Result. The last thread.json and
// the last new_message.json win. The zero value is ready to use.
type Reducer struct {
	thread  *Thread
	message *Message
}

// Add folds one record. Other tags and undecodable payloads are ignored.
func (r *Reducer) Add(line kstream.Line) {
	switch line.Tag {
	case TagThread:
		var t Thread
		if jsonx.DecodeFirst(line.Payload, &t) == nil {
			r.thread = &t
		}
	case TagNewMessage:
		var m Message
		if jsonx.DecodeFirst(line.Payload, &m) == nil {
			r.message = &m
		}
	}
}

// Result fails with a *kagierr.MissingFrameError when the stream carried no
// thread.json or no new_message.json.
func (r *Reducer) Result() (*Result, error) {
	if r.thread == nil {
		return nil, &kagierr.MissingFrameError{Tag: TagThread}
	}
	if r.message == nil {
		return nil, &kagierr.MissingFrameError{Tag: TagNewMessage}
	}
	return &Result{Thread: *r.thread, Message: *r.message}, nil
}

// Reduce folds a complete sequence of records.
func Reduce(lines []kstream.Line) (*Result, error) {
	var r Reducer
	for _, l := range lines {
		r.Add(l)
	}
	return r.Result()
}

// SnapshotReducer turns tokens.json records into live snapshots of the
// reply. Empty snapshots and repeats of the previous one are suppressed.
type SnapshotReducer struct {
	prev string
}

// Add returns the new snapshot carried by line, if any.
func (s *SnapshotReducer) Add(line kstream.Line) (string, bool) {
	if line.Tag != TagTokens {
		return "", false
	}

	var t tokens
	if jsonx.DecodeFirst(line.Payload, &t) != nil {
		return "", false
	}
	if t.Text == "" || t.Text == s.prev {
		return "", false
	}

	s.prev = t.Text
	return t.Text, true
}
