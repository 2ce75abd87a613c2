package summarizer

import (
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/kstream"
)

const (
	TagUpdate = "update"
	TagFinal  = "final"

	statusCompleted = "completed"
)

// Reducer folds summarizer records into a Result. The zero value is ready
// to use.
type Reducer struct {
	final     *frame
	completed *frame
	last      *frame
	decoded   int
}

// Add folds one record and returns it as an Update. Records with another tag
// or an undecodable payload are skipped and report false.
func (r *Reducer) Add(line kstream.Line) (Update, bool) {
	if line.Tag != TagUpdate && line.Tag != TagFinal {
		return Update{}, false
	}

	f, ok := decodeFrame(line.Payload)
	if !ok {
		return Update{}, false
	}
	r.decoded++

	if r.final == nil && (line.Tag == TagFinal || f.Type == TagFinal) {
		r.final = f
	}
	if f.Status == statusCompleted {
		r.completed = f
	}
	r.last = f

	return f.update(), true
}

// Result picks the first final record; failing that, the last record whose
// status is completed; failing that, the last record.
func (r *Reducer) Result() (*Result, error) {
	switch {
	case r.final != nil:
		return r.final.result(), nil
	case r.completed != nil:
		return r.completed.result(), nil
	case r.last != nil:
		return r.last.result(), nil
	default:
		return nil, &kagierr.StreamError{Capability: "summarize", Reason: "no update or final frames"}
	}
}

// Reduce folds a complete sequence of records.
func Reduce(lines []kstream.Line) (*Result, error) {
	var r Reducer
	for _, l := range lines {
		r.Add(l)
	}
	return r.Result()
}
