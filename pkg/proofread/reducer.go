package proofread

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/papercomputeco/kagi/pkg/jsonx"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/sse"
)

// Reducer folds SSE frames into a Result. The zero value is ready to use.
type Reducer struct {
	language *DetectedLanguage
	text     strings.Builder
	analysis *Analysis
	decoded  int
}

// Add folds one frame and returns its decoded form. Frames whose data is not
// a JSON object are skipped and report false.
func (r *Reducer) Add(frame sse.Event) (Event, bool) {
	ev, ok := Decode(frame.Data)
	if !ok {
		return Event{}, false
	}
	r.decoded++

	switch ev.Kind {
	case KindDetectedLanguage:
		if r.language == nil {
			r.language = ev.DetectedLanguage
		}
	case KindDelta:
		r.text.WriteString(ev.Delta)
	case KindAnalysis:
		r.analysis = ev.Analysis
	}
	return ev, true
}

// Result returns the fold so far. It fails only when no frame decoded.
func (r *Reducer) Result() (*Result, error) {
	if r.decoded == 0 {
		return nil, &kagierr.StreamError{Capability: "proofread", Reason: "no decodable frames"}
	}
	return &Result{
		DetectedLanguage: r.language,
		Text:             r.text.String(),
		Analysis:         r.analysis,
	}, nil
}

// Reduce folds a complete sequence of frames.
func Reduce(frames []sse.Event) (*Result, error) {
	var r Reducer
	for _, f := range frames {
		r.Add(f)
	}
	return r.Result()
}

// Decode classifies the JSON data of one frame. The keys are checked in the
// order detected_language, delta, analysis; a key whose value has the wrong
// shape leaves the frame as KindOther. Fields inside a value are read one by
// one, so a mistyped field only loses its own value.
func Decode(data string) (Event, bool) {
	rec, ok := jsonx.Record(data)
	if !ok {
		return Event{}, false
	}

	ev := Event{Kind: KindOther, Raw: json.RawMessage(rec.Raw)}

	if v := rec.Get("detected_language"); v.Exists() {
		if v.IsObject() {
			ev.Kind = KindDetectedLanguage
			ev.DetectedLanguage = &DetectedLanguage{
				ISO:   jsonx.String(v.Get("iso")),
				Label: jsonx.String(v.Get("label")),
			}
		}
		return ev, true
	}

	if v := rec.Get("delta"); v.Exists() {
		if v.Type == gjson.String {
			ev.Kind = KindDelta
			ev.Delta = v.String()
		}
		return ev, true
	}

	if v := rec.Get("analysis"); v.IsObject() {
		ev.Kind = KindAnalysis
		ev.Analysis = decodeAnalysis(v)
	}
	return ev, true
}

func decodeAnalysis(v gjson.Result) *Analysis {
	tone := v.Get("tone_analysis")
	stats := v.Get("writing_statistics")

	changes := []json.RawMessage{}
	v.Get("changes").ForEach(func(_, c gjson.Result) bool {
		changes = append(changes, json.RawMessage(c.Raw))
		return true
	})

	return &Analysis{
		CorrectedText:      jsonx.String(v.Get("corrected_text")),
		Changes:            changes,
		CorrectionsSummary: jsonx.String(v.Get("corrections_summary")),
		ToneAnalysis: ToneAnalysis{
			OverallTone: jsonx.String(tone.Get("overall_tone")),
			Description: jsonx.String(tone.Get("description")),
		},
		WritingStatistics: WritingStatistics{
			WordCount:                jsonx.Int(stats.Get("word_count")),
			CharacterCount:           jsonx.Int(stats.Get("character_count")),
			CharacterCountNoSpaces:   jsonx.Int(stats.Get("character_count_no_spaces")),
			ParagraphCount:           jsonx.Int(stats.Get("paragraph_count")),
			SentenceCount:            jsonx.Int(stats.Get("sentence_count")),
			AverageWordsPerSentence:  jsonx.Float(stats.Get("average_words_per_sentence")),
			AverageCharactersPerWord: jsonx.Float(stats.Get("average_characters_per_word")),
			VocabularyDiversity:      jsonx.Float(stats.Get("vocabulary_diversity")),
			ReadingTimeMinutes:       jsonx.Float(stats.Get("reading_time_minutes")),
			ReadingLevel:             jsonx.String(stats.Get("reading_level")),
			ReadabilityScore:         jsonx.Float(stats.Get("readability_score")),
		},
	}
}
