// Package proofread calls Kagi's proofreading endpoint and folds its SSE
// stream into a Result.
package proofread

import "encoding/json"

// DetectedLanguage is the source language Kagi recognised.
type DetectedLanguage struct {
	ISO   string `json:"iso"`
	Label string `json:"label"`
}

// ToneAnalysis describes the overall tone of the text.
type ToneAnalysis struct {
	OverallTone string `json:"overall_tone"`
	Description string `json:"description"`
}

// WritingStatistics are the metrics Kagi reports for the text.
type WritingStatistics struct {
	WordCount                int     `json:"word_count"`
	CharacterCount           int     `json:"character_count"`
	CharacterCountNoSpaces   int     `json:"character_count_no_spaces"`
	ParagraphCount           int     `json:"paragraph_count"`
	SentenceCount            int     `json:"sentence_count"`
	AverageWordsPerSentence  float64 `json:"average_words_per_sentence"`
	AverageCharactersPerWord float64 `json:"average_characters_per_word"`
	VocabularyDiversity      float64 `json:"vocabulary_diversity"`
	ReadingTimeMinutes       float64 `json:"reading_time_minutes"`
	ReadingLevel             string  `json:"reading_level"`
	ReadabilityScore         float64 `json:"readability_score"`
}

// Analysis is the post-correction report that normally ends the stream.
// Changes are kept as the raw records Kagi sends.
type Analysis struct {
	CorrectedText      string            `json:"corrected_text"`
	Changes            []json.RawMessage `json:"changes"`
	CorrectionsSummary string            `json:"corrections_summary"`
	ToneAnalysis       ToneAnalysis      `json:"tone_analysis"`
	WritingStatistics  WritingStatistics `json:"writing_statistics"`
}

// Result is the folded outcome of one proofread call.
type Result struct {
	DetectedLanguage *DetectedLanguage `json:"detected_language"`
	Text             string            `json:"text"`
	Analysis         *Analysis         `json:"analysis"`
}

// EventKind classifies one decoded stream frame.
type EventKind string

const (
	KindDetectedLanguage EventKind = "detected_language"
	KindDelta            EventKind = "delta"
	KindAnalysis         EventKind = "analysis"

	// KindOther covers bookkeeping frames such as text_done and done.
	KindOther EventKind = "other"
)

// Event is one decoded frame of a proofread stream. Only the field matching
// Kind is set; Raw always holds the frame's JSON.
type Event struct {
	Kind             EventKind         `json:"kind"`
	DetectedLanguage *DetectedLanguage `json:"detected_language,omitempty"`
	Delta            string            `json:"delta,omitempty"`
	Analysis         *Analysis         `json:"analysis,omitempty"`
	Raw              json.RawMessage   `json:"raw"`
}
