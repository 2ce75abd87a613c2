package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papercomputeco/kagi/pkg/proofread"
)

// Proofread renders r in f.
func Proofread(f Format, r *proofread.Result) (string, error) {
	switch f {
	case JSON:
		return toJSON(r)
	case MD:
		return ProofreadMarkdown(r), nil
	case CSV:
		return ProofreadCSV(r)
	default:
		return "", unsupported(f)
	}
}

// ProofreadMarkdown renders the analysis as sections and a statistics table.
// Without an analysis it is the corrected text alone.
func ProofreadMarkdown(r *proofread.Result) string {
	if r.Analysis == nil {
		return r.Text + "\n"
	}

	a := r.Analysis
	s := a.WritingStatistics
	table := []string{
		"## Writing Statistics\n",
		"| Metric | Value |",
		"|--------|-------|",
		fmt.Sprintf("| Word Count | %d |", s.WordCount),
		fmt.Sprintf("| Character Count | %d |", s.CharacterCount),
		fmt.Sprintf("| Sentences | %d |", s.SentenceCount),
		fmt.Sprintf("| Paragraphs | %d |", s.ParagraphCount),
		fmt.Sprintf("| Avg Words/Sentence | %.1f |", s.AverageWordsPerSentence),
		fmt.Sprintf("| Vocabulary Diversity | %.2f |", s.VocabularyDiversity),
		fmt.Sprintf("| Reading Level | %s |", s.ReadingLevel),
		fmt.Sprintf("| Readability Score | %.1f |", s.ReadabilityScore),
		fmt.Sprintf("| Reading Time | %.1f min |", s.ReadingTimeMinutes),
	}

	parts := []string{
		"## Corrected Text\n\n" + a.CorrectedText,
		"## Corrections\n\n" + a.CorrectionsSummary,
		fmt.Sprintf("## Tone\n\n**%s** -- %s", a.ToneAnalysis.OverallTone, a.ToneAnalysis.Description),
		strings.Join(table, "\n"),
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// ProofreadCSV renders metric/value rows, or a single text column when the
// stream carried no analysis.
func ProofreadCSV(r *proofread.Result) (string, error) {
	if r.Analysis == nil {
		return csvRows([]string{"text"}, [][]string{{r.Text}})
	}

	a := r.Analysis
	s := a.WritingStatistics
	return csvRows([]string{"metric", "value"}, [][]string{
		{"corrected_text", a.CorrectedText},
		{"corrections_summary", a.CorrectionsSummary},
		{"tone", a.ToneAnalysis.OverallTone + ": " + a.ToneAnalysis.Description},
		{"word_count", strconv.Itoa(s.WordCount)},
		{"character_count", strconv.Itoa(s.CharacterCount)},
		{"sentence_count", strconv.Itoa(s.SentenceCount)},
		{"paragraph_count", strconv.Itoa(s.ParagraphCount)},
		{"avg_words_per_sentence", fmt.Sprintf("%.1f", s.AverageWordsPerSentence)},
		{"vocabulary_diversity", fmt.Sprintf("%.2f", s.VocabularyDiversity)},
		{"reading_level", s.ReadingLevel},
		{"readability_score", fmt.Sprintf("%.1f", s.ReadabilityScore)},
		{"reading_time_minutes", fmt.Sprintf("%.1f", s.ReadingTimeMinutes)},
	})
}
