package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papercomputeco/kagi/pkg/summarizer"
)

// Summary renders r in f.
func Summary(f Format, r *summarizer.Result) (string, error) {
	switch f {
	case JSON:
		return toJSON(r)
	case MD:
		return SummaryMarkdown(r), nil
	case CSV:
		return SummaryCSV(r)
	default:
		return "", unsupported(f)
	}
}

// SummaryMarkdown renders the title, the summary, and a metadata table.
func SummaryMarkdown(r *summarizer.Result) string {
	meta := r.ResponseMetadata
	ws := r.WordStats

	rows := []string{
		"## Metadata\n",
		"| Field | Value |",
		"|-------|-------|",
		fmt.Sprintf("| Model | %s |", meta.Model),
	}
	if meta.Speed != nil {
		rows = append(rows, fmt.Sprintf("| Speed | %.1f tok/s |", *meta.Speed))
	}
	rows = append(rows,
		fmt.Sprintf("| Tokens | %d |", meta.Tokens),
		fmt.Sprintf("| Cost | $%.4f |", meta.Cost),
	)
	if r.ElapsedSeconds != nil {
		rows = append(rows, fmt.Sprintf("| Elapsed | %.1fs |", *r.ElapsedSeconds))
	}
	rows = append(rows,
		fmt.Sprintf("| Source Words | %d |", ws.NWords),
		fmt.Sprintf("| Source Pages | %d |", ws.NPages),
		fmt.Sprintf("| Time Saved | %ds |", ws.TimeSaved),
	)

	parts := []string{
		"# " + r.Title,
		r.Markdown,
		strings.Join(rows, "\n"),
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// SummaryCSV renders field/value rows. Speed and elapsed time are appended
// only when Kagi reported them.
func SummaryCSV(r *summarizer.Result) (string, error) {
	meta := r.ResponseMetadata
	ws := r.WordStats

	rows := [][]string{
		{"title", r.Title},
		{"summary", r.Markdown},
		{"model", meta.Model},
		{"tokens", strconv.Itoa(meta.Tokens)},
		{"cost", fmt.Sprintf("%.4f", meta.Cost)},
		{"source_words", strconv.Itoa(ws.NWords)},
		{"source_pages", strconv.Itoa(ws.NPages)},
		{"time_saved", strconv.Itoa(ws.TimeSaved)},
	}
	if meta.Speed != nil {
		rows = append(rows, []string{"speed", fmt.Sprintf("%.1f", *meta.Speed)})
	}
	if r.ElapsedSeconds != nil {
		rows = append(rows, []string{"elapsed_seconds", fmt.Sprintf("%.1f", *r.ElapsedSeconds)})
	}
	return csvRows([]string{"field", "value"}, rows)
}
