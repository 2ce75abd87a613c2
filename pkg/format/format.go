// Package format projects capability results into the output formats the
// CLI and the MCP server emit: indented JSON, Markdown, and CSV.
package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// Format is an output format name.
type Format string

const (
	// Console is the styled terminal rendering; the projections in this
	// package do not handle it.
	Console Format = "console"
	JSON    Format = "json"
	MD      Format = "md"
	CSV     Format = "csv"
)

// Formats lists every accepted format in display order.
func Formats() []Format {
	return []Format{Console, JSON, MD, CSV}
}

// Parse validates a format name.
func Parse(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of console, json, md, csv)", s)
}

func (f Format) String() string {
	return string(f)
}

// toJSON marshals v with two-space indentation. HTML characters and
// non-ASCII text are written as-is.
func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// csvRows writes a header and rows with CRLF line endings.
func csvRows(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("writing csv rows: %w", err)
	}
	return buf.String(), nil
}

func unsupported(f Format) error {
	return fmt.Errorf("format %q has no text projection", f)
}
