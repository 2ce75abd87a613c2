// Package cliui provides reusable terminal UI helpers (spinners, styles,
// tables, markdown rendering) for kagi CLI commands.
package cliui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	SuccessMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	StepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	DimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	WarnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	NameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	KeyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Bold(true)
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	LinkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Underline(true)
	ThinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	BorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
)

// spinnerFrames matches bubbletea's spinner.Dot pattern.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Step prints an animated spinner while fn runs, then replaces it with
// a ✓ or ✗ checkmark and elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	done := make(chan struct{})
	var mu sync.Mutex

	go func() {
		frame := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			mu.Lock()
			fmt.Fprintf(w, "\r  %s %s",
				spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]),
				msg,
			)
			mu.Unlock()

			select {
			case <-done:
				return
			case <-ticker.C:
				frame++
			}
		}
	}()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	close(done)

	mu.Lock()
	fmt.Fprintf(w, "\r  %s %s %s\n",
		Mark(err),
		msg,
		StepStyle.Render(fmt.Sprintf("(%s)", FormatDuration(elapsed))),
	)
	mu.Unlock()

	return err
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// RenderMarkdown renders markdown content for terminal display using glamour.
// On failure the content is returned unrendered alongside the error.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}

	return rendered, nil
}

// KeyValueTable renders two-column rows with styled labels.
func KeyValueTable(rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return KeyStyle.Padding(0, 1)
			}
			return ValueStyle.Padding(0, 1)
		}).
		Rows(rows...)
	return t.Render()
}

// Table renders rows under a bold header row.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle.Padding(0, 1)
			case col == 0:
				return KeyStyle.Padding(0, 1)
			default:
				return ValueStyle.Padding(0, 1)
			}
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

// Panel draws body inside a rounded border with title above it.
func Panel(title, body string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("237")).
		Padding(0, 1).
		Render(body)
	if title == "" {
		return box
	}
	return TitleStyle.Render(title) + "\n" + box
}

// ColorProfile returns the color profile for output written to f.
// NO_COLOR and non-terminal output yield termenv.Ascii.
func ColorProfile(f *os.File) termenv.Profile {
	return termenv.NewOutput(f).EnvColorProfile()
}

// ConfigureColor applies the color profile of f to every lipgloss style.
func ConfigureColor(f *os.File) {
	lipgloss.SetColorProfile(ColorProfile(f))
}

// Truncate shortens s to width terminal cells, keeping ANSI sequences intact.
// A width of zero or less leaves s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in an int
}

// ReadSecret reads a line from f without echoing it when f is a terminal.
func ReadSecret(f *os.File) (string, error) {
	if !IsTerminal(f) {
		return "", fmt.Errorf("%s is not a terminal", f.Name())
	}
	b, err := term.ReadPassword(int(f.Fd())) //nolint:gosec // file descriptors fit in an int
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(b), nil
}
