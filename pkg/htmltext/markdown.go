package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// ToMarkdown converts reply HTML into Markdown. It understands the subset
// the assistant emits: paragraphs, headings, line breaks, list items,
// bold and italic runs, inline code, and fenced code blocks whose language
// comes from a "language-*" class.
func ToMarkdown(fragment string) string {
	m := &markdownBuilder{}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(m.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			m.handleStart(tok)
		case html.EndTagToken:
			tok := z.Token()
			m.handleEnd(tok.Data)
		case html.TextToken:
			m.writeText(string(z.Text()))
		}
	}
}

type markdownBuilder struct {
	strings.Builder
	inPre       bool
	inCodeBlock bool
	blockClosed bool
}

func (m *markdownBuilder) ensureBlankLine() {
	if m.Len() == 0 {
		return
	}
	out := m.String()
	switch {
	case strings.HasSuffix(out, "\n\n"):
	case strings.HasSuffix(out, "\n"):
		m.WriteString("\n")
	default:
		m.WriteString("\n\n")
	}
}

func (m *markdownBuilder) handleStart(tok html.Token) {
	m.blockClosed = false

	switch tok.Data {
	case "pre":
		m.inPre = true
		m.ensureBlankLine()
	case "code":
		if m.inPre {
			m.inCodeBlock = true
			m.WriteString("```" + codeLanguage(tok) + "\n")
		} else {
			m.WriteString("`")
		}
	case "p":
		if !m.inPre {
			m.ensureBlankLine()
		}
	case "br":
		m.WriteString("\n")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		m.ensureBlankLine()
		m.WriteString(strings.Repeat("#", int(tok.Data[1]-'0')) + " ")
	case "li":
		if m.Len() > 0 && !strings.HasSuffix(m.String(), "\n") {
			m.WriteString("\n")
		}
		m.WriteString("- ")
	case "strong", "b":
		m.WriteString("**")
	case "em", "i":
		m.WriteString("*")
	}
}

func (m *markdownBuilder) handleEnd(name string) {
	switch name {
	case "code":
		if m.inCodeBlock {
			m.inCodeBlock = false
			if !strings.HasSuffix(m.String(), "\n") {
				m.WriteString("\n")
			}
			m.WriteString("```\n")
			m.blockClosed = true
		} else if !m.inPre {
			m.WriteString("`")
		}
	case "pre":
		m.inPre = false
	case "strong", "b":
		m.WriteString("**")
	case "em", "i":
		m.WriteString("*")
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		m.blockClosed = true
	}
}

func (m *markdownBuilder) writeText(text string) {
	switch {
	case m.inCodeBlock:
		m.WriteString(text)
	case m.blockClosed && strings.TrimSpace(text) == "":
	default:
		m.blockClosed = false
		m.WriteString(text)
	}
}

func codeLanguage(tok html.Token) string {
	for _, a := range tok.Attr {
		if a.Key == "class" {
			if lang, ok := strings.CutPrefix(a.Val, "language-"); ok {
				return lang
			}
		}
	}
	return ""
}
