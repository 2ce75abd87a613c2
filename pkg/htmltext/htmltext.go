// Package htmltext turns the HTML fragments Kagi streams back into plain
// text or Markdown.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	detailsRe = regexp.MustCompile(`(?s)<details>.*?</details>\s*`)
)

const detailsEnd = "</details>"

// Text returns the concatenated, unescaped text content of fragment with
// surrounding whitespace trimmed.
func Text(fragment string) string {
	var b strings.Builder

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// StripTags removes anything that looks like a tag, without unescaping
// entities.
func StripTags(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}

// StripDetails removes every <details> block (the model's visible reasoning)
// and the whitespace after it.
func StripDetails(s string) string {
	return strings.TrimSpace(detailsRe.ReplaceAllString(s, ""))
}

// SplitThinking splits an assistant reply at the first </details>. It
// returns the text of the reasoning block and the HTML that follows it. ok
// is false until the reasoning block has been closed.
func SplitThinking(reply string) (thinking, answer string, ok bool) {
	before, after, found := strings.Cut(reply, detailsEnd)
	if !found {
		return "", "", false
	}
	return Text(before), after, true
}
