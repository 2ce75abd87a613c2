package search

import (
	"regexp"

	"github.com/papercomputeco/kagi/pkg/htmltext"
)

// These patterns track the result markup Kagi served in early 2026. A block
// runs from one result marker to the next.
var (
	resultBlockRe = regexp.MustCompile(`<div\s+class="[^"]*_0_SRI[^"]*"`)
	titleLinkRe   = regexp.MustCompile(`(?s)<a\s+class="[^"]*__sri_title_link[^"]*"[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	descriptionRe = regexp.MustCompile(`(?s)<div\s+class="[^"]*__sri-desc[^"]*"[^>]*>(.*?)</div>\s*</div>`)
	dateRe        = regexp.MustCompile(`(?s)<span\s+class="[^"]*__sri-time[^"]*"[^>]*>(.*?)</span>`)
	archiveRe     = regexp.MustCompile(`href="(https://web\.archive\.org/[^"]*)"`)
)

// ParseItems scrapes result items out of search HTML in document order.
// Blocks without a title link are skipped. The description keeps any date
// text it contains.
func ParseItems(html string) []Item {
	starts := resultBlockRe.FindAllStringIndex(html, -1)
	items := make([]Item, 0, len(starts))

	for i, loc := range starts {
		end := len(html)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		if item, ok := parseBlock(html[loc[0]:end]); ok {
			items = append(items, item)
		}
	}
	return items
}

func parseBlock(block string) (Item, bool) {
	title := titleLinkRe.FindStringSubmatch(block)
	if title == nil {
		return Item{}, false
	}

	item := Item{
		URL:   title[1],
		Title: htmltext.Text(title[2]),
	}

	if m := descriptionRe.FindStringSubmatch(block); m != nil {
		item.Description = htmltext.Text(m[1])
	}
	if m := dateRe.FindStringSubmatch(block); m != nil {
		date := htmltext.Text(m[1])
		item.Date = &date
	}
	if m := archiveRe.FindStringSubmatch(block); m != nil {
		archive := m[1]
		item.WebArchiveURL = &archive
	}
	return item, true
}
