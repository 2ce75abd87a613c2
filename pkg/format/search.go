package format

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/kagi/pkg/search"
)

// Search renders pages in f.
func Search(f Format, pages []*search.Result) (string, error) {
	switch f {
	case JSON:
		return SearchJSON(pages)
	case MD:
		return SearchMarkdown(pages), nil
	case CSV:
		return SearchCSV(pages)
	default:
		return "", unsupported(f)
	}
}

// SearchJSON renders a single page as an object and several as an array.
func SearchJSON(pages []*search.Result) (string, error) {
	if len(pages) == 1 {
		return toJSON(pages[0])
	}
	if pages == nil {
		pages = []*search.Result{}
	}
	return toJSON(pages)
}

// SearchMarkdown lists the items of every page, numbered per page, each
// page followed by its share link.
func SearchMarkdown(pages []*search.Result) string {
	var parts []string
	for _, page := range pages {
		for i, item := range page.Items {
			parts = append(parts, fmt.Sprintf("### %d. [%s](%s)", i+1, item.Title, item.URL))
			if item.Description != "" {
				parts = append(parts, item.Description)
			}
			if item.WebArchiveURL != nil && *item.WebArchiveURL != "" {
				parts = append(parts, "[Archive]("+*item.WebArchiveURL+")")
			}
			if item.Date != nil && *item.Date != "" {
				parts = append(parts, "*"+*item.Date+"*")
			}
			parts = append(parts, "")
		}
		parts = append(parts, "**Share:** "+page.Info.ShareURL)
	}
	return strings.Join(parts, "\n") + "\n"
}

// SearchCSV renders one row per item across all pages.
func SearchCSV(pages []*search.Result) (string, error) {
	var rows [][]string
	for _, page := range pages {
		for _, item := range page.Items {
			rows = append(rows, []string{
				item.Title,
				item.URL,
				item.Description,
				deref(item.WebArchiveURL),
				deref(item.Date),
			})
		}
	}
	return csvRows([]string{"title", "url", "description", "archive_url", "date"}, rows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
