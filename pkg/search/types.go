// Package search runs Kagi web searches over the search socket endpoint and
// folds the SSE stream into result pages.
package search

// Info is the pagination cursor carried by search.info items.
type Info struct {
	ShareURL  string `json:"share_url"`
	CurrBatch int    `json:"curr_batch"`
	CurrPiece int    `json:"curr_piece"`
	NextBatch int    `json:"next_batch"`
	NextPiece int    `json:"next_piece"`
}

// DefaultInfo is the cursor of a page that carried no search.info item.
func DefaultInfo() Info {
	return Info{
		ShareURL:  "",
		CurrBatch: 1,
		CurrPiece: 1,
		NextBatch: -1,
		NextPiece: 1,
	}
}

// HasNext reports whether another page can be requested.
func (i Info) HasNext() bool {
	return i.NextBatch > 0
}

// DomainInfo is Kagi's metadata about a result's domain.
type DomainInfo struct {
	Domain           string  `json:"domain"`
	FaviconURL       *string `json:"favicon_url"`
	DomainSecure     *bool   `json:"domain_secure"`
	Trackers         *int    `json:"trackers"`
	RegistrationDate *string `json:"registration_date"`
	WebsiteSpeed     *string `json:"website_speed"`
	RuleType         *string `json:"rule_type"`
	Description      *string `json:"description"`
}

// Item is one organic result scraped from the result HTML.
type Item struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Description   string  `json:"description"`
	WebArchiveURL *string `json:"web_archive_url"`
	Date          *string `json:"date"`
}

// Result is one page of search results.
type Result struct {
	SearchHTML  string       `json:"search_html"`
	Info        Info         `json:"info"`
	Items       []Item       `json:"items"`
	DomainInfos []DomainInfo `json:"domain_infos"`
}
