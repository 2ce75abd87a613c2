package search

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/papercomputeco/kagi/pkg/jsonx"
	"github.com/papercomputeco/kagi/pkg/sse"
)

const (
	TagSearch     = "search"
	TagSearchInfo = "search.info"
	TagDomainInfo = "domain_info"
)

// Reducer folds search SSE frames into a Result. Each frame carries a JSON
// array of {tag, payload} items. The zero value is ready to use.
type Reducer struct {
	html    []string
	info    *Info
	domains []DomainInfo
}

// Add folds one frame. Frames without a JSON array are ignored.
func (r *Reducer) Add(frame sse.Event) {
	if strings.TrimSpace(frame.Data) == "" {
		return
	}

	var raw json.RawMessage
	if jsonx.DecodeFirst(frame.Data, &raw) != nil {
		return
	}
	items := gjson.ParseBytes(raw)
	if !items.IsArray() {
		return
	}

	items.ForEach(func(_, item gjson.Result) bool {
		payload := item.Get("payload")
		switch item.Get("tag").String() {
		case TagSearch:
			r.addSearch(payload)
		case TagSearchInfo:
			r.addInfo(payload)
		case TagDomainInfo:
			r.addDomains(payload)
		}
		return true
	})
}

func (r *Reducer) addSearch(payload gjson.Result) {
	switch {
	case payload.Type == gjson.String:
		r.html = append(r.html, payload.String())
	case payload.IsObject():
		r.html = append(r.html, payload.Get("content").String())
	}
}

func (r *Reducer) addInfo(payload gjson.Result) {
	if !payload.IsObject() {
		return
	}
	d := DefaultInfo()
	r.info = &Info{
		ShareURL:  stringOr(payload.Get("share_url"), d.ShareURL),
		CurrBatch: intOr(payload.Get("curr_batch"), d.CurrBatch),
		CurrPiece: intOr(payload.Get("curr_piece"), d.CurrPiece),
		NextBatch: intOr(payload.Get("next_batch"), d.NextBatch),
		NextPiece: intOr(payload.Get("next_piece"), d.NextPiece),
	}
}

// addDomains appends every record of a domain_info payload. The payload is
// sometimes a JSON document encoded as a string.
func (r *Reducer) addDomains(payload gjson.Result) {
	if payload.Type == gjson.String {
		if !gjson.Valid(payload.String()) {
			return
		}
		payload = gjson.Parse(payload.String())
	}
	if !payload.IsObject() {
		return
	}

	payload.Get("data").ForEach(func(_, d gjson.Result) bool {
		if d.IsObject() {
			r.domains = append(r.domains, decodeDomain(d))
		}
		return true
	})
}

// decodeDomain reads a domain record field by field. An optional field of
// the wrong type is left nil.
func decodeDomain(d gjson.Result) DomainInfo {
	return DomainInfo{
		Domain:           jsonx.String(d.Get("domain")),
		FaviconURL:       jsonx.OptString(d.Get("favicon_url")),
		DomainSecure:     jsonx.OptBool(d.Get("domain_secure")),
		Trackers:         jsonx.OptInt(d.Get("trackers")),
		RegistrationDate: jsonx.OptString(d.Get("registration_date")),
		WebsiteSpeed:     jsonx.OptString(d.Get("website_speed")),
		RuleType:         jsonx.OptString(d.Get("rule_type")),
		Description:      jsonx.OptString(d.Get("description")),
	}
}

// Result returns the page folded so far, with items scraped from the joined
// search HTML.
func (r *Reducer) Result() *Result {
	info := DefaultInfo()
	if r.info != nil {
		info = *r.info
	}

	html := strings.Join(r.html, "\n")
	domains := r.domains
	if domains == nil {
		domains = []DomainInfo{}
	}

	return &Result{
		SearchHTML:  html,
		Info:        info,
		Items:       ParseItems(html),
		DomainInfos: domains,
	}
}

// Reduce folds a complete sequence of frames.
func Reduce(frames []sse.Event) *Result {
	var r Reducer
	for _, f := range frames {
		r.Add(f)
	}
	return r.Result()
}

func stringOr(v gjson.Result, def string) string {
	if v.Type != gjson.String {
		return def
	}
	return v.String()
}

func intOr(v gjson.Result, def int) int {
	if v.Type != gjson.Number {
		return def
	}
	return int(v.Int())
}
