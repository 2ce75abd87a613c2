package search

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/logger"
	"github.com/papercomputeco/kagi/pkg/sse"
	"github.com/papercomputeco/kagi/pkg/transport"
)

const (
	// Path is the search socket endpoint on the Kagi origin.
	Path = "/socket/search"

	refererPath = "/search"

	authorizationHeader = "X-Kagi-Authorization"
)

// Config wires a Client to its collaborators.
type Config struct {
	Transport   *transport.Client
	Credentials auth.Credentials
	Endpoints   transport.Endpoints
	Logger      *slog.Logger
}

// Client calls the search endpoint.
type Client struct {
	transport   *transport.Client
	credentials auth.Credentials
	endpoints   transport.Endpoints
	logger      *slog.Logger
}

// NewClient returns a Client for c.
func NewClient(c *Config) *Client {
	return &Client{
		transport:   c.Transport,
		credentials: c.Credentials,
		endpoints:   c.Endpoints,
		logger:      logger.OrNop(c.Logger),
	}
}

// Search fetches one page of results. A batch of zero or less requests the
// first page.
func (c *Client) Search(ctx context.Context, query string, batch int) (*Result, error) {
	params := url.Values{}
	params.Set("q", query)
	if batch > 0 {
		params.Set("batch", strconv.Itoa(batch))
	} else {
		params.Set("nonce", newNonce())
	}

	endpoint := c.endpoints.KagiURL(Path) + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &kagierr.TransportError{Op: "creating search request", Err: err}
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set(authorizationHeader, c.credentials.Session())
	req.Header.Set("Referer", c.endpoints.KagiURL(refererPath)+"?q="+url.QueryEscape(query))
	c.credentials.AttachSession(req)

	c.logger.Debug("sending search request", "query", query, "batch", batch)

	resp, err := c.transport.Send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var (
		reducer Reducer
		frames  int
	)
	reader := sse.NewReader(resp.Body)
	for {
		frame, err := reader.Next()
		if err != nil {
			return nil, &kagierr.TransportError{Op: "reading search stream", Err: err}
		}
		if frame == nil {
			break
		}
		frames++
		reducer.Add(*frame)
	}

	result := reducer.Result()
	c.logger.Debug("search page complete",
		"frames", frames,
		"items", len(result.Items),
		"next_batch", result.Info.NextBatch,
	)
	return result, nil
}

// All returns a Pager over every page of results for query.
func (c *Client) All(ctx context.Context, query string) *Pager {
	return &Pager{ctx: ctx, client: c, query: query}
}

// Pager fetches result pages one at a time. Each request depends on the
// cursor of the page before it, so pages are fetched strictly in order.
type Pager struct {
	ctx    context.Context
	client *Client
	query  string

	prev *Result
	done bool
}

// Next returns the next page, or nil, nil once the previous page reported
// no further batches.
func (p *Pager) Next() (*Result, error) {
	if p.done {
		return nil, nil
	}

	batch := 0
	if p.prev != nil {
		if !p.prev.Info.HasNext() {
			p.done = true
			return nil, nil
		}
		batch = p.prev.Info.NextBatch
	}

	result, err := p.client.Search(p.ctx, p.query, batch)
	if err != nil {
		p.done = true
		return nil, err
	}
	p.prev = result
	return result, nil
}

// Collect drains the pager.
func (p *Pager) Collect() ([]*Result, error) {
	var pages []*Result
	for {
		page, err := p.Next()
		if err != nil {
			return pages, err
		}
		if page == nil {
			return pages, nil
		}
		pages = append(pages, page)
	}
}

// newNonce returns 32 random hex characters.
func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
