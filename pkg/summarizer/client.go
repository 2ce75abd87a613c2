package summarizer

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/logger"
	"github.com/papercomputeco/kagi/pkg/transport"
)

const (
	// Path is the summarizer endpoint on the Kagi origin.
	Path = "/mother/summary_labs"

	refererPath = "/summarizer"

	// StreamContentType is the media type of Kagi's line stream.
	StreamContentType = "application/vnd.kagi.stream"
)

const (
	// TypeTakeaway asks for a bullet list of key points.
	TypeTakeaway = "takeaway"

	// TypeSummary asks for prose paragraphs.
	TypeSummary = "summary"
)

// Options tune one summarize call.
type Options struct {
	SummaryType string `json:"summary_type"`
}

// Config wires a Client to its collaborators.
type Config struct {
	Transport   *transport.Client
	Credentials auth.Credentials
	Endpoints   transport.Endpoints
	Logger      *slog.Logger
}

// Client calls the summarizer endpoint.
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

// Summarize summarises the document at target and waits for the result.
func (c *Client) Summarize(ctx context.Context, target string, opts Options) (*Result, error) {
	stream, err := c.Stream(ctx, target, opts)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	for {
		u, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if u == nil {
			break
		}
	}

	c.logger.Debug("summarizer stream complete", "frames", stream.reducer.decoded)
	return stream.Result()
}

// Stream summarises the document at target and returns a Stream of updates.
func (c *Client) Stream(ctx context.Context, target string, opts Options) (*Stream, error) {
	summaryType := opts.SummaryType
	if summaryType == "" {
		summaryType = TypeTakeaway
	}

	params := url.Values{}
	params.Set("url", target)
	params.Set("stream", "1")
	params.Set("target_language", "")
	params.Set("summary_type", summaryType)

	endpoint := c.endpoints.KagiURL(Path) + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &kagierr.TransportError{Op: "creating summarizer request", Err: err}
	}
	req.Header.Set("Accept", StreamContentType)
	req.Header.Set("Referer", c.endpoints.KagiURL(refererPath))
	c.credentials.AttachSession(req)

	c.logger.Debug("sending summarizer request", "url", target, "summary_type", summaryType)

	resp, err := c.transport.Send(req)
	if err != nil {
		return nil, err
	}

	return NewStream(resp.Body), nil
}
