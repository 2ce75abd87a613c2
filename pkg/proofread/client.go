package proofread

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/logger"
	"github.com/papercomputeco/kagi/pkg/transport"
)

const (
	// Path is the proofread endpoint on the translate origin.
	Path = "/api/proofread"

	refererPath = "/proofread"
)

// Options tune one proofread call. Empty fields take the defaults below.
type Options struct {
	SourceLang      string `json:"source_lang"`
	WritingStyle    string `json:"writing_style"`
	CorrectionLevel string `json:"correction_level"`
	Formality       string `json:"formality"`
	Context         string `json:"context"`
	Model           string `json:"model"`
}

// DefaultOptions returns the options Kagi's web UI sends by default.
func DefaultOptions() Options {
	return Options{
		SourceLang:      "auto",
		WritingStyle:    "general",
		CorrectionLevel: "standard",
		Formality:       "default",
		Model:           "standard",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SourceLang == "" {
		o.SourceLang = d.SourceLang
	}
	if o.WritingStyle == "" {
		o.WritingStyle = d.WritingStyle
	}
	if o.CorrectionLevel == "" {
		o.CorrectionLevel = d.CorrectionLevel
	}
	if o.Formality == "" {
		o.Formality = d.Formality
	}
	if o.Model == "" {
		o.Model = d.Model
	}
	return o
}

type request struct {
	Text                string `json:"text"`
	SourceLang          string `json:"source_lang"`
	SessionToken        string `json:"session_token"`
	Model               string `json:"model"`
	Stream              bool   `json:"stream"`
	WritingStyle        string `json:"writing_style"`
	CorrectionLevel     string `json:"correction_level"`
	Formality           string `json:"formality"`
	Context             string `json:"context"`
	ExplanationLanguage string `json:"explanation_language"`
}

// Config wires a Client to its collaborators.
type Config struct {
	Transport *transport.Client
	Tokens    auth.TokenSource
	Endpoints transport.Endpoints
	Logger    *slog.Logger
}

// Client calls the proofread endpoint.
type Client struct {
	transport *transport.Client
	tokens    auth.TokenSource
	endpoints transport.Endpoints
	logger    *slog.Logger
}

// NewClient returns a Client for c.
func NewClient(c *Config) *Client {
	return &Client{
		transport: c.Transport,
		tokens:    c.Tokens,
		endpoints: c.Endpoints,
		logger:    logger.OrNop(c.Logger),
	}
}

// Proofread sends text for proofreading and waits for the complete result.
func (c *Client) Proofread(ctx context.Context, text string, opts Options) (*Result, error) {
	stream, err := c.Stream(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	for {
		ev, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if ev == nil {
			break
		}
	}

	c.logger.Debug("proofread stream complete", "frames", stream.reducer.decoded)
	return stream.Result()
}

// Stream sends text for proofreading and returns a Stream that yields each
// decoded frame as it arrives.
func (c *Client) Stream(ctx context.Context, text string, opts Options) (*Stream, error) {
	opts = opts.withDefaults()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(request{
		Text:                text,
		SourceLang:          opts.SourceLang,
		SessionToken:        token,
		Model:               opts.Model,
		Stream:              true,
		WritingStyle:        opts.WritingStyle,
		CorrectionLevel:     opts.CorrectionLevel,
		Formality:           opts.Formality,
		Context:             opts.Context,
		ExplanationLanguage: "en",
	})
	if err != nil {
		return nil, &kagierr.TransportError{Op: "marshaling proofread request", Err: err}
	}

	url := c.endpoints.TranslateURL(Path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &kagierr.TransportError{Op: "creating proofread request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.endpoints.TranslateURL(refererPath))

	c.logger.Debug("sending proofread request", "url", url, "model", opts.Model, "chars", len(text))

	resp, err := c.transport.Send(req)
	if err != nil {
		return nil, err
	}

	return NewStream(resp.Body), nil
}
