// Package kagi is the entry point of the library. A Client holds one Kagi
// session and exposes proofreading, summarization, the assistant, and search
// on top of it.
package kagi

import (
	"context"
	"strings"

	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/logger"
	"github.com/papercomputeco/kagi/pkg/proofread"
	"github.com/papercomputeco/kagi/pkg/search"
	"github.com/papercomputeco/kagi/pkg/summarizer"
	"github.com/papercomputeco/kagi/pkg/transport"
)

// Client composes the four capability clients over one session.
type Client struct {
	auth *auth.Provider

	proofread  *proofread.Client
	summarizer *summarizer.Client
	assistant  *assistant.Client
	search     *search.Client
}

// New returns a Client for the kagi_session cookie value session.
func New(session string, opts ...Option) (*Client, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return nil, &kagierr.AuthError{Message: "kagi session is empty"}
	}

	cfg := &config{
		opts:      transport.DefaultOptions(),
		endpoints: transport.DefaultEndpoints(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	log := logger.OrNop(cfg.logger)
	tr := transport.New(cfg.doer, cfg.opts)
	provider := auth.NewProvider(session, tr, cfg.endpoints)

	return &Client{
		auth: provider,
		proofread: proofread.NewClient(&proofread.Config{
			Transport: tr,
			Tokens:    provider,
			Endpoints: cfg.endpoints,
			Logger:    log.With("capability", "proofread"),
		}),
		summarizer: summarizer.NewClient(&summarizer.Config{
			Transport:   tr,
			Credentials: provider,
			Endpoints:   cfg.endpoints,
			Logger:      log.With("capability", "summarize"),
		}),
		assistant: assistant.NewClient(&assistant.Config{
			Transport:   tr,
			Credentials: provider,
			Endpoints:   cfg.endpoints,
			Logger:      log.With("capability", "assistant"),
		}),
		search: search.NewClient(&search.Config{
			Transport:   tr,
			Credentials: provider,
			Endpoints:   cfg.endpoints,
			Logger:      log.With("capability", "search"),
		}),
	}, nil
}

// Auth returns the credential provider shared by the capabilities.
func (c *Client) Auth() *auth.Provider {
	return c.auth
}

// Proofread corrects text and waits for the analysis.
func (c *Client) Proofread(ctx context.Context, text string, opts proofread.Options) (*proofread.Result, error) {
	return c.proofread.Proofread(ctx, text, opts)
}

// ProofreadStream starts a proofread and returns its events as they arrive.
func (c *Client) ProofreadStream(ctx context.Context, text string, opts proofread.Options) (*proofread.Stream, error) {
	return c.proofread.Stream(ctx, text, opts)
}

// Summarize summarizes the document at url.
func (c *Client) Summarize(ctx context.Context, url string, opts summarizer.Options) (*summarizer.Result, error) {
	return c.summarizer.Summarize(ctx, url, opts)
}

// SummarizeStream starts a summary and returns its updates as they arrive.
func (c *Client) SummarizeStream(ctx context.Context, url string, opts summarizer.Options) (*summarizer.Stream, error) {
	return c.summarizer.Stream(ctx, url, opts)
}

// Prompt asks the assistant and waits for the full reply.
func (c *Client) Prompt(ctx context.Context, text string, opts assistant.Options) (*assistant.Result, error) {
	return c.assistant.Prompt(ctx, text, opts)
}

// PromptStream asks the assistant and returns reply snapshots as they arrive.
func (c *Client) PromptStream(ctx context.Context, text string, opts assistant.Options) (*assistant.Stream, error) {
	return c.assistant.Stream(ctx, text, opts)
}

// Search fetches one page of results. A batch of zero requests the first
// page.
func (c *Client) Search(ctx context.Context, query string, batch int) (*search.Result, error) {
	return c.search.Search(ctx, query, batch)
}

// SearchAll pages through every result for query.
func (c *Client) SearchAll(ctx context.Context, query string) *search.Pager {
	return c.search.All(ctx, query)
}
