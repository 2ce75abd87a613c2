package kagi

import (
	"log/slog"
	"time"

	"github.com/papercomputeco/kagi/pkg/transport"
)

// Option configures a Client created with New.
type Option func(*config)

type config struct {
	doer      transport.Doer
	opts      transport.Options
	endpoints transport.Endpoints
	logger    *slog.Logger
}

// WithHTTPClient sends every request through doer instead of the default
// HTTP client.
func WithHTTPClient(doer transport.Doer) Option {
	return func(c *config) {
		c.doer = doer
	}
}

// WithEndpoints overrides the Kagi and translate origins.
func WithEndpoints(e transport.Endpoints) Option {
	return func(c *config) {
		c.endpoints = e
	}
}

// WithLogger sets the logger handed to every capability client.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTimeouts sets the connect and idle-read timeouts. Zero keeps the
// default.
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *config) {
		c.opts.ConnectTimeout = connect
		c.opts.ReadTimeout = read
	}
}

// WithUserAgent sets the User-Agent sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.opts.UserAgent = ua
	}
}
