// Package transport is the HTTP layer shared by every Kagi capability. It
// applies connect and idle-read timeouts, turns non-2xx responses into
// *kagierr.APIError, and never retries. Failures before a status arrives are
// returned as *kagierr.TransportError.
package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/papercomputeco/kagi/pkg/kagierr"
)

const (
	// DefaultConnectTimeout bounds dialing and the TLS handshake.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultReadTimeout bounds the wait for response headers and the gap
	// between two successive body reads. Assistant and summarizer streams can
	// sit idle for minutes while the model works.
	DefaultReadTimeout = 300 * time.Second

	// DefaultUserAgent identifies the client when none is configured.
	DefaultUserAgent = "kagi-go"

	// maxErrorBody caps APIError.Body; bytes past it are discarded.
	maxErrorBody = 64 * 1024
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	UserAgent      string
}

// DefaultOptions returns the stock timeouts and user agent.
func DefaultOptions() Options {
	return Options{
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
		UserAgent:      DefaultUserAgent,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = d.ConnectTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = d.ReadTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = d.UserAgent
	}
	return o
}

// NewHTTPClient builds an *http.Client with the connect timeout applied to
// dialing and TLS. There is no overall request timeout: long streams are
// bounded by the idle-read timeout Client.Send applies instead.
func NewHTTPClient(opts Options) *http.Client {
	opts = opts.withDefaults()

	dialer := &net.Dialer{
		Timeout:   opts.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   opts.ConnectTimeout,
			ResponseHeaderTimeout: opts.ReadTimeout,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			ForceAttemptHTTP2:     true,
		},
	}
}

// Client sends requests through a Doer.
type Client struct {
	doer Doer
	opts Options
}

// New returns a Client. A nil doer gets NewHTTPClient(opts).
func New(doer Doer, opts Options) *Client {
	opts = opts.withDefaults()
	if doer == nil {
		doer = NewHTTPClient(opts)
	}
	return &Client{doer: doer, opts: opts}
}

// Options returns the effective options of the client.
func (c *Client) Options() Options {
	return c.opts
}

// Send performs req. On a 2xx status the response is returned with a body
// that cancels the request once no bytes arrive for ReadTimeout; the caller
// must close it. Any other status is read, closed, and returned as
// *kagierr.APIError whose Body holds at most the first 64 KiB. A failed Do
// is returned as *kagierr.TransportError.
func (c *Client) Send(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		cancel()
		return nil, &kagierr.TransportError{Op: fmt.Sprintf("sending %s %s", req.Method, req.URL.Path), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer cancel()
		defer resp.Body.Close()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &kagierr.APIError{
			Message:    fmt.Sprintf("%s %s failed with status %d", req.Method, req.URL.Path, resp.StatusCode),
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	resp.Body = newIdleBody(resp.Body, c.opts.ReadTimeout, cancel)
	return resp, nil
}

// idleBody cancels the request context when the gap between two reads
// exceeds timeout.
type idleBody struct {
	body    io.ReadCloser
	timeout time.Duration
	timer   *time.Timer
	cancel  context.CancelFunc
}

func newIdleBody(body io.ReadCloser, timeout time.Duration, cancel context.CancelFunc) *idleBody {
	return &idleBody{
		body:    body,
		timeout: timeout,
		timer:   time.AfterFunc(timeout, cancel),
		cancel:  cancel,
	}
}

func (b *idleBody) Read(p []byte) (int, error) {
	n, err := b.body.Read(p)
	if n > 0 {
		b.timer.Reset(b.timeout)
	}
	return n, err
}

func (b *idleBody) Close() error {
	b.timer.Stop()
	err := b.body.Close()
	b.cancel()
	return err
}
