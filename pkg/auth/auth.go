// Package auth exchanges a kagi_session cookie for the short-lived bearer
// token the translate endpoints require, and caches it until it expires.
package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/papercomputeco/kagi/pkg/jsonx"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/transport"
)

const (
	// SessionCookie is the cookie carrying the long-lived Kagi session.
	SessionCookie = "kagi_session"

	// TokenPath is the translate endpoint that mints bearer tokens.
	TokenPath = "/api/auth"
)

// Credentials attaches the Kagi session to outbound requests.
type Credentials interface {
	AttachSession(req *http.Request)
	Session() string
}

// TokenSource produces a bearer token that is valid right now.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

var (
	_ Credentials = (*Provider)(nil)
	_ TokenSource = (*Provider)(nil)
)

// TokenPayload is the unverified claim set of a Kagi bearer token.
type TokenPayload struct {
	Subscription bool   `json:"subscription"`
	UserID       string `json:"id"`
	LoggedIn     bool   `json:"loggedIn"`
	AccountType  string `json:"accountType"`
	jwt.RegisteredClaims
}

// DecodeToken reads the claims of raw without verifying its signature.
// The token is only ever forwarded back to Kagi; the client has no key to
// verify it with.
func DecodeToken(raw string) (*TokenPayload, error) {
	claims := &TokenPayload{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, &kagierr.AuthError{Message: "decoding token", Err: err}
	}
	return claims, nil
}

// IsExpired reports whether the token's exp is at or before now. A token
// without an exp claim never expires.
func (p *TokenPayload) IsExpired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return p.ExpiresAt.Unix() <= now.Unix()
}

type tokenResponse struct {
	Token       string `json:"token"`
	ID          string `json:"id"`
	LoggedIn    bool   `json:"loggedIn"`
	AccountType string `json:"accountType"`
	ExpiresAt   string `json:"expiresAt"`
}

// Provider holds a session and the bearer token derived from it. It is safe
// for concurrent use; concurrent callers needing a refresh share one
// exchange.
type Provider struct {
	session   string
	client    *transport.Client
	endpoints transport.Endpoints
	now       func() time.Time

	mu    sync.Mutex
	token string
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// NewProvider returns a Provider for session. Tokens are fetched from the
// translate origin of endpoints through client.
func NewProvider(session string, client *transport.Client, endpoints transport.Endpoints, opts ...Option) *Provider {
	p := &Provider{
		session:   session,
		client:    client,
		endpoints: endpoints,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session returns the session cookie value.
func (p *Provider) Session() string {
	return p.session
}

// AttachSession adds the session cookie to req.
func (p *Provider) AttachSession(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: p.session})
}

// SetToken seeds the cache with a previously obtained token.
func (p *Provider) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
}

// Token returns the cached token while it is unexpired, and refreshes it
// otherwise. A cached token that fails to decode is treated as expired.
// A refresh that yields an already expired token fails with an error
// matching kagierr.ErrTokenExpired.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" {
		claims, err := DecodeToken(p.token)
		if err == nil && !claims.IsExpired(p.now()) {
			return p.token, nil
		}
	}

	token, err := p.refreshLocked(ctx)
	if err != nil {
		return "", err
	}
	if claims, err := DecodeToken(token); err == nil && claims.IsExpired(p.now()) {
		p.token = ""
		return "", &kagierr.AuthError{Message: "refreshed token", Err: kagierr.ErrTokenExpired}
	}
	return token, nil
}

// Refresh unconditionally exchanges the session for a new token.
func (p *Provider) Refresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.refreshLocked(ctx)
}

func (p *Provider) refreshLocked(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoints.TranslateURL(TokenPath), nil)
	if err != nil {
		return "", &kagierr.AuthError{Message: "creating auth request", Err: err}
	}
	p.AttachSession(req)

	resp, err := p.client.Send(req)
	if err != nil {
		var apiErr *kagierr.APIError
		if errors.As(err, &apiErr) {
			return "", &kagierr.AuthError{
				Message:    "auth refresh failed",
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Body,
			}
		}
		return "", &kagierr.AuthError{Message: "auth refresh failed", Err: err}
	}
	defer resp.Body.Close()

	var body tokenResponse
	if err := jsonx.DecodeReader(resp.Body, &body); err != nil {
		return "", &kagierr.AuthError{Message: "decoding auth response", Err: err}
	}
	if body.Token == "" {
		return "", &kagierr.AuthError{Message: "auth response has no token"}
	}

	p.token = body.Token
	return p.token, nil
}
