// Package kagierr defines the error kinds surfaced by the kagi client.
//
// Every error returned by the library wraps ErrKagi, so callers can match any
// library failure with errors.Is(err, kagierr.ErrKagi) and narrow it down with
// errors.As against the typed errors below.
package kagierr

import (
	"errors"
	"fmt"
)

var (
	// ErrKagi is the root of every error produced by this module.
	ErrKagi = errors.New("kagi")

	// ErrAPI matches non-2xx responses from a Kagi endpoint.
	ErrAPI = fmt.Errorf("%w: api error", ErrKagi)

	// ErrAuth matches credential and token refresh failures.
	ErrAuth = fmt.Errorf("%w: auth error", ErrKagi)

	// ErrTokenExpired matches a refresh that returned an already expired token.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrAuth)

	// ErrTransport matches requests that failed outside an HTTP status.
	ErrTransport = fmt.Errorf("%w: transport error", ErrKagi)

	// ErrStreamParse matches streams that could not be folded into a result.
	ErrStreamParse = fmt.Errorf("%w: stream parse error", ErrKagi)

	// ErrMissingFrame matches streams that lack a mandatory frame.
	ErrMissingFrame = fmt.Errorf("%w: missing frame", ErrStreamParse)
)

// APIError is returned when an endpoint answers with a non-2xx status.
// The raw body is attached untouched up to 64 KiB; the client never retries.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %d", e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return ErrAPI }

// TransportError is returned when a request fails before a status arrives,
// or its body breaks off while being read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// AuthError is returned when the session cookie cannot be exchanged for a
// short-lived token, or the token cannot be decoded.
type AuthError struct {
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "authentication failed"
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s with status %d: %s", msg, e.StatusCode, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AuthError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrAuth, e.Err}
	}
	return []error{ErrAuth}
}

// StreamError is returned when a complete stream yields nothing usable,
// e.g. no frame decoded as JSON at all.
type StreamError struct {
	Capability string
	Reason     string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s stream: %s", e.Capability, e.Reason)
}

func (e *StreamError) Unwrap() error { return ErrStreamParse }

// MissingFrameError is returned when a stream completes without a frame the
// result cannot be built without.
type MissingFrameError struct {
	Tag  string
	Body string
}

func (e *MissingFrameError) Error() string {
	return "no " + e.Tag + " found in response"
}

func (e *MissingFrameError) Unwrap() error { return ErrMissingFrame }
