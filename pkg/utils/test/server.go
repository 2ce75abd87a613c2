// Package testutils provides a fake Kagi origin for tests that exercise the
// client end to end.
package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/proofread"
	"github.com/papercomputeco/kagi/pkg/search"
	"github.com/papercomputeco/kagi/pkg/summarizer"
	"github.com/papercomputeco/kagi/pkg/transport"
)

// Request is one call the fake server received.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

// MockKagi serves both the Kagi and translate origins from one
// httptest.Server, answering every endpoint with a canned stream.
type MockKagi struct {
	Server *httptest.Server

	// Bodies maps an endpoint path to the body it streams back. Defaults to
	// the fixtures in this package.
	Bodies map[string]string

	mu       sync.Mutex
	requests []Request
	fail     map[string]int
}

// NewMockKagi starts a MockKagi. Call Close when done.
func NewMockKagi() *MockKagi {
	m := &MockKagi{
		Bodies: map[string]string{
			proofread.Path:  ProofreadStream,
			summarizer.Path: SummaryStream,
			assistant.Path:  AssistantStream,
			search.Path:     SearchStream,
		},
		fail: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(auth.TokenPath, func(w http.ResponseWriter, r *http.Request) {
		if m.record(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":       SignedToken(time.Hour),
			"id":          "42",
			"loggedIn":    true,
			"accountType": "professional",
		})
	})
	for _, path := range []string{proofread.Path, summarizer.Path, assistant.Path, search.Path} {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if m.record(w, r) {
				return
			}
			m.mu.Lock()
			body := m.Bodies[r.URL.Path]
			m.mu.Unlock()
			_, _ = io.WriteString(w, body)
		})
	}

	m.Server = httptest.NewServer(mux)
	return m
}

// record stores r and writes the configured failure status, if any. It
// reports whether the response has been written.
func (m *MockKagi) record(w http.ResponseWriter, r *http.Request) bool {
	req := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
	}
	if raw, err := io.ReadAll(r.Body); err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &req.Body)
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	status := m.fail[r.URL.Path]
	m.mu.Unlock()

	if status != 0 {
		http.Error(w, "mock failure", status)
		return true
	}
	return false
}

// Fail makes path answer with status from now on.
func (m *MockKagi) Fail(path string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[path] = status
}

// Requests returns a copy of the requests received so far.
func (m *MockKagi) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// RequestsTo returns the requests received for path.
func (m *MockKagi) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range m.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// URL is the base URL of both origins.
func (m *MockKagi) URL() string {
	return m.Server.URL
}

// Endpoints points both origins at the fake server.
func (m *MockKagi) Endpoints() transport.Endpoints {
	return transport.Endpoints{Kagi: m.Server.URL, Translate: m.Server.URL}
}

// Close shuts the server down.
func (m *MockKagi) Close() {
	m.Server.Close()
}

// SignedToken returns an HS256 token that expires after ttl.
func SignedToken(ttl time.Duration) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":           "42",
		"loggedIn":     true,
		"accountType":  "professional",
		"subscription": true,
		"exp":          time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return signed
}
