package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/logger"
	"github.com/papercomputeco/kagi/pkg/transport"
)

const (
	// Path is the prompt endpoint on the Kagi origin.
	Path = "/assistant/prompt"

	refererPath = "/assistant"

	// DefaultModel is used when Options.Model is empty.
	DefaultModel = "gpt-5-mini"

	streamContentType = "application/vnd.kagi.stream"
)

// rootBranch is the branch every new prompt is attached to.
var rootBranch = uuid.MustParse("00000000-0000-4000-0000-000000000000")

// Options tune one prompt.
type Options struct {
	Model string `json:"model"`

	// ThreadID continues an existing thread. Empty starts a new one.
	ThreadID string `json:"thread_id"`

	DisableInternet bool `json:"disable_internet"`
}

type focus struct {
	ThreadID *string   `json:"thread_id"`
	BranchID uuid.UUID `json:"branch_id"`
	Prompt   string    `json:"prompt"`
}

type profile struct {
	ID               *string `json:"id"`
	Personalizations bool    `json:"personalizations"`
	InternetAccess   bool    `json:"internet_access"`
	Model            string  `json:"model"`
	LensID           *string `json:"lens_id"`
}

type threadFlags struct {
	TagIDs []string `json:"tag_ids"`
	Saved  bool     `json:"saved"`
	Shared bool     `json:"shared"`
}

type request struct {
	Focus   focus         `json:"focus"`
	Profile profile       `json:"profile"`
	Threads []threadFlags `json:"threads"`
}

func newRequest(text string, opts Options) request {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	var threadID *string
	if opts.ThreadID != "" {
		threadID = &opts.ThreadID
	}

	return request{
		Focus: focus{
			ThreadID: threadID,
			BranchID: rootBranch,
			Prompt:   text,
		},
		Profile: profile{
			Personalizations: true,
			InternetAccess:   !opts.DisableInternet,
			Model:            model,
		},
		Threads: []threadFlags{{TagIDs: []string{}}},
	}
}

// Config wires a Client to its collaborators.
type Config struct {
	Transport   *transport.Client
	Credentials auth.Credentials
	Endpoints   transport.Endpoints
	Logger      *slog.Logger
}

// Client calls the assistant endpoint.
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

// Prompt sends text and waits for the completed reply.
func (c *Client) Prompt(ctx context.Context, text string, opts Options) (*Result, error) {
	stream, err := c.Stream(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	snapshots := 0
	for {
		snapshot, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if snapshot == "" {
			break
		}
		snapshots++
	}

	c.logger.Debug("assistant stream complete", "snapshots", snapshots)
	return stream.Result()
}

// Stream sends text and returns a Stream of live reply snapshots.
func (c *Client) Stream(ctx context.Context, text string, opts Options) (*Stream, error) {
	body, err := json.Marshal(newRequest(text, opts))
	if err != nil {
		return nil, &kagierr.TransportError{Op: "marshaling assistant request", Err: err}
	}

	url := c.endpoints.KagiURL(Path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &kagierr.TransportError{Op: "creating assistant request", Err: err}
	}
	req.Header.Set("Accept", streamContentType)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.endpoints.KagiOrigin())
	req.Header.Set("Referer", c.endpoints.KagiURL(refererPath))
	c.credentials.AttachSession(req)

	c.logger.Debug("sending assistant request", "url", url, "model", opts.Model, "thread_id", opts.ThreadID)

	resp, err := c.transport.Send(req)
	if err != nil {
		return nil, err
	}

	return NewStream(resp.Body), nil
}
