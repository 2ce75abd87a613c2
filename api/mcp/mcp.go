// Package mcp provides an MCP (Model Context Protocol) server exposing Kagi
// search, summarization, the assistant, and proofreading as tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/proofread"
	"github.com/papercomputeco/kagi/pkg/search"
	"github.com/papercomputeco/kagi/pkg/summarizer"
	"github.com/papercomputeco/kagi/pkg/utils"
)

// Kagi is the subset of *kagi.Client the tools call.
type Kagi interface {
	Proofread(ctx context.Context, text string, opts proofread.Options) (*proofread.Result, error)
	Summarize(ctx context.Context, url string, opts summarizer.Options) (*summarizer.Result, error)
	Prompt(ctx context.Context, text string, opts assistant.Options) (*assistant.Result, error)
	Search(ctx context.Context, query string, batch int) (*search.Result, error)
	SearchAll(ctx context.Context, query string) *search.Pager
}

type Config struct {
	// Client performs the Kagi calls.
	Client Kagi

	// Defaults for optional tool arguments.
	Defaults Defaults

	// Logger is the configured slog logger
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the four Kagi tools.
func NewServer(c Config) (*Server, error) {
	if c.Client == nil {
		return nil, errors.New("kagi client is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "kagi",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        searchToolName,
		Description: searchDescription,
	}, s.handleSearch)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        summarizeToolName,
		Description: summarizeDescription,
	}, s.handleSummarize)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        askToolName,
		Description: askDescription,
	}, s.handleAsk)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        proofreadToolName,
		Description: proofreadDescription,
	}, s.handleProofread)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// MCPServer returns the underlying go-sdk server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// Run serves MCP over t until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.config.Logger.Info("serving MCP", "tools", []string{searchToolName, summarizeToolName, askToolName, proofreadToolName})
	return s.mcpServer.Run(ctx, t)
}

// RunStdio serves MCP over stdin and stdout.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// toolError reports a failed call as an IsError result so the model sees
// the message instead of a protocol error.
func (s *Server) toolError(tool string, err error) (*mcp.CallToolResult, any, error) {
	s.config.Logger.Error("MCP tool failed", "tool", tool, "error", err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s failed: %v", tool, err)},
		},
	}, nil, nil
}

// textResult returns the serialized projection as the tool's text content.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}
