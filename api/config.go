// Package api provides an HTTP API server exposing Kagi search,
// summarization, the assistant, and proofreading as JSON endpoints.
package api

import (
	"github.com/papercomputeco/kagi/api/mcp"
)

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string

	// Client performs the Kagi calls.
	Client mcp.Kagi

	// Defaults for options a request leaves empty.
	Defaults mcp.Defaults

	// MCP, when set, is mounted at /mcp as a streamable HTTP endpoint.
	MCP *mcp.Server
}
