package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/search"
	"github.com/papercomputeco/kagi/pkg/utils"
)

var (
	searchToolName    = "kagi_search"
	searchDescription = "Search the web with Kagi. Returns result pages with titles, URLs, descriptions, and domain metadata as JSON."

	summarizeToolName    = "kagi_summarize"
	summarizeDescription = "Summarize a web page or document by URL with Kagi's Universal Summarizer. Returns the summary markdown and metadata as JSON."

	askToolName    = "kagi_ask"
	askDescription = "Ask Kagi Assistant a question. Returns the thread, the reply, and the extracted response text as JSON. Pass thread_id to continue a conversation."

	proofreadToolName    = "kagi_proofread"
	proofreadDescription = "Proofread text with Kagi. Returns the corrected text, a summary of corrections, tone analysis, and writing statistics as JSON."
)

// SearchInput represents the input arguments for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query"`
	All   bool   `json:"all,omitempty" jsonschema:"fetch every page instead of only the first"`
}

// SummarizeInput represents the input arguments for the summarize tool.
type SummarizeInput struct {
	URL         string `json:"url" jsonschema:"the URL of the page or document to summarize"`
	SummaryType string `json:"summary_type,omitempty" jsonschema:"takeaway for key points or summary for prose"`
}

// AskInput represents the input arguments for the ask tool.
type AskInput struct {
	Prompt     string `json:"prompt" jsonschema:"the question to ask"`
	Model      string `json:"model,omitempty" jsonschema:"assistant model to use"`
	ThreadID   string `json:"thread_id,omitempty" jsonschema:"thread to continue"`
	NoInternet bool   `json:"no_internet,omitempty" jsonschema:"disable web access for this prompt"`
}

// ProofreadInput represents the input arguments for the proofread tool.
type ProofreadInput struct {
	Text            string `json:"text" jsonschema:"the text to proofread"`
	SourceLang      string `json:"source_lang,omitempty" jsonschema:"source language code or auto"`
	WritingStyle    string `json:"writing_style,omitempty" jsonschema:"writing style such as general or academic"`
	CorrectionLevel string `json:"correction_level,omitempty" jsonschema:"light, standard, or thorough"`
	Formality       string `json:"formality,omitempty" jsonschema:"default, more, or less"`
	Context         string `json:"context,omitempty" jsonschema:"additional context for the proofreader"`
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(name + " is required")
	}
	return nil
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
	if err := required("query", input.Query); err != nil {
		return s.toolError(searchToolName, err)
	}
	s.config.Logger.Debug("MCP search request", "query", input.Query, "all", input.All)

	var pages []*search.Result
	if input.All {
		var err error
		pages, err = s.config.Client.SearchAll(ctx, input.Query).Collect()
		if err != nil {
			return s.toolError(searchToolName, err)
		}
	} else {
		page, err := s.config.Client.Search(ctx, input.Query, 0)
		if err != nil {
			return s.toolError(searchToolName, err)
		}
		pages = []*search.Result{page}
	}

	out, err := format.SearchJSON(pages)
	if err != nil {
		return s.toolError(searchToolName, err)
	}
	return textResult(out)
}

func (s *Server) handleSummarize(ctx context.Context, _ *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, any, error) {
	if err := required("url", input.URL); err != nil {
		return s.toolError(summarizeToolName, err)
	}

	opts := s.config.Defaults.SummarizerOptions(input)
	s.config.Logger.Debug("MCP summarize request", "url", input.URL, "summary_type", opts.SummaryType)

	result, err := s.config.Client.Summarize(ctx, input.URL, opts)
	if err != nil {
		return s.toolError(summarizeToolName, err)
	}

	out, err := format.Summary(format.JSON, result)
	if err != nil {
		return s.toolError(summarizeToolName, err)
	}
	return textResult(out)
}

func (s *Server) handleAsk(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, any, error) {
	if err := required("prompt", input.Prompt); err != nil {
		return s.toolError(askToolName, err)
	}

	opts := s.config.Defaults.AssistantOptions(input)
	s.config.Logger.Debug("MCP ask request", "prompt", utils.Truncate(input.Prompt, 60), "model", opts.Model, "thread_id", opts.ThreadID)

	result, err := s.config.Client.Prompt(ctx, input.Prompt, opts)
	if err != nil {
		return s.toolError(askToolName, err)
	}

	out, err := format.AssistantJSON(result)
	if err != nil {
		return s.toolError(askToolName, err)
	}
	return textResult(out)
}

func (s *Server) handleProofread(ctx context.Context, _ *mcp.CallToolRequest, input ProofreadInput) (*mcp.CallToolResult, any, error) {
	if err := required("text", input.Text); err != nil {
		return s.toolError(proofreadToolName, err)
	}

	opts := s.config.Defaults.ProofreadOptions(input)
	s.config.Logger.Debug("MCP proofread request", "chars", len(input.Text), "source_lang", opts.SourceLang)

	result, err := s.config.Client.Proofread(ctx, input.Text, opts)
	if err != nil {
		return s.toolError(proofreadToolName, err)
	}

	out, err := format.Proofread(format.JSON, result)
	if err != nil {
		return s.toolError(proofreadToolName, err)
	}
	return textResult(out)
}
