package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/kagi/api/mcp"
	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/search"
	"github.com/papercomputeco/kagi/pkg/utils"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorHandler maps library errors onto HTTP statuses.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var fe *fiber.Error
	var apiErr *kagierr.APIError
	switch {
	case errors.As(err, &fe):
		status = fe.Code
	case errors.Is(err, kagierr.ErrAuth):
		status = fiber.StatusUnauthorized
	case errors.As(err, &apiErr):
		status = fiber.StatusBadGateway
	case errors.Is(err, kagierr.ErrStreamParse), errors.Is(err, kagierr.ErrTransport):
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}

// sendJSON writes a serialized projection as the response body.
func sendJSON(c *fiber.Ctx, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(body)
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleSearch handles GET /v1/search.
// Query parameters:
//   - q (required): the search query
//   - all (optional): fetch every page when true
//   - batch (optional): fetch one later page by batch number
func (s *Server) handleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "q parameter is required")
	}

	batch := 0
	if raw := c.Query("batch"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "batch must be a non-negative integer")
		}
		batch = parsed
	}
	all := c.QueryBool("all", false)

	s.logger.Debug("API search request", "query", query, "all", all, "batch", batch)

	ctx := c.UserContext()
	var pages []*search.Result
	if all {
		var err error
		pages, err = s.config.Client.SearchAll(ctx, query).Collect()
		if err != nil {
			return err
		}
	} else {
		page, err := s.config.Client.Search(ctx, query, batch)
		if err != nil {
			return err
		}
		pages = []*search.Result{page}
	}

	out, err := format.SearchJSON(pages)
	if err != nil {
		return err
	}
	return sendJSON(c, out)
}

// handleSummarize handles GET /v1/summarize?url=&summary_type=.
func (s *Server) handleSummarize(c *fiber.Ctx) error {
	in := mcp.SummarizeInput{
		URL:         c.Query("url"),
		SummaryType: c.Query("summary_type"),
	}
	if strings.TrimSpace(in.URL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "url parameter is required")
	}

	opts := s.config.Defaults.SummarizerOptions(in)
	s.logger.Debug("API summarize request", "url", in.URL, "summary_type", opts.SummaryType)

	result, err := s.config.Client.Summarize(c.UserContext(), in.URL, opts)
	if err != nil {
		return err
	}

	out, err := format.Summary(format.JSON, result)
	if err != nil {
		return err
	}
	return sendJSON(c, out)
}

// handleAsk handles POST /v1/ask with a JSON body shaped like the kagi_ask
// tool arguments.
func (s *Server) handleAsk(c *fiber.Ctx) error {
	var in mcp.AskInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prompt is required")
	}

	opts := s.config.Defaults.AssistantOptions(in)
	s.logger.Debug("API ask request", "prompt", utils.Truncate(in.Prompt, 60), "model", opts.Model, "thread_id", opts.ThreadID)

	result, err := s.config.Client.Prompt(c.UserContext(), in.Prompt, opts)
	if err != nil {
		return err
	}

	out, err := format.AssistantJSON(result)
	if err != nil {
		return err
	}
	return sendJSON(c, out)
}

// handleProofread handles POST /v1/proofread with a JSON body shaped like
// the kagi_proofread tool arguments.
func (s *Server) handleProofread(c *fiber.Ctx) error {
	var in mcp.ProofreadInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if strings.TrimSpace(in.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "text is required")
	}

	opts := s.config.Defaults.ProofreadOptions(in)
	s.logger.Debug("API proofread request", "chars", len(in.Text), "source_lang", opts.SourceLang)

	result, err := s.config.Client.Proofread(c.UserContext(), in.Text, opts)
	if err != nil {
		return err
	}

	out, err := format.Proofread(format.JSON, result)
	if err != nil {
		return err
	}
	return sendJSON(c, out)
}
