package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/api"
	"github.com/papercomputeco/kagi/api/mcp"
	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/kagi"
	"github.com/papercomputeco/kagi/pkg/logger"
	"github.com/papercomputeco/kagi/pkg/proofread"
	"github.com/papercomputeco/kagi/pkg/search"
	"github.com/papercomputeco/kagi/pkg/summarizer"
	"github.com/papercomputeco/kagi/pkg/transport"
	testutils "github.com/papercomputeco/kagi/pkg/utils/test"
)

var _ = Describe("API Server", func() {
	var (
		mock     *testutils.MockKagi
		client   *kagi.Client
		server   *api.Server
		defaults mcp.Defaults
	)

	do := func(req *http.Request) (int, string) {
		resp, err := server.App().Test(req, -1)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return resp.StatusCode, string(body)
	}

	post := func(path, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	BeforeEach(func() {
		mock = testutils.NewMockKagi()
		DeferCleanup(mock.Close)

		var err error
		client, err = kagi.New("sess",
			kagi.WithHTTPClient(mock.Server.Client()),
			kagi.WithEndpoints(mock.Endpoints()),
		)
		Expect(err).NotTo(HaveOccurred())

		defaults = mcp.Defaults{
			Proofread:      proofread.DefaultOptions(),
			SummaryType:    summarizer.TypeTakeaway,
			AssistantModel: assistant.DefaultModel,
		}
		server, err = api.NewServer(api.Config{ListenAddr: ":0", Client: client, Defaults: defaults}, logger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewServer", func() {
		It("requires a client", func() {
			_, err := api.NewServer(api.Config{}, logger.Nop())
			Expect(err).To(MatchError(ContainSubstring("kagi client is required")))
		})

		It("requires a logger", func() {
			_, err := api.NewServer(api.Config{Client: client}, nil)
			Expect(err).To(MatchError(ContainSubstring("logger is required")))
		})
	})

	It("answers ping", func() {
		status, body := do(httptest.NewRequest(http.MethodGet, "/ping", nil))
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(Equal(`"pong"`))
	})

	Describe("GET /v1/search", func() {
		It("returns the first page", func() {
			status, body := do(httptest.NewRequest(http.MethodGet, "/v1/search?q=go", nil))
			Expect(status).To(Equal(http.StatusOK))

			var page search.Result
			Expect(json.Unmarshal([]byte(body), &page)).To(Succeed())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Title).To(Equal("The Go Programming Language"))
		})

		It("passes the batch through", func() {
			status, _ := do(httptest.NewRequest(http.MethodGet, "/v1/search?q=go&batch=2", nil))
			Expect(status).To(Equal(http.StatusOK))
			Expect(mock.RequestsTo(search.Path)[0].Query).To(ContainSubstring("batch=2"))
		})

		It("rejects a missing query", func() {
			status, body := do(httptest.NewRequest(http.MethodGet, "/v1/search", nil))
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring("q parameter is required"))
		})

		It("rejects a negative batch", func() {
			status, _ := do(httptest.NewRequest(http.MethodGet, "/v1/search?q=go&batch=-1", nil))
			Expect(status).To(Equal(http.StatusBadRequest))
		})

		It("maps upstream failures to bad gateway", func() {
			mock.Fail(search.Path, http.StatusServiceUnavailable)

			status, body := do(httptest.NewRequest(http.MethodGet, "/v1/search?q=go", nil))
			Expect(status).To(Equal(http.StatusBadGateway))
			Expect(body).To(ContainSubstring("503"))
		})

		It("maps an unreachable origin to bad gateway", func() {
			gone := httptest.NewServer(http.NotFoundHandler())
			gone.Close()

			down, err := kagi.New("sess",
				kagi.WithHTTPClient(mock.Server.Client()),
				kagi.WithEndpoints(transport.Endpoints{Kagi: gone.URL, Translate: mock.Server.URL}),
			)
			Expect(err).NotTo(HaveOccurred())
			server, err = api.NewServer(api.Config{ListenAddr: ":0", Client: down, Defaults: defaults}, logger.Nop())
			Expect(err).NotTo(HaveOccurred())

			status, body := do(httptest.NewRequest(http.MethodGet, "/v1/search?q=go", nil))
			Expect(status).To(Equal(http.StatusBadGateway))
			Expect(body).To(ContainSubstring("sending GET"))
		})
	})

	Describe("GET /v1/summarize", func() {
		It("returns the summary", func() {
			status, body := do(httptest.NewRequest(http.MethodGet, "/v1/summarize?url=https://example.com&summary_type=summary", nil))
			Expect(status).To(Equal(http.StatusOK))

			var result summarizer.Result
			Expect(json.Unmarshal([]byte(body), &result)).To(Succeed())
			Expect(result.Title).To(Equal("Example Doc"))
			Expect(mock.RequestsTo(summarizer.Path)[0].Query).To(ContainSubstring("summary_type=summary"))
		})

		It("rejects a missing url", func() {
			status, _ := do(httptest.NewRequest(http.MethodGet, "/v1/summarize", nil))
			Expect(status).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /v1/ask", func() {
		It("returns the answer with the extracted response", func() {
			status, body := do(post("/v1/ask", `{"prompt":"Hello","thread_id":"thread-9"}`))
			Expect(status).To(Equal(http.StatusOK))

			var answer map[string]any
			Expect(json.Unmarshal([]byte(body), &answer)).To(Succeed())
			Expect(answer["response"]).To(Equal("Hi there"))

			focus := mock.RequestsTo(assistant.Path)[0].Body["focus"].(map[string]any)
			Expect(focus["thread_id"]).To(Equal("thread-9"))
		})

		It("rejects an empty prompt", func() {
			status, _ := do(post("/v1/ask", `{"prompt":""}`))
			Expect(status).To(Equal(http.StatusBadRequest))
		})

		It("rejects malformed bodies", func() {
			status, _ := do(post("/v1/ask", `{`))
			Expect(status).To(Equal(http.StatusBadRequest))
		})

		It("reports upstream rejections as bad gateway", func() {
			mock.Fail(assistant.Path, http.StatusUnauthorized)

			status, _ := do(post("/v1/ask", `{"prompt":"Hello"}`))
			Expect(status).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("POST /v1/proofread", func() {
		It("returns the analysis", func() {
			status, body := do(post("/v1/proofread", `{"text":"Helo world","formality":"more"}`))
			Expect(status).To(Equal(http.StatusOK))

			var result proofread.Result
			Expect(json.Unmarshal([]byte(body), &result)).To(Succeed())
			Expect(result.Analysis).NotTo(BeNil())
			Expect(result.Analysis.CorrectedText).To(Equal("Hello world."))
			Expect(mock.RequestsTo(proofread.Path)[0].Body["formality"]).To(Equal("more"))
		})

		It("maps token failures to unauthorized", func() {
			mock.Fail("/api/auth", http.StatusForbidden)

			status, _ := do(post("/v1/proofread", `{"text":"Helo"}`))
			Expect(status).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("/mcp", func() {
		It("is not mounted without an MCP server", func() {
			status, _ := do(post("/mcp", `{}`))
			Expect(status).To(Equal(http.StatusNotFound))
		})

		It("is mounted when an MCP server is configured", func() {
			mcpServer, err := mcp.NewServer(mcp.Config{Client: client, Defaults: defaults, Logger: logger.Nop()})
			Expect(err).NotTo(HaveOccurred())

			server, err = api.NewServer(api.Config{Client: client, Defaults: defaults, MCP: mcpServer}, logger.Nop())
			Expect(err).NotTo(HaveOccurred())

			status, _ := do(httptest.NewRequest(http.MethodGet, "/mcp", nil))
			Expect(status).NotTo(Equal(http.StatusNotFound))
		})
	})
})
