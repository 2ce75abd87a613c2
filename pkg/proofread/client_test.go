package proofread_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/proofread"
	"github.com/papercomputeco/kagi/pkg/transport"
)

type staticToken string

func (t staticToken) Token(context.Context) (string, error) { return string(t), nil }

type failingToken struct{}

func (failingToken) Token(context.Context) (string, error) {
	return "", &kagierr.AuthError{Message: "auth refresh failed", StatusCode: 401}
}

var _ = Describe("Client", func() {
	var (
		server  *httptest.Server
		status  int
		body    map[string]any
		referer string
		path    string
	)

	BeforeEach(func() {
		status = http.StatusOK
		body = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			referer = r.Header.Get("Referer")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)

			if status != http.StatusOK {
				w.WriteHeader(status)
				_, _ = w.Write([]byte("Forbidden"))
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte(streamText))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newClient := func(tokens auth.TokenSource) *proofread.Client {
		return proofread.NewClient(&proofread.Config{
			Transport: transport.New(server.Client(), transport.DefaultOptions()),
			Tokens:    tokens,
			Endpoints: transport.Endpoints{Translate: server.URL},
		})
	}

	It("returns the folded result", func() {
		result, err := newClient(staticToken("tok")).Proofread(context.Background(), "Helo world", proofread.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Text).To(Equal("Hello world"))
		Expect(result.DetectedLanguage.Label).To(Equal("English"))
		Expect(result.Analysis.CorrectionsSummary).To(Equal("No corrections needed."))
	})

	It("sends the default options with the session token", func() {
		_, err := newClient(staticToken("tok")).Proofread(context.Background(), "Helo world", proofread.Options{})
		Expect(err).NotTo(HaveOccurred())

		Expect(path).To(Equal(proofread.Path))
		Expect(referer).To(Equal(server.URL + "/proofread"))
		Expect(body).To(HaveKeyWithValue("text", "Helo world"))
		Expect(body).To(HaveKeyWithValue("session_token", "tok"))
		Expect(body).To(HaveKeyWithValue("source_lang", "auto"))
		Expect(body).To(HaveKeyWithValue("writing_style", "general"))
		Expect(body).To(HaveKeyWithValue("correction_level", "standard"))
		Expect(body).To(HaveKeyWithValue("formality", "default"))
		Expect(body).To(HaveKeyWithValue("context", ""))
		Expect(body).To(HaveKeyWithValue("model", "standard"))
		Expect(body).To(HaveKeyWithValue("stream", true))
		Expect(body).To(HaveKeyWithValue("explanation_language", "en"))
	})

	It("sends caller options", func() {
		_, err := newClient(staticToken("tok")).Proofread(context.Background(), "Hallo", proofread.Options{
			SourceLang:      "de",
			WritingStyle:    "academic",
			CorrectionLevel: "strict",
			Formality:       "formal",
			Context:         "a letter",
			Model:           "best",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(HaveKeyWithValue("source_lang", "de"))
		Expect(body).To(HaveKeyWithValue("writing_style", "academic"))
		Expect(body).To(HaveKeyWithValue("correction_level", "strict"))
		Expect(body).To(HaveKeyWithValue("formality", "formal"))
		Expect(body).To(HaveKeyWithValue("context", "a letter"))
		Expect(body).To(HaveKeyWithValue("model", "best"))
	})

	It("surfaces non-2xx responses as APIError", func() {
		status = http.StatusForbidden

		_, err := newClient(staticToken("tok")).Proofread(context.Background(), "x", proofread.Options{})
		var apiErr *kagierr.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusForbidden))
		Expect(apiErr.Body).To(Equal("Forbidden"))
	})

	It("surfaces token failures as auth errors without calling the endpoint", func() {
		path = ""
		_, err := newClient(failingToken{}).Proofread(context.Background(), "x", proofread.Options{})
		Expect(errors.Is(err, kagierr.ErrAuth)).To(BeTrue())
		Expect(path).To(BeEmpty())
	})

	It("streams every decoded frame in order", func() {
		stream, err := newClient(staticToken("tok")).Stream(context.Background(), "x", proofread.Options{})
		Expect(err).NotTo(HaveOccurred())
		defer stream.Close()

		var kinds []proofread.EventKind
		for {
			ev, err := stream.Next()
			Expect(err).NotTo(HaveOccurred())
			if ev == nil {
				break
			}
			kinds = append(kinds, ev.Kind)
		}

		Expect(kinds).To(Equal([]proofread.EventKind{
			proofread.KindDetectedLanguage,
			proofread.KindDelta,
			proofread.KindOther,
			proofread.KindAnalysis,
			proofread.KindOther,
		}))

		result, err := stream.Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Text).To(Equal("Hello world"))
	})
})
