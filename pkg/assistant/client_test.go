package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/auth"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/transport"
)

var _ = Describe("Client", func() {
	var (
		server *httptest.Server
		status int
		body   map[string]any
		header http.Header
		cookie string
		client *assistant.Client
	)

	BeforeEach(func() {
		status = http.StatusOK
		body = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header = r.Header.Clone()
			if c, err := r.Cookie(auth.SessionCookie); err == nil {
				cookie = c.Value
			}
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)

			if status != http.StatusOK {
				w.WriteHeader(status)
				_, _ = w.Write([]byte("Unauthorized"))
				return
			}
			_, _ = w.Write([]byte(streamText))
		}))

		endpoints := transport.Endpoints{Kagi: server.URL}
		tr := transport.New(server.Client(), transport.DefaultOptions())
		client = assistant.NewClient(&assistant.Config{
			Transport:   tr,
			Credentials: auth.NewProvider("sess", tr, endpoints),
			Endpoints:   endpoints,
		})
	})

	AfterEach(func() {
		server.Close()
	})

	It("returns the thread and the final message", func() {
		result, err := client.Prompt(context.Background(), "Hello", assistant.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Thread.ID).To(Equal("thread-1"))
		Expect(result.Message.State).To(Equal("done"))

		Expect(cookie).To(Equal("sess"))
		Expect(header.Get("Accept")).To(Equal("application/vnd.kagi.stream"))
		Expect(header.Get("Origin")).To(Equal(server.URL))
		Expect(header.Get("Referer")).To(Equal(server.URL + "/assistant"))
	})

	It("builds a new-thread request body by default", func() {
		_, err := client.Prompt(context.Background(), "Hello", assistant.Options{})
		Expect(err).NotTo(HaveOccurred())

		focus := body["focus"].(map[string]any)
		Expect(focus).To(HaveKeyWithValue("thread_id", BeNil()))
		Expect(focus).To(HaveKeyWithValue("branch_id", "00000000-0000-4000-0000-000000000000"))
		Expect(focus).To(HaveKeyWithValue("prompt", "Hello"))

		profile := body["profile"].(map[string]any)
		Expect(profile).To(HaveKeyWithValue("id", BeNil()))
		Expect(profile).To(HaveKeyWithValue("lens_id", BeNil()))
		Expect(profile).To(HaveKeyWithValue("personalizations", true))
		Expect(profile).To(HaveKeyWithValue("internet_access", true))
		Expect(profile).To(HaveKeyWithValue("model", "gpt-5-mini"))

		threads := body["threads"].([]any)
		Expect(threads).To(HaveLen(1))
		Expect(threads[0]).To(HaveKeyWithValue("tag_ids", BeEmpty()))
		Expect(threads[0]).To(HaveKeyWithValue("saved", false))
	})

	It("continues a thread with a model and no internet", func() {
		_, err := client.Prompt(context.Background(), "Again", assistant.Options{
			Model:           "claude-4-sonnet",
			ThreadID:        "thread-1",
			DisableInternet: true,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(body["focus"]).To(HaveKeyWithValue("thread_id", "thread-1"))
		Expect(body["profile"]).To(HaveKeyWithValue("model", "claude-4-sonnet"))
		Expect(body["profile"]).To(HaveKeyWithValue("internet_access", false))
	})

	It("surfaces non-2xx responses as APIError", func() {
		status = http.StatusUnauthorized

		_, err := client.Prompt(context.Background(), "Hello", assistant.Options{})
		var apiErr *kagierr.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("streams snapshots", func() {
		stream, err := client.Stream(context.Background(), "Hello", assistant.Options{})
		Expect(err).NotTo(HaveOccurred())
		defer stream.Close()

		first, err := stream.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(Equal("<p>Hi there!</p>"))

		done, err := stream.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(BeEmpty())
	})
})
