package summarizecmder_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	summarizecmder "github.com/papercomputeco/kagi/cmd/kagi/summarize"
	"github.com/papercomputeco/kagi/pkg/summarizer"
)

var _ = Describe("NewSummarizeCmd", func() {
	It("creates a command with expected properties", func() {
		cmd := summarizecmder.NewSummarizeCmd()
		Expect(cmd.Use).To(Equal("summarize <url>"))
		Expect(cmd.Flags().Lookup("type")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("format")).NotTo(BeNil())
	})
})

var _ = Describe("Render", func() {
	It("prints the title and metadata", func() {
		speed := 50.5
		r := &summarizer.Result{
			Title:    "Example Doc",
			Markdown: "- Point",
			ResponseMetadata: summarizer.ResponseMetadata{
				Model: "Mistral Small",
				Speed: &speed,
				Cost:  0.0012,
			},
			WordStats: summarizer.WordStats{TimeSaved: 30},
		}

		out := &bytes.Buffer{}
		Expect(summarizecmder.Render(out, r)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Example Doc"))
		Expect(out.String()).To(ContainSubstring("Point"))
		Expect(out.String()).To(ContainSubstring("Mistral Small"))
		Expect(out.String()).To(ContainSubstring("50.5 tok/s"))
		Expect(out.String()).To(ContainSubstring("$0.0012"))
		Expect(out.String()).To(ContainSubstring("30s"))
	})

	It("omits optional rows", func() {
		out := &bytes.Buffer{}
		Expect(summarizecmder.Render(out, &summarizer.Result{Title: "T"})).To(Succeed())
		Expect(out.String()).NotTo(ContainSubstring("Speed"))
		Expect(out.String()).NotTo(ContainSubstring("Elapsed"))
	})
})
