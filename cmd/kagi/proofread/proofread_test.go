package proofreadcmder_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	proofreadcmder "github.com/papercomputeco/kagi/cmd/kagi/proofread"
	"github.com/papercomputeco/kagi/pkg/proofread"
)

var _ = Describe("NewProofreadCmd", func() {
	It("creates a command with expected properties", func() {
		cmd := proofreadcmder.NewProofreadCmd()
		Expect(cmd.Use).To(Equal("proofread <text|->"))
		Expect(cmd.Short).NotTo(BeEmpty())
	})

	It("registers the proofread option flags", func() {
		cmd := proofreadcmder.NewProofreadCmd()
		for _, name := range []string{"format", "lang", "style", "level", "formality", "model", "context"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}
	})

	It("requires exactly one argument", func() {
		cmd := proofreadcmder.NewProofreadCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{})
		Expect(cmd.Execute()).NotTo(Succeed())
	})
})

var _ = Describe("Render", func() {
	It("prints the streamed text without an analysis", func() {
		out := &bytes.Buffer{}
		Expect(proofreadcmder.Render(out, &proofread.Result{Text: "Just text."})).To(Succeed())
		Expect(out.String()).To(Equal("Just text.\n"))
	})

	It("prints the analysis sections", func() {
		out := &bytes.Buffer{}
		r := &proofread.Result{Analysis: &proofread.Analysis{
			CorrectedText:      "Hello world.",
			CorrectionsSummary: "Fixed spelling.",
			ToneAnalysis:       proofread.ToneAnalysis{OverallTone: "neutral", Description: "Plain."},
			WritingStatistics: proofread.WritingStatistics{
				WordCount:    2,
				ReadingLevel: "Basic",
			},
		}}

		Expect(proofreadcmder.Render(out, r)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Hello world."))
		Expect(out.String()).To(ContainSubstring("Fixed spelling."))
		Expect(out.String()).To(ContainSubstring("neutral -- Plain."))
		Expect(out.String()).To(ContainSubstring("Basic"))
	})
})
