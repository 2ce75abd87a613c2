package askcmder_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	askcmder "github.com/papercomputeco/kagi/cmd/kagi/ask"
	"github.com/papercomputeco/kagi/pkg/assistant"
)

var _ = Describe("NewAskCmd", func() {
	It("creates a command with expected properties", func() {
		cmd := askcmder.NewAskCmd()
		Expect(cmd.Use).To(Equal("ask <prompt|->"))
		Expect(cmd.Short).NotTo(BeEmpty())
	})

	It("has the thread and internet flags", func() {
		cmd := askcmder.NewAskCmd()
		for _, name := range []string{"format", "model", "internet", "no-internet", "thread", "continue"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}
	})
})

var _ = Describe("Answer", func() {
	It("keeps the first closed reasoning block", func() {
		var a askcmder.Answer
		a.Split("<details><summary>Thinking</summary>step one")
		Expect(a.Thinking).To(BeEmpty())
		Expect(a.HTML).To(BeEmpty())

		a.Split("<details><summary>Thinking</summary>step one</details><p>Hi")
		Expect(a.Thinking).To(ContainSubstring("step one"))
		Expect(a.HTML).To(Equal("<p>Hi"))

		a.Split("<details><summary>Thinking</summary>step one, revised</details><p>Hi there</p>")
		Expect(a.Thinking).NotTo(ContainSubstring("revised"))
		Expect(a.HTML).To(Equal("<p>Hi there</p>"))
	})

	It("takes snapshots without reasoning as the answer", func() {
		var a askcmder.Answer
		a.Split("<p>Plain</p>")
		Expect(a.Thinking).To(BeEmpty())
		Expect(a.HTML).To(Equal("<p>Plain</p>"))
	})
})

var _ = Describe("Render", func() {
	It("prints the reasoning before the answer", func() {
		out := &bytes.Buffer{}
		err := askcmder.Render(out, askcmder.Answer{Thinking: "pondering", HTML: "<p>Hi there</p>"}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("pondering"))
		Expect(out.String()).To(ContainSubstring("Hi there"))
	})

	It("falls back to the folded reply", func() {
		md := "From the result"
		out := &bytes.Buffer{}
		err := askcmder.Render(out, askcmder.Answer{}, &assistant.Result{Message: assistant.Message{MD: &md}})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("From the result"))
	})

	It("prints nothing without an answer", func() {
		out := &bytes.Buffer{}
		Expect(askcmder.Render(out, askcmder.Answer{}, &assistant.Result{})).To(Succeed())
		Expect(out.String()).To(BeEmpty())
	})
})
