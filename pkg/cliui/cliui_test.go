package cliui_test

import (
	"bytes"
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/pkg/cliui"
)

var _ = Describe("FormatDuration", func() {
	It("uses milliseconds below a second", func() {
		Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
	})

	It("uses tenths of seconds above a second", func() {
		Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
	})
})

var _ = Describe("Mark", func() {
	It("picks the mark from the error", func() {
		Expect(cliui.Mark(nil)).To(Equal(cliui.SuccessMark))
		Expect(cliui.Mark(errors.New("boom"))).To(Equal(cliui.FailMark))
	})
})

var _ = Describe("Step", func() {
	It("returns the error of fn and prints the message", func() {
		var buf bytes.Buffer
		err := cliui.Step(&buf, "summarizing", func() error {
			return errors.New("boom")
		})
		Expect(err).To(MatchError("boom"))
		Expect(buf.String()).To(ContainSubstring("summarizing"))
		Expect(buf.String()).To(HaveSuffix("\n"))
	})
})

var _ = Describe("KeyValueTable", func() {
	It("renders every label and value", func() {
		out := cliui.KeyValueTable([][]string{
			{"Model", "Mistral Small"},
			{"Tokens", "4154"},
		})
		Expect(out).To(ContainSubstring("Model"))
		Expect(out).To(ContainSubstring("Mistral Small"))
		Expect(out).To(ContainSubstring("4154"))
	})
})

var _ = Describe("Table", func() {
	It("renders headers and cells", func() {
		out := cliui.Table([]string{"Domain", "Trackers"}, [][]string{
			{"example.com", "3"},
			{"go.dev", ""},
		})
		Expect(out).To(ContainSubstring("Domain"))
		Expect(out).To(ContainSubstring("example.com"))
		Expect(out).To(ContainSubstring("go.dev"))
	})
})

var _ = Describe("Panel", func() {
	It("renders the title above the boxed body", func() {
		out := cliui.Panel("Corrected Text", "Hello there.")
		Expect(out).To(HavePrefix(cliui.TitleStyle.Render("Corrected Text")))
		Expect(out).To(ContainSubstring("Hello there."))
	})

	It("omits an empty title", func() {
		out := cliui.Panel("", "body")
		Expect(out).To(ContainSubstring("body"))
		Expect(out).To(ContainSubstring("╭"))
	})
})

var _ = Describe("RenderMarkdown", func() {
	It("keeps the text of the document", func() {
		out, err := cliui.RenderMarkdown("# Title\n\nSome body text.")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Some body text."))
	})
})

var _ = Describe("IsTerminal", func() {
	It("is false for a regular file", func() {
		f, err := os.CreateTemp("", "cliui-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.Remove(f.Name())
		defer f.Close()

		Expect(cliui.IsTerminal(f)).To(BeFalse())
		_, err = cliui.ReadSecret(f)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ColorProfile", func() {
	It("disables color for a regular file", func() {
		f, err := os.CreateTemp("", "cliui-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.Remove(f.Name())
		defer f.Close()

		Expect(cliui.ColorProfile(f)).To(Equal(termenv.Ascii))
	})
})

var _ = Describe("Truncate", func() {
	It("cuts long text to the width with an ellipsis", func() {
		out := cliui.Truncate("a fairly long search snippet", 10)
		Expect(ansi.StringWidth(out)).To(Equal(10))
		Expect(out).To(HaveSuffix("…"))
	})

	It("keeps short text and non-positive widths", func() {
		Expect(cliui.Truncate("short", 10)).To(Equal("short"))
		Expect(cliui.Truncate("anything", 0)).To(Equal("anything"))
	})
})
