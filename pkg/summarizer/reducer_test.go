package summarizer_test

import (
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/kstream"
	"github.com/papercomputeco/kagi/pkg/summarizer"
)

const streamText = `update:{"output_text":"","output_data":{"status":"reading",` +
	`"word_stats":{"n_tokens":0,"n_words":0,"n_pages":1,"time_saved":0,"length":null},` +
	`"elapsed_seconds":null,"markdown":"",` +
	`"response_metadata":{"speed":null,"tokens":0,"total_time_second":0,` +
	`"model":"","version":"","cost":0},` +
	`"images":[],"title":"","authors":null},"tokens":0,"type":"update"}` + "\n" +
	`update:{"output_text":"<p>Title: Test</p>",` +
	`"output_data":{"status":"generating",` +
	`"word_stats":{"n_tokens":100,"n_words":80,"n_pages":2,"time_saved":5,"length":null},` +
	`"elapsed_seconds":null,"markdown":"",` +
	`"response_metadata":{"speed":null,"tokens":0,"total_time_second":0,` +
	`"model":"","version":"","cost":0},` +
	`"images":[],"title":"","authors":null},"tokens":100,"type":"update"}` + "\n" +
	`final:{"output_text":"<p>Title: Test</p><ul><li>Point one</li></ul>",` +
	`"output_data":{"status":"completed",` +
	`"word_stats":{"n_tokens":100,"n_words":80,"n_pages":2,"time_saved":5,"length":null},` +
	`"elapsed_seconds":12.1,` +
	`"markdown":"Title: Test\n\n- Point one",` +
	`"response_metadata":{"speed":77,"tokens":4154,"total_time_second":12.12,` +
	`"model":"Mistral Small","version":"mistral-small-latest","cost":0.00048},` +
	`"images":[],"title":"Test Article","authors":null},"tokens":3605,"type":"final"}` + "\n"

func parse(text string) []kstream.Line {
	lines, err := kstream.Parse(text)
	Expect(err).NotTo(HaveOccurred())
	return lines
}

var _ = Describe("Reduce", func() {
	It("returns the final record", func() {
		result, err := summarizer.Reduce(parse(streamText))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Title).To(Equal("Test Article"))
		Expect(result.Status).To(Equal("completed"))
		Expect(result.Markdown).To(Equal("Title: Test\n\n- Point one"))
		Expect(result.OutputText).To(ContainSubstring("Point one"))
		Expect(result.ResponseMetadata.Model).To(Equal("Mistral Small"))
		Expect(*result.ResponseMetadata.Speed).To(BeNumerically("==", 77))
		Expect(*result.ElapsedSeconds).To(BeNumerically("==", 12.1))
		Expect(result.WordStats.NWords).To(Equal(80))
		Expect(result.WordStats.Length).To(BeNil())
	})

	It("prefers the final record regardless of what follows it", func() {
		result, err := summarizer.Reduce([]kstream.Line{
			{Tag: "update", Payload: `{"output_text":"a","output_data":{"status":"generating"}}`},
			{Tag: "final", Payload: `{"output_text":"done","output_data":{"status":"completed"}}`},
			{Tag: "update", Payload: `{"output_text":"late","output_data":{"status":"completed"}}`},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OutputText).To(Equal("done"))
	})

	It("treats a type of final as final even under an update tag", func() {
		result, err := summarizer.Reduce([]kstream.Line{
			{Tag: "update", Payload: `{"output_text":"x","type":"final"}`},
			{Tag: "update", Payload: `{"output_text":"y","output_data":{"status":"completed"}}`},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OutputText).To(Equal("x"))
	})

	It("falls back to the last completed record", func() {
		result, err := summarizer.Reduce([]kstream.Line{
			{Tag: "update", Payload: `{"output_text":"first","output_data":{"status":"completed"}}`},
			{Tag: "update", Payload: `{"output_text":"second","output_data":{"status":"completed"}}`},
			{Tag: "update", Payload: `{"output_text":"third","output_data":{"status":"generating"}}`},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OutputText).To(Equal("second"))
	})

	It("falls back to the last record", func() {
		result, err := summarizer.Reduce([]kstream.Line{
			{Tag: "update", Payload: `{"output_text":"a","output_data":{"status":"reading"}}`},
			{Tag: "update", Payload: `{"output_text":"b","output_data":{"status":"generating"}}`},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OutputText).To(Equal("b"))
		Expect(result.Status).To(Equal("generating"))
	})

	It("keeps a final record whose numbers are written as floats", func() {
		result, err := summarizer.Reduce([]kstream.Line{
			{Tag: "update", Payload: `{"output_text":"partial","output_data":{"status":"generating"}}`},
			{Tag: "final", Payload: `{"output_text":"FINAL","output_data":{"status":"completed",` +
				`"word_stats":{"n_words":80.0,"time_saved":5.0}},"tokens":12.0,"type":"final"}`},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OutputText).To(Equal("FINAL"))
		Expect(result.Status).To(Equal("completed"))
		Expect(result.WordStats.TimeSaved).To(Equal(5))
		Expect(result.WordStats.NWords).To(Equal(80))
	})

	It("defaults a field of the wrong type without dropping the record", func() {
		result, err := summarizer.Reduce([]kstream.Line{
			{Tag: "final", Payload: `{"output_text":"kept","output_data":{"status":"completed",` +
				`"title":7,"elapsed_seconds":"soon","response_metadata":{"model":"m","tokens":"many"}}}`},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OutputText).To(Equal("kept"))
		Expect(result.Title).To(BeEmpty())
		Expect(result.ElapsedSeconds).To(BeNil())
		Expect(result.ResponseMetadata.Model).To(Equal("m"))
		Expect(result.ResponseMetadata.Tokens).To(BeZero())
	})

	It("ignores other tags and undecodable payloads", func() {
		result, err := summarizer.Reduce([]kstream.Line{
			{Tag: "hi", Payload: `{"v":"1"}`},
			{Tag: "update", Payload: `{"output_text":"kept"}`},
			{Tag: "update", Payload: `{broken`},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.OutputText).To(Equal("kept"))
	})

	It("fails when no update or final record decodes", func() {
		_, err := summarizer.Reduce([]kstream.Line{{Tag: "hi", Payload: "{}"}})
		Expect(errors.Is(err, kagierr.ErrStreamParse)).To(BeTrue())
	})
})

var _ = Describe("Stream", func() {
	It("yields one update per record in arrival order", func() {
		stream := summarizer.NewStream(stringsReader(streamText))
		defer stream.Close()

		var updates []summarizer.Update
		for {
			u, err := stream.Next()
			Expect(err).NotTo(HaveOccurred())
			if u == nil {
				break
			}
			updates = append(updates, *u)
		}

		Expect(updates).To(HaveLen(3))
		Expect(updates[0].Status).To(Equal("reading"))
		Expect(updates[1].Tokens).To(Equal(100))
		Expect(updates[2].IsFinal()).To(BeTrue())
		Expect(updates[2].Tokens).To(Equal(3605))
	})

	It("defaults the update type", func() {
		stream := summarizer.NewStream(stringsReader(`update:{"output_text":"x"}` + "\n"))
		u, err := stream.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Type).To(Equal("update"))
		Expect(u.IsFinal()).To(BeFalse())
	})

	It("yields an update as soon as its line arrives", func() {
		pr, pw := io.Pipe()
		DeferCleanup(pw.Close)
		stream := summarizer.NewStream(pr)

		go func() {
			_, _ = pw.Write([]byte(`update:{"output_text":"x","output_data":{"status":"generating"}}` + "\n"))
		}()

		updates := make(chan *summarizer.Update, 1)
		go func() {
			defer GinkgoRecover()
			u, err := stream.Next()
			Expect(err).NotTo(HaveOccurred())
			updates <- u
		}()

		var u *summarizer.Update
		Eventually(updates).Should(Receive(&u))
		Expect(u.OutputText).To(Equal("x"))
		Expect(u.Status).To(Equal("generating"))
	})
})
