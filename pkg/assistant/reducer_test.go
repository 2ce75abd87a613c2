package assistant_test

import (
	"errors"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/kagierr"
	"github.com/papercomputeco/kagi/pkg/kstream"
)

const streamText = `hi:{"v":"202509261613.stage.699a118","trace":"abc123"}` + "\n" +
	"thread_list.html:\n" +
	`  <div class="hide-if-no-threads">content</div>` + "\n" +
	`thread.json:{"id":"thread-1","title":"Test","created_at":"2025-09-30T09:47:23Z",` +
	`"expires_at":"2025-09-30T10:47:23Z","saved":false,"shared":false,` +
	`"branch_id":"00000000-0000-4000-0000-000000000000","tag_ids":[]}` + "\n" +
	"messages.json:[]\n" +
	`new_message.json:{"id":"msg-1","created_at":"2025-09-30T09:47:23Z",` +
	`"state":"waiting","prompt":"Hello","reply":null,"md":null,` +
	`"profile":{},"citations":null,"documents":[]}` + "\n" +
	`tokens.json:{"text":"","id":"msg-1"}` + "\n" +
	`tokens.json:{"text":"<p>Hi there!</p>","id":"msg-1"}` + "\n" +
	`tokens.json:{"text":"<p>Hi there!</p>","id":"msg-1"}` + "\n" +
	`new_message.json:{"id":"msg-1","created_at":"2025-09-30T09:47:23Z",` +
	`"state":"done","prompt":"Hello","reply":"<p>Hi there!</p>",` +
	`"md":"Hi there!","profile":{},"metadata":"","citations":[],"documents":[]}` + "\n"

func parse(text string) []kstream.Line {
	lines, err := kstream.Parse(text)
	Expect(err).NotTo(HaveOccurred())
	return lines
}

func tokenLine(text string) kstream.Line {
	return kstream.Line{Tag: assistant.TagTokens, Payload: `{"text":"` + text + `","id":"msg-1"}`}
}

var _ = Describe("Reduce", func() {
	It("builds the thread and the last message", func() {
		result, err := assistant.Reduce(parse(streamText))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Thread.ID).To(Equal("thread-1"))
		Expect(result.Thread.Title).To(Equal("Test"))
		Expect(result.Thread.ExpiresAt).To(Equal("2025-09-30T10:47:23Z"))
		Expect(result.Message.ID).To(Equal("msg-1"))
		Expect(result.Message.State).To(Equal("done"))
		Expect(*result.Message.Reply).To(Equal("<p>Hi there!</p>"))
		Expect(*result.Message.MD).To(Equal("Hi there!"))
	})

	It("keeps reply and markdown absent while waiting", func() {
		text := strings.SplitAfter(streamText, "\"documents\":[]}\n")[0]
		result, err := assistant.Reduce(parse(text))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Message.State).To(Equal("waiting"))
		Expect(result.Message.Reply).To(BeNil())
		Expect(result.Message.MD).To(BeNil())
	})

	It("fails without a thread record", func() {
		_, err := assistant.Reduce([]kstream.Line{
			{Tag: assistant.TagNewMessage, Payload: `{"id":"m","state":"done"}`},
		})
		var missing *kagierr.MissingFrameError
		Expect(errors.As(err, &missing)).To(BeTrue())
		Expect(missing.Tag).To(Equal("thread.json"))
		Expect(errors.Is(err, kagierr.ErrMissingFrame)).To(BeTrue())
		Expect(errors.Is(err, kagierr.ErrAPI)).To(BeFalse())
	})

	It("fails without a message record", func() {
		_, err := assistant.Reduce([]kstream.Line{
			{Tag: assistant.TagThread, Payload: `{"id":"t","title":"x"}`},
		})
		var missing *kagierr.MissingFrameError
		Expect(errors.As(err, &missing)).To(BeTrue())
		Expect(missing.Tag).To(Equal("new_message.json"))
	})

	It("tolerates trailing data after the JSON payload", func() {
		result, err := assistant.Reduce([]kstream.Line{
			{Tag: assistant.TagThread, Payload: `{"id":"t"} trailing`},
			{Tag: assistant.TagNewMessage, Payload: `{"id":"m"}` + "\n<html>"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Thread.ID).To(Equal("t"))
		Expect(result.Message.ID).To(Equal("m"))
	})
})

var _ = Describe("SnapshotReducer", func() {
	collect := func(lines ...kstream.Line) []string {
		var r assistant.SnapshotReducer
		var out []string
		for _, l := range lines {
			if s, ok := r.Add(l); ok {
				out = append(out, s)
			}
		}
		return out
	}

	It("suppresses empty and repeated snapshots", func() {
		Expect(collect(
			tokenLine(""),
			tokenLine("<p>A</p>"),
			tokenLine("<p>A</p>"),
			tokenLine("<p>AB</p>"),
		)).To(Equal([]string{"<p>A</p>", "<p>AB</p>"}))
	})

	It("only considers tokens records", func() {
		Expect(collect(
			kstream.Line{Tag: "hi", Payload: `{"text":"nope"}`},
			tokenLine("<p>x</p>"),
		)).To(Equal([]string{"<p>x</p>"}))
	})

	It("skips undecodable token records", func() {
		Expect(collect(
			kstream.Line{Tag: assistant.TagTokens, Payload: `{"text":`},
			tokenLine("ok"),
		)).To(Equal([]string{"ok"}))
	})

	It("yields a snapshot that returns to an earlier value", func() {
		Expect(collect(tokenLine("a"), tokenLine("b"), tokenLine("a"))).To(Equal([]string{"a", "b", "a"}))
	})
})

var _ = Describe("Stream", func() {
	It("yields distinct snapshots and then the folded result", func() {
		stream := assistant.NewStream(strings.NewReader(streamText))
		defer stream.Close()

		var snapshots []string
		for {
			s, err := stream.Next()
			Expect(err).NotTo(HaveOccurred())
			if s == "" {
				break
			}
			snapshots = append(snapshots, s)
		}
		Expect(snapshots).To(Equal([]string{"<p>Hi there!</p>"}))

		result, err := stream.Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Message.State).To(Equal("done"))
	})

	It("yields each snapshot as soon as its line arrives", func() {
		pr, pw := io.Pipe()
		DeferCleanup(pw.Close)
		stream := assistant.NewStream(pr)

		snapshots := make(chan string)
		go func() {
			defer GinkgoRecover()
			for {
				s, err := stream.Next()
				if err != nil || s == "" {
					close(snapshots)
					return
				}
				snapshots <- s
			}
		}()

		write := func(line string) {
			go func() { _, _ = pw.Write([]byte(line + "\n")) }()
		}

		write(`tokens.json:{"text":"<p>A</p>","id":"m"}`)
		Eventually(snapshots).Should(Receive(Equal("<p>A</p>")))

		write(`tokens.json:{"text":"<p>AB</p>","id":"m"}`)
		Eventually(snapshots).Should(Receive(Equal("<p>AB</p>")))
	})
})
