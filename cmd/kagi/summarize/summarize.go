// Package summarizecmder provides the summarize command.
package summarizecmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	"github.com/papercomputeco/kagi/pkg/cliui"
	"github.com/papercomputeco/kagi/pkg/config"
	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/summarizer"
	"github.com/papercomputeco/kagi/pkg/utils"
)

const summarizeLongDesc string = `Summarize a web page or document with Kagi's Universal Summarizer.

Use --type takeaway for a bullet list of key points (the default) or
--type summary for prose paragraphs.

Examples:
  kagi summarize https://go.dev/blog/go1.22
  kagi summarize --type summary https://example.com/paper.pdf
  kagi summarize -F md https://example.com > summary.md`

const summarizeShortDesc string = "Summarize a URL"

var flagKeys = []string{
	config.FlagFormat,
	config.FlagSummaryType,
}

type summarizeCommander struct {
	url string

	format, summaryType string
}

func NewSummarizeCmd() *cobra.Command {
	cmder := &summarizeCommander{}

	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: summarizeShortDesc,
		Long:  summarizeLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.url = args[0]
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagFormat, &cmder.format)
	config.AddStringFlag(cmd, config.Flags, config.FlagSummaryType, &cmder.summaryType)

	return cmd
}

func (c *summarizeCommander) run(cmd *cobra.Command) error {
	env, err := cmdenv.Load(cmd, flagKeys...)
	if err != nil {
		return err
	}

	client, err := env.Client(cmd)
	if err != nil {
		return err
	}

	opts := summarizer.Options{SummaryType: env.Config.Summarize.SummaryType}

	var result *summarizer.Result
	call := func() error {
		var err error
		result, err = client.Summarize(cmd.Context(), c.url, opts)
		return err
	}

	if env.Format == format.Console {
		err = cliui.Step(cmd.ErrOrStderr(), "Summarizing "+utils.Truncate(c.url, 60), call)
	} else {
		err = call()
	}
	if err != nil {
		return err
	}

	if env.Format == format.Console {
		return Render(cmd.OutOrStdout(), result)
	}

	out, err := format.Summary(env.Format, result)
	if err != nil {
		return err
	}
	return cmdenv.Write(cmd, out)
}

// Render prints r for a terminal: the title, the rendered markdown, and a
// metadata table.
func Render(w io.Writer, r *summarizer.Result) error {
	body, err := cliui.RenderMarkdown(r.Markdown)
	if err != nil {
		body = r.Markdown
	}

	fmt.Fprintln(w, cliui.TitleStyle.Render(r.Title))
	fmt.Fprintln(w)
	fmt.Fprintln(w, body)

	meta := r.ResponseMetadata
	ws := r.WordStats

	rows := [][]string{{"Model", meta.Model}}
	if meta.Speed != nil {
		rows = append(rows, []string{"Speed", fmt.Sprintf("%.1f tok/s", *meta.Speed)})
	}
	rows = append(rows,
		[]string{"Tokens", fmt.Sprint(meta.Tokens)},
		[]string{"Cost", fmt.Sprintf("$%.4f", meta.Cost)},
	)
	if r.ElapsedSeconds != nil {
		rows = append(rows, []string{"Elapsed", fmt.Sprintf("%.1fs", *r.ElapsedSeconds)})
	}
	rows = append(rows,
		[]string{"Source Words", fmt.Sprint(ws.NWords)},
		[]string{"Source Pages", fmt.Sprint(ws.NPages)},
		[]string{"Time Saved", fmt.Sprintf("%ds", ws.TimeSaved)},
	)

	fmt.Fprintln(w, cliui.TitleStyle.Render("Metadata"))
	_, err = fmt.Fprintln(w, cliui.KeyValueTable(rows))
	return err
}
