// Package proofreadcmder provides the proofread command.
package proofreadcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	"github.com/papercomputeco/kagi/pkg/cliui"
	"github.com/papercomputeco/kagi/pkg/config"
	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/proofread"
)

const proofreadLongDesc string = `Proofread text with Kagi Translate.

The text is passed as the only argument, or read from stdin when the
argument is "-". Defaults for every option come from the [proofread]
section of config.toml.

Examples:
  kagi proofread "Their going to the store tomorow."
  kagi proofread - < draft.txt
  kagi proofread --style academic --level thorough "..."
  kagi proofread -F json "Some text" | jq .analysis.corrected_text`

const proofreadShortDesc string = "Proofread text"

var flagKeys = []string{
	config.FlagFormat,
	config.FlagSourceLang,
	config.FlagWritingStyle,
	config.FlagCorrectionLevel,
	config.FlagFormality,
	config.FlagProofreadModel,
}

type proofreadCommander struct {
	text    string
	context string

	// Registered for --help defaults; values are read back through viper.
	format, lang, style, level, formality, model string
}

func NewProofreadCmd() *cobra.Command {
	cmder := &proofreadCommander{}

	cmd := &cobra.Command{
		Use:   "proofread <text|->",
		Short: proofreadShortDesc,
		Long:  proofreadLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := cmdenv.ReadText(cmd, args[0])
			if err != nil {
				return err
			}
			cmder.text = text
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagFormat, &cmder.format)
	config.AddStringFlag(cmd, config.Flags, config.FlagSourceLang, &cmder.lang)
	config.AddStringFlag(cmd, config.Flags, config.FlagWritingStyle, &cmder.style)
	config.AddStringFlag(cmd, config.Flags, config.FlagCorrectionLevel, &cmder.level)
	config.AddStringFlag(cmd, config.Flags, config.FlagFormality, &cmder.formality)
	config.AddStringFlag(cmd, config.Flags, config.FlagProofreadModel, &cmder.model)
	cmd.Flags().StringVarP(&cmder.context, "context", "c", "", "Additional context for the proofreader")

	return cmd
}

func (c *proofreadCommander) run(cmd *cobra.Command) error {
	env, err := cmdenv.Load(cmd, flagKeys...)
	if err != nil {
		return err
	}

	client, err := env.Client(cmd)
	if err != nil {
		return err
	}

	p := env.Config.Proofread
	opts := proofread.Options{
		SourceLang:      p.SourceLang,
		WritingStyle:    p.WritingStyle,
		CorrectionLevel: p.CorrectionLevel,
		Formality:       p.Formality,
		Context:         c.context,
		Model:           p.Model,
	}

	var result *proofread.Result
	call := func() error {
		var err error
		result, err = client.Proofread(cmd.Context(), c.text, opts)
		return err
	}

	if env.Format == format.Console {
		err = cliui.Step(cmd.ErrOrStderr(), "Proofreading", call)
	} else {
		err = call()
	}
	if err != nil {
		return err
	}

	if env.Format == format.Console {
		return Render(cmd.OutOrStdout(), result)
	}

	out, err := format.Proofread(env.Format, result)
	if err != nil {
		return err
	}
	return cmdenv.Write(cmd, out)
}

// Render prints r for a terminal: the corrected text, the tone, and a
// statistics table. Without an analysis only the streamed text is shown.
func Render(w io.Writer, r *proofread.Result) error {
	if r.Analysis == nil {
		_, err := fmt.Fprintln(w, r.Text)
		return err
	}

	a := r.Analysis
	s := a.WritingStatistics

	fmt.Fprintln(w, cliui.Panel("Corrected Text", a.CorrectedText))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n\n", cliui.HeaderStyle.Render("Corrections:"), a.CorrectionsSummary)
	fmt.Fprintf(w, "%s %s -- %s\n\n", cliui.HeaderStyle.Render("Tone:"),
		a.ToneAnalysis.OverallTone, a.ToneAnalysis.Description)

	fmt.Fprintln(w, cliui.TitleStyle.Render("Writing Statistics"))
	_, err := fmt.Fprintln(w, cliui.Table([]string{"Metric", "Value"}, [][]string{
		{"Word Count", fmt.Sprint(s.WordCount)},
		{"Character Count", fmt.Sprint(s.CharacterCount)},
		{"Sentences", fmt.Sprint(s.SentenceCount)},
		{"Paragraphs", fmt.Sprint(s.ParagraphCount)},
		{"Avg Words/Sentence", fmt.Sprintf("%.1f", s.AverageWordsPerSentence)},
		{"Vocabulary Diversity", fmt.Sprintf("%.2f", s.VocabularyDiversity)},
		{"Reading Level", s.ReadingLevel},
		{"Readability Score", fmt.Sprintf("%.1f", s.ReadabilityScore)},
		{"Reading Time", fmt.Sprintf("%.1f min", s.ReadingTimeMinutes)},
	}))
	return err
}
