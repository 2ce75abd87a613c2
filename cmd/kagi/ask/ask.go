// Package askcmder provides the ask command for prompting Kagi Assistant.
package askcmder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/cliui"
	"github.com/papercomputeco/kagi/pkg/config"
	"github.com/papercomputeco/kagi/pkg/dotdir"
	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/htmltext"
	"github.com/papercomputeco/kagi/pkg/kagi"
)

const askLongDesc string = `Ask Kagi Assistant a question.

The prompt is passed as the only argument, or read from stdin when the
argument is "-". Every answered prompt records its thread in
.kagi/thread.json so a follow-up can continue it with --continue.

Examples:
  kagi ask "What changed in Go 1.22 loop variables?"
  kagi ask --continue "Show an example"
  kagi ask --model claude-4-sonnet --no-internet - < question.txt
  kagi ask -F json "Hello" | jq .response`

const askShortDesc string = "Ask Kagi Assistant a question"

var flagKeys = []string{
	config.FlagFormat,
	config.FlagAssistantModel,
	config.FlagInternetAccess,
}

type askCommander struct {
	prompt     string
	threadID   string
	cont       bool
	noInternet bool

	format, model string
	internet      bool
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <prompt|->",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmder.cont && cmder.threadID != "" {
				return errors.New("--thread and --continue are mutually exclusive")
			}

			prompt, err := cmdenv.ReadText(cmd, args[0])
			if err != nil {
				return err
			}
			cmder.prompt = prompt
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagFormat, &cmder.format)
	config.AddStringFlag(cmd, config.Flags, config.FlagAssistantModel, &cmder.model)
	config.AddBoolFlag(cmd, config.Flags, config.FlagInternetAccess, &cmder.internet)
	cmd.Flags().BoolVar(&cmder.noInternet, "no-internet", false, "Disable internet access (same as --internet=false)")
	cmd.Flags().StringVarP(&cmder.threadID, "thread", "t", "", "Thread ID to continue")
	cmd.Flags().BoolVarP(&cmder.cont, "continue", "C", false, "Continue the thread of the previous ask")

	return cmd
}

func (c *askCommander) run(cmd *cobra.Command) error {
	env, err := cmdenv.Load(cmd, flagKeys...)
	if err != nil {
		return err
	}

	client, err := env.Client(cmd)
	if err != nil {
		return err
	}

	ddm := dotdir.NewManager()
	opts := assistant.Options{
		Model:           env.Config.Assistant.Model,
		ThreadID:        c.threadID,
		DisableInternet: c.noInternet || !env.Config.Assistant.InternetAccess,
	}

	if c.cont {
		state, err := ddm.LoadThreadState(env.ConfigDir)
		if err != nil {
			return err
		}
		if state == nil {
			return errors.New("no previous thread to continue; run 'kagi ask' without --continue first")
		}
		opts.ThreadID = state.ThreadID
		env.Logger.Debug("continuing thread", "thread_id", state.ThreadID, "title", state.Title)
	}

	var result *assistant.Result
	if env.Format == format.Console {
		var answer Answer
		err = cliui.Step(cmd.ErrOrStderr(), "Asking "+opts.Model, func() error {
			var err error
			answer, result, err = Collect(cmd, client, c.prompt, opts)
			return err
		})
		if err != nil {
			return err
		}
		if err := Render(cmd.OutOrStdout(), answer, result); err != nil {
			return err
		}
	} else {
		result, err = client.Prompt(cmd.Context(), c.prompt, opts)
		if err != nil {
			return err
		}
		out, err := format.Assistant(env.Format, result)
		if err != nil {
			return err
		}
		if err := cmdenv.Write(cmd, out); err != nil {
			return err
		}
	}

	if result.Thread.ID != "" {
		state := &dotdir.ThreadState{
			ThreadID: result.Thread.ID,
			Title:    result.Thread.Title,
			Model:    opts.Model,
		}
		if err := ddm.SaveThread(state, env.ConfigDir); err != nil {
			env.Logger.Warn("could not save thread state", "error", err)
		}
	}

	return nil
}

// Answer is a reply split into the model's reasoning and the HTML after it.
type Answer struct {
	Thinking string
	HTML     string
}

// Split folds a snapshot into a. The reasoning is taken from the first
// snapshot whose <details> block has closed. Snapshots still inside an open
// block leave a unchanged.
func (a *Answer) Split(snapshot string) {
	if thinking, html, ok := htmltext.SplitThinking(snapshot); ok {
		if a.Thinking == "" {
			a.Thinking = thinking
		}
		a.HTML = html
		return
	}
	if !strings.Contains(snapshot, "<details") {
		a.HTML = snapshot
	}
}

// Collect streams a prompt and returns the split final snapshot together
// with the folded result.
func Collect(cmd *cobra.Command, client *kagi.Client, prompt string, opts assistant.Options) (Answer, *assistant.Result, error) {
	var answer Answer

	stream, err := client.PromptStream(cmd.Context(), prompt, opts)
	if err != nil {
		return answer, nil, err
	}
	defer stream.Close()

	for {
		snapshot, err := stream.Next()
		if err != nil {
			return answer, nil, err
		}
		if snapshot == "" {
			break
		}
		answer.Split(snapshot)
	}

	result, err := stream.Result()
	if err != nil {
		return answer, nil, err
	}
	return answer, result, nil
}

// Render prints the dimmed reasoning followed by the answer as rendered
// markdown. When no snapshot produced an answer the folded reply is used.
func Render(w io.Writer, a Answer, r *assistant.Result) error {
	if t := strings.TrimSpace(a.Thinking); t != "" {
		fmt.Fprintln(w, cliui.ThinkingStyle.Render(t))
		fmt.Fprintln(w)
	}

	md := htmltext.ToMarkdown(a.HTML)
	if md == "" && r != nil {
		md = format.Response(r)
	}
	if md == "" {
		return nil
	}

	rendered, err := cliui.RenderMarkdown(md)
	if err != nil {
		rendered = md
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
