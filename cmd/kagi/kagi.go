// Package kagicmder is the root of the kagi command tree.
package kagicmder

import (
	"os"

	"github.com/spf13/cobra"

	askcmder "github.com/papercomputeco/kagi/cmd/kagi/ask"
	authcmder "github.com/papercomputeco/kagi/cmd/kagi/auth"
	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	configcmder "github.com/papercomputeco/kagi/cmd/kagi/config"
	mcpcmder "github.com/papercomputeco/kagi/cmd/kagi/mcp"
	proofreadcmder "github.com/papercomputeco/kagi/cmd/kagi/proofread"
	searchcmder "github.com/papercomputeco/kagi/cmd/kagi/search"
	servecmder "github.com/papercomputeco/kagi/cmd/kagi/serve"
	summarizecmder "github.com/papercomputeco/kagi/cmd/kagi/summarize"
	versioncmder "github.com/papercomputeco/kagi/cmd/version"
	"github.com/papercomputeco/kagi/pkg/cliui"
	"github.com/papercomputeco/kagi/pkg/utils"
)

const kagiLongDesc string = `Kagi from the terminal, using your Kagi session.

Store a session once, then use any capability:
  kagi auth                       Store the session cookie of your browser
  kagi search "golang generics"   Search the web
  kagi summarize https://go.dev   Summarize a page or document
  kagi ask "what is a goroutine"  Ask Kagi Assistant
  kagi proofread "Helo world"     Proofread text
  kagi mcp                        Serve all of the above as MCP tools
  kagi serve                      Serve all of the above over HTTP

The session is taken from --session, then KAGI_SESSION, then the stored
profile. Defaults live in config.toml under the .kagi/ directory.`

const kagiShortDesc string = "Kagi search, summarizer, assistant, and proofreader"

func NewKagiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "kagi",
		Short:        kagiShortDesc,
		Long:         kagiLongDesc,
		Version:      utils.Version,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cliui.ConfigureColor(os.Stdout)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP(cmdenv.FlagDebug, "d", false, "Enable debug logging")
	cmd.PersistentFlags().String(cmdenv.FlagConfigDir, "", "Override path to .kagi/ config directory")
	cmd.PersistentFlags().String(cmdenv.FlagSession, "", "Kagi session cookie (overrides KAGI_SESSION and stored profiles)")
	cmd.PersistentFlags().StringP(cmdenv.FlagProfile, "p", "", "Stored session profile to use (default \"default\")")

	// Add subcommands
	cmd.AddCommand(proofreadcmder.NewProofreadCmd())
	cmd.AddCommand(summarizecmder.NewSummarizeCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(mcpcmder.NewMCPCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
