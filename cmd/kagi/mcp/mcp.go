// Package mcpcmder provides the mcp command, which serves the Kagi
// capabilities as MCP tools over stdio.
package mcpcmder

import (
	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/api/mcp"
	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	"github.com/papercomputeco/kagi/pkg/config"
	"github.com/papercomputeco/kagi/pkg/proofread"
)

const mcpLongDesc string = `Serve Kagi search, summarize, ask, and proofread as MCP tools over stdio.

Point an MCP client at this command to let an agent use Kagi with your
session. Tool defaults come from config.toml; tool arguments override them.

Example client entry:
  {"command": "kagi", "args": ["mcp"]}`

const mcpShortDesc string = "Serve Kagi as MCP tools over stdio"

func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: mcpShortDesc,
		Long:  mcpLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, closeLog, err := NewServer(cmd)
			if err != nil {
				return err
			}
			defer closeLog() //nolint:errcheck // best effort on exit
			return server.RunStdio(cmd.Context())
		},
	}

	cmdenv.AddLogFileFlag(cmd)

	return cmd
}

// NewServer builds the MCP server from the merged config and session of cmd.
// Stdout carries the protocol, so logs go to stderr and, with --log-file, to
// a JSON log file closed by the returned func.
func NewServer(cmd *cobra.Command) (*mcp.Server, func() error, error) {
	env, err := cmdenv.Load(cmd)
	if err != nil {
		return nil, nil, err
	}

	closeLog, err := env.OpenLogFile(cmd)
	if err != nil {
		return nil, nil, err
	}

	client, err := env.Client(cmd)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	server, err := mcp.NewServer(mcp.Config{
		Client:   client,
		Defaults: Defaults(env.Config),
		Logger:   env.Logger,
	})
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}
	return server, closeLog, nil
}

// Defaults maps the config.toml sections onto tool defaults.
func Defaults(cfg *config.Config) mcp.Defaults {
	return mcp.Defaults{
		Proofread: proofread.Options{
			SourceLang:      cfg.Proofread.SourceLang,
			WritingStyle:    cfg.Proofread.WritingStyle,
			CorrectionLevel: cfg.Proofread.CorrectionLevel,
			Formality:       cfg.Proofread.Formality,
			Model:           cfg.Proofread.Model,
		},
		SummaryType:     cfg.Summarize.SummaryType,
		AssistantModel:  cfg.Assistant.Model,
		DisableInternet: !cfg.Assistant.InternetAccess,
	}
}
