// Package servecmder provides the serve command, which runs the kagi HTTP API.
package servecmder

import (
	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/api"
	"github.com/papercomputeco/kagi/api/mcp"
	"github.com/papercomputeco/kagi/cmd/kagi/cmdenv"
	mcpcmder "github.com/papercomputeco/kagi/cmd/kagi/mcp"
)

type serveCommander struct {
	listen string
	noMCP  bool
}

const serveLongDesc string = `Run the kagi HTTP API with your Kagi session.

Endpoints:
  GET  /ping
  GET  /v1/search?q=<query>[&all=true|&batch=N]
  GET  /v1/summarize?url=<url>[&summary_type=takeaway|summary]
  POST /v1/ask          {"prompt": "...", "model": "...", "thread_id": "...", "no_internet": false}
  POST /v1/proofread    {"text": "...", "writing_style": "...", ...}
  *    /mcp             MCP streamable HTTP endpoint (disable with --no-mcp)

Defaults for omitted options come from config.toml.`

const serveShortDesc string = "Run the kagi HTTP API"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", ":8081", "Address for the API server to listen on")
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Do not mount the MCP endpoint at /mcp")
	cmdenv.AddLogFileFlag(cmd)

	return cmd
}

func (c *serveCommander) run(cmd *cobra.Command) error {
	env, err := cmdenv.Load(cmd)
	if err != nil {
		return err
	}

	closeLog, err := env.OpenLogFile(cmd)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // best effort on exit

	server, err := c.newServer(cmd, env)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
		return server.Shutdown()
	}
}

func (c *serveCommander) newServer(cmd *cobra.Command, env *cmdenv.Env) (*api.Server, error) {
	client, err := env.Client(cmd)
	if err != nil {
		return nil, err
	}

	config := api.Config{
		ListenAddr: c.listen,
		Client:     client,
		Defaults:   mcpcmder.Defaults(env.Config),
	}

	if !c.noMCP {
		config.MCP, err = mcp.NewServer(mcp.Config{
			Client:   client,
			Defaults: config.Defaults,
			Logger:   env.Logger,
		})
		if err != nil {
			return nil, err
		}
	}

	return api.NewServer(config, env.Logger)
}
