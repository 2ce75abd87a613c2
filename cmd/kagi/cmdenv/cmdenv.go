// Package cmdenv resolves what every kagi capability command needs before it
// runs: merged config, a logger, the output format, and a client.
package cmdenv

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/cmd/kagi/session"
	"github.com/papercomputeco/kagi/pkg/config"
	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/kagi"
	"github.com/papercomputeco/kagi/pkg/logger"
)

// Persistent flag names declared on the root command.
const (
	FlagDebug     = "debug"
	FlagConfigDir = "config-dir"
	FlagSession   = "session"
	FlagProfile   = "profile"

	// FlagLogFile is registered by the long-running commands.
	FlagLogFile = "log-file"
)

// Env is what a command needs once flags, env, and config.toml are merged.
type Env struct {
	Config    *config.Config
	Format    format.Format
	Logger    *slog.Logger
	ConfigDir string
	Debug     bool
}

// Load binds the registry flags named by flagKeys, merges them with the
// environment and config.toml, and validates the result.
func Load(cmd *cobra.Command, flagKeys ...string) (*Env, error) {
	configDir, _ := cmd.Flags().GetString(FlagConfigDir)
	debug, _ := cmd.Flags().GetBool(FlagDebug)

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, flagKeys)

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	f, err := format.Parse(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	return &Env{
		Config:    cfg,
		Format:    f,
		ConfigDir: configDir,
		Debug:     debug,
		Logger: logger.New(
			logger.WithDebug(debug),
			logger.WithPretty(true),
			logger.WithWriter(cmd.ErrOrStderr()),
		),
	}, nil
}

// AddLogFileFlag registers --log-file on cmd.
func AddLogFileFlag(cmd *cobra.Command) {
	cmd.Flags().String(FlagLogFile, "", "Also append JSON logs to this file")
}

// OpenLogFile tees e.Logger into JSON records appended to the --log-file
// path of cmd. The returned func closes the file and is a no-op when the
// flag is unset.
func (e *Env) OpenLogFile(cmd *cobra.Command) (func() error, error) {
	path, _ := cmd.Flags().GetString(FlagLogFile)
	if path == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	e.Logger = logger.Multi(e.Logger, logger.New(
		logger.WithJSON(true),
		logger.WithDebug(e.Debug),
		logger.WithSource(e.Debug),
		logger.WithWriter(f),
	))
	return f.Close, nil
}

// Client resolves the session and builds a kagi.Client from the merged
// client settings.
func (e *Env) Client(cmd *cobra.Command) (*kagi.Client, error) {
	override, _ := cmd.Flags().GetString(FlagSession)
	profile, _ := cmd.Flags().GetString(FlagProfile)

	s, src, err := session.Resolve(override, profile, e.ConfigDir)
	if err != nil {
		return nil, err
	}
	e.Logger.Debug("resolved session", "source", src, "profile", profile)

	opts := e.Config.TransportOptions()
	return kagi.New(s,
		kagi.WithEndpoints(e.Config.Endpoints()),
		kagi.WithTimeouts(opts.ConnectTimeout, opts.ReadTimeout),
		kagi.WithUserAgent(opts.UserAgent),
		kagi.WithLogger(e.Logger),
	)
}

// ReadText returns arg, or the whole of the command's stdin when arg is "-".
func ReadText(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}

	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	text := string(b)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no input received on stdin")
	}
	return text, nil
}

// Write prints s to the command's stdout. Rendered outputs that already end
// in a newline are written as-is.
func Write(cmd *cobra.Command, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(cmd.OutOrStdout(), s)
	return err
}
