// Package configcmder provides the config command for managing persistent
// kagi configuration stored in the .kagi/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/kagi/pkg/cliui"
	"github.com/papercomputeco/kagi/pkg/config"
)

const configLongDesc string = `Manage persistent kagi configuration.

Configuration is stored as config.toml in the .kagi/ directory and provides
default values for command flags. CLI flags and KAGI_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  client.connect_timeout, client.read_timeout, client.user_agent,
  client.kagi_url, client.translate_url,
  proofread.source_lang, proofread.writing_style, proofread.correction_level,
  proofread.formality, proofread.model,
  summarize.summary_type,
  assistant.model, assistant.internet_access,
  output.format

Use subcommands to get, set, or list configuration values:
  kagi config set <key> <value>    Set a configuration value
  kagi config get <key>            Get a configuration value
  kagi config list                 List all configuration values

Examples:
  kagi config set output.format md
  kagi config set assistant.model claude-4-sonnet
  kagi config set client.read_timeout 10m
  kagi config get proofread.writing_style
  kagi config list`

const configShortDesc string = "Manage persistent kagi configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func checkKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func printTarget(w io.Writer, target string) {
	if target != "" {
		fmt.Fprintf(w, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
	} else {
		fmt.Fprintf(w, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
	}
}
