package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/kagi/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the KAGI_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (KAGI_OUTPUT_FORMAT, KAGI_ASSISTANT_MODEL, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("KAGI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Client
	v.SetDefault("client.connect_timeout", d.Client.ConnectTimeout)
	v.SetDefault("client.read_timeout", d.Client.ReadTimeout)
	v.SetDefault("client.user_agent", d.Client.UserAgent)
	v.SetDefault("client.kagi_url", d.Client.KagiURL)
	v.SetDefault("client.translate_url", d.Client.TranslateURL)

	// Proofread
	v.SetDefault("proofread.source_lang", d.Proofread.SourceLang)
	v.SetDefault("proofread.writing_style", d.Proofread.WritingStyle)
	v.SetDefault("proofread.correction_level", d.Proofread.CorrectionLevel)
	v.SetDefault("proofread.formality", d.Proofread.Formality)
	v.SetDefault("proofread.model", d.Proofread.Model)

	// Summarize
	v.SetDefault("summarize.summary_type", d.Summarize.SummaryType)

	// Assistant
	v.SetDefault("assistant.model", d.Assistant.Model)
	v.SetDefault("assistant.internet_access", d.Assistant.InternetAccess)

	// Output
	v.SetDefault("output.format", d.Output.Format)
}
