package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/summarizer"
)

// Config represents the persistent kagi configuration stored as config.toml
// in the .kagi/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Client    ClientConfig    `toml:"client"`
	Proofread ProofreadConfig `toml:"proofread"`
	Summarize SummarizeConfig `toml:"summarize"`
	Assistant AssistantConfig `toml:"assistant"`
	Output    OutputConfig    `toml:"output"`
}

// ClientConfig holds transport settings shared by every command.
// Timeouts are Go duration strings (e.g. "10s", "5m").
type ClientConfig struct {
	ConnectTimeout string `toml:"connect_timeout,omitempty"`
	ReadTimeout    string `toml:"read_timeout,omitempty"`
	UserAgent      string `toml:"user_agent,omitempty"`
	KagiURL        string `toml:"kagi_url,omitempty"`
	TranslateURL   string `toml:"translate_url,omitempty"`
}

// ProofreadConfig holds the defaults for "kagi proofread".
type ProofreadConfig struct {
	SourceLang      string `toml:"source_lang,omitempty"`
	WritingStyle    string `toml:"writing_style,omitempty"`
	CorrectionLevel string `toml:"correction_level,omitempty"`
	Formality       string `toml:"formality,omitempty"`
	Model           string `toml:"model,omitempty"`
}

// SummarizeConfig holds the defaults for "kagi summarize".
type SummarizeConfig struct {
	SummaryType string `toml:"summary_type,omitempty"`
}

// AssistantConfig holds the defaults for "kagi ask".
type AssistantConfig struct {
	Model          string `toml:"model,omitempty"`
	InternetAccess bool   `toml:"internet_access"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format string `toml:"format,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func setDuration(key string, target *string) func(c *Config, v string) error {
	return func(_ *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid value for %s: must be positive", key)
		}
		*target = v
		return nil
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.connect_timeout": {
		get: func(c *Config) string { return c.Client.ConnectTimeout },
		set: func(c *Config, v string) error {
			return setDuration("client.connect_timeout", &c.Client.ConnectTimeout)(c, v)
		},
	},
	"client.read_timeout": {
		get: func(c *Config) string { return c.Client.ReadTimeout },
		set: func(c *Config, v string) error {
			return setDuration("client.read_timeout", &c.Client.ReadTimeout)(c, v)
		},
	},
	"client.user_agent": {
		get: func(c *Config) string { return c.Client.UserAgent },
		set: func(c *Config, v string) error { c.Client.UserAgent = v; return nil },
	},
	"client.kagi_url": {
		get: func(c *Config) string { return c.Client.KagiURL },
		set: func(c *Config, v string) error { c.Client.KagiURL = v; return nil },
	},
	"client.translate_url": {
		get: func(c *Config) string { return c.Client.TranslateURL },
		set: func(c *Config, v string) error { c.Client.TranslateURL = v; return nil },
	},
	"proofread.source_lang": {
		get: func(c *Config) string { return c.Proofread.SourceLang },
		set: func(c *Config, v string) error { c.Proofread.SourceLang = v; return nil },
	},
	"proofread.writing_style": {
		get: func(c *Config) string { return c.Proofread.WritingStyle },
		set: func(c *Config, v string) error { c.Proofread.WritingStyle = v; return nil },
	},
	"proofread.correction_level": {
		get: func(c *Config) string { return c.Proofread.CorrectionLevel },
		set: func(c *Config, v string) error { c.Proofread.CorrectionLevel = v; return nil },
	},
	"proofread.formality": {
		get: func(c *Config) string { return c.Proofread.Formality },
		set: func(c *Config, v string) error { c.Proofread.Formality = v; return nil },
	},
	"proofread.model": {
		get: func(c *Config) string { return c.Proofread.Model },
		set: func(c *Config, v string) error { c.Proofread.Model = v; return nil },
	},
	"summarize.summary_type": {
		get: func(c *Config) string { return c.Summarize.SummaryType },
		set: func(c *Config, v string) error {
			if v != summarizer.TypeTakeaway && v != summarizer.TypeSummary {
				return fmt.Errorf("invalid value for summarize.summary_type: %q (want %s or %s)",
					v, summarizer.TypeTakeaway, summarizer.TypeSummary)
			}
			c.Summarize.SummaryType = v
			return nil
		},
	},
	"assistant.model": {
		get: func(c *Config) string { return c.Assistant.Model },
		set: func(c *Config, v string) error { c.Assistant.Model = v; return nil },
	},
	"assistant.internet_access": {
		get: func(c *Config) string { return strconv.FormatBool(c.Assistant.InternetAccess) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for assistant.internet_access: %w", err)
			}
			c.Assistant.InternetAccess = b
			return nil
		},
	},
	"output.format": {
		get: func(c *Config) string { return c.Output.Format },
		set: func(c *Config, v string) error {
			f, err := format.Parse(v)
			if err != nil {
				return fmt.Errorf("invalid value for output.format: %w", err)
			}
			c.Output.Format = f.String()
			return nil
		},
	},
}
