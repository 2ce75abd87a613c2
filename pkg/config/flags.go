package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --format
// on every capability command and "kagi mcp").
type Flag struct {
	// Name is the long flag name (e.g. "format").
	Name string

	// Shorthand is the one-letter short flag (e.g. "F"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "output.format").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddBoolFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagFormat          = "format"
	FlagConnectTimeout  = "connect-timeout"
	FlagReadTimeout     = "read-timeout"
	FlagUserAgent       = "user-agent"
	FlagSourceLang      = "lang"
	FlagWritingStyle    = "style"
	FlagCorrectionLevel = "level"
	FlagFormality       = "formality"
	FlagProofreadModel  = "proofread-model"
	FlagSummaryType     = "type"
	FlagAssistantModel  = "assistant-model"
	FlagInternetAccess  = "internet"
)

// Flags is the registry every kagi command draws its shared flags from.
var Flags = FlagSet{
	FlagFormat: {
		Name:        "format",
		Shorthand:   "F",
		ViperKey:    "output.format",
		Description: "Output format (console, json, md, csv)",
	},
	FlagConnectTimeout: {
		Name:        "connect-timeout",
		ViperKey:    "client.connect_timeout",
		Description: "Timeout for dialing and the TLS handshake",
	},
	FlagReadTimeout: {
		Name:        "read-timeout",
		ViperKey:    "client.read_timeout",
		Description: "Maximum idle time between two reads of a response",
	},
	FlagUserAgent: {
		Name:        "user-agent",
		ViperKey:    "client.user_agent",
		Description: "User-Agent header sent with every request",
	},
	FlagSourceLang: {
		Name:        "lang",
		Shorthand:   "l",
		ViperKey:    "proofread.source_lang",
		Description: "Source language code, or auto",
	},
	FlagWritingStyle: {
		Name:        "style",
		Shorthand:   "s",
		ViperKey:    "proofread.writing_style",
		Description: "Writing style (general, business, academic, casual, ...)",
	},
	FlagCorrectionLevel: {
		Name:        "level",
		ViperKey:    "proofread.correction_level",
		Description: "Correction level (light, standard, thorough)",
	},
	FlagFormality: {
		Name:        "formality",
		Shorthand:   "f",
		ViperKey:    "proofread.formality",
		Description: "Formality (default, more, less)",
	},
	FlagProofreadModel: {
		Name:        "model",
		Shorthand:   "m",
		ViperKey:    "proofread.model",
		Description: "Proofreading model",
	},
	FlagSummaryType: {
		Name:        "type",
		Shorthand:   "t",
		ViperKey:    "summarize.summary_type",
		Description: "Summary type (takeaway or summary)",
	},
	FlagAssistantModel: {
		Name:        "model",
		Shorthand:   "m",
		ViperKey:    "assistant.model",
		Description: "Assistant model",
	},
	FlagInternetAccess: {
		Name:        "internet",
		ViperKey:    "assistant.internet_access",
		Description: "Allow the assistant to search the web",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, key string, target *bool) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
