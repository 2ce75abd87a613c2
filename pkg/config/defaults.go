package config

import (
	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/format"
	"github.com/papercomputeco/kagi/pkg/proofread"
	"github.com/papercomputeco/kagi/pkg/summarizer"
	"github.com/papercomputeco/kagi/pkg/transport"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	opts := transport.DefaultOptions()
	endpoints := transport.DefaultEndpoints()
	pr := proofread.DefaultOptions()

	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			ConnectTimeout: opts.ConnectTimeout.String(),
			ReadTimeout:    opts.ReadTimeout.String(),
			UserAgent:      opts.UserAgent,
			KagiURL:        endpoints.Kagi,
			TranslateURL:   endpoints.Translate,
		},
		Proofread: ProofreadConfig{
			SourceLang:      pr.SourceLang,
			WritingStyle:    pr.WritingStyle,
			CorrectionLevel: pr.CorrectionLevel,
			Formality:       pr.Formality,
			Model:           pr.Model,
		},
		Summarize: SummarizeConfig{
			SummaryType: summarizer.TypeTakeaway,
		},
		Assistant: AssistantConfig{
			Model:          assistant.DefaultModel,
			InternetAccess: true,
		},
		Output: OutputConfig{
			Format: format.Console.String(),
		},
	}
}
