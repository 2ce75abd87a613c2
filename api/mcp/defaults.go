package mcp

import (
	"github.com/papercomputeco/kagi/pkg/assistant"
	"github.com/papercomputeco/kagi/pkg/proofread"
	"github.com/papercomputeco/kagi/pkg/summarizer"
)

// Defaults fill arguments the caller leaves empty.
type Defaults struct {
	Proofread       proofread.Options
	SummaryType     string
	AssistantModel  string
	DisableInternet bool
}

// ProofreadOptions overlays the non-empty fields of in on the defaults.
func (d Defaults) ProofreadOptions(in ProofreadInput) proofread.Options {
	opts := d.Proofread
	if in.SourceLang != "" {
		opts.SourceLang = in.SourceLang
	}
	if in.WritingStyle != "" {
		opts.WritingStyle = in.WritingStyle
	}
	if in.CorrectionLevel != "" {
		opts.CorrectionLevel = in.CorrectionLevel
	}
	if in.Formality != "" {
		opts.Formality = in.Formality
	}
	opts.Context = in.Context
	return opts
}

// SummarizerOptions returns the summary type of in, or the default.
func (d Defaults) SummarizerOptions(in SummarizeInput) summarizer.Options {
	summaryType := in.SummaryType
	if summaryType == "" {
		summaryType = d.SummaryType
	}
	return summarizer.Options{SummaryType: summaryType}
}

// AssistantOptions resolves model and internet access for in. Internet
// access is off when either the caller or the defaults disable it.
func (d Defaults) AssistantOptions(in AskInput) assistant.Options {
	opts := assistant.Options{
		Model:           in.Model,
		ThreadID:        in.ThreadID,
		DisableInternet: in.NoInternet || d.DisableInternet,
	}
	if opts.Model == "" {
		opts.Model = d.AssistantModel
	}
	return opts
}
