package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

// Summarizer writes optional operator briefs. A brief is generated after
// drafts and scoring are final and never changes them.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer. An empty provider disables it.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces a brief for report. Provider failures come back
// as warnings on the summary rather than errors, so a report is never lost
// to an LLM outage.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	summary := &model.LLMSummary{
		Enabled:  true,
		Provider: s.provider.Name(),
		Model:    s.config.Model,
	}

	if err := s.provider.Ping(ctx); err != nil {
		summary.Enabled = false
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("LLM provider %s is not available: %v", s.provider.Name(), err))
		return summary, nil
	}

	allowed := AllowedFigures(report)
	resp, err := s.provider.Brief(ctx, BriefRequest{
		Report:         report,
		AllowedFigures: allowed,
		Model:          s.config.Model,
		MaxTokens:      s.config.MaxTokens,
	})
	if err != nil {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Brief generation failed: %v", err))
		return summary, nil
	}

	summary.SummaryMD = resp.Summary
	if resp.Model != "" {
		summary.Model = resp.Model
	}
	if resp.TokensUsed > 0 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Tokens used: %d", resp.TokensUsed))
	}

	var unknown []string
	for _, f := range resp.Figures {
		if !contains(allowed, f) {
			unknown = append(unknown, f)
		}
	}
	if len(unknown) > 0 {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("Brief quotes amounts not in the report: %s", strings.Join(unknown, ", ")))
	} else if len(resp.Figures) > 0 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Verified %d figures against the report", len(resp.Figures)))
	}

	return summary, nil
}

// RenderSeparateMarkdown renders the brief as a standalone markdown file
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Operator Brief\n\n")
	b.WriteString("> GENERATED CONTENT. Drafts, budgets and the readiness index were determined independently of this brief.\n\n")
	fmt.Fprintf(&b, "- **Provider:** %s\n", summary.Provider)
	if summary.Model != "" {
		fmt.Fprintf(&b, "- **Model:** %s\n", summary.Model)
	}
	b.WriteString("\n")

	if summary.SummaryMD == "" {
		b.WriteString("_No brief generated._\n")
	} else {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
