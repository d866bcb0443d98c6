package model

import "time"

// Report is the complete result of running one submission through the engine
type Report struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"` // File path, URL, or "stdin"/"request"
	ProcessedAt time.Time `json:"processed_at"`

	Submission Submission        `json:"submission"`
	Detection  PlatformDetection `json:"detection"`
	Allocation AllocationPlan    `json:"allocation"`
	Drafts     []CampaignDraft   `json:"drafts"`

	Score Score `json:"score"` // Readiness index; advisory only

	LLM *LLMSummary `json:"llm,omitempty"` // Optional operator brief (never alters drafts)
}

// Draft returns the draft for p, if one was assembled
func (r *Report) Draft(p Platform) (CampaignDraft, bool) {
	for _, d := range r.Drafts {
		if d.Platform == p {
			return d, true
		}
	}
	return CampaignDraft{}, false
}

// Score represents the transparent readiness breakdown
type Score struct {
	Index      int      `json:"index"`      // Overall readiness (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Platform    Platform               `json:"platform,omitempty"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalFieldCoverage    SignalType = "field_coverage"
	SignalBudgetMinimum    SignalType = "budget_minimum"
	SignalMissingBudget    SignalType = "missing_budget"
	SignalUnsupportedGroup SignalType = "unsupported_group"
	SignalAllocationDrift  SignalType = "allocation_drift"
	SignalLocaleCorrection SignalType = "locale_correction"
	SignalCurrencyMismatch SignalType = "currency_mismatch"
	SignalNoPlatforms      SignalType = "no_platforms"
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// LLMSummary contains the optional LLM-written operator brief
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
