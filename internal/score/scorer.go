package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

// coreFields are the draft fields an operator would otherwise fill by hand
var coreFields = []string{
	"Campaign name", "Objective", "Start date", "End date", "Countries", "Budget",
}

// ageFields count as one core field when either bound is populated
var ageFields = []string{"Minimum age", "Maximum age"}

// Scorer calculates the readiness index and generates signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores how ready a set of drafts is for submission. The score is
// advisory and never blocks assembly.
func (s *Scorer) Calculate(drafts []model.CampaignDraft, plan model.AllocationPlan) model.Score {
	var signals []model.Signal

	if len(drafts) == 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalNoPlatforms,
			Severity:    model.SeverityCritical,
			Description: "No supported platform was requested or selected",
			Data: map[string]interface{}{
				"groups": plan.GroupCount,
			},
		})
	}

	// 1. Field coverage (0-60 points)
	coverageScore, coverageSignal := s.calculateCoverage(drafts)
	signals = append(signals, coverageSignal)

	// 2. Budget validity (0-30 points)
	budgetScore, budgetSignals := s.calculateBudget(drafts, plan)
	signals = append(signals, budgetSignals...)

	// 3. Locale and currency cleanliness (0-10 points)
	localeScore, localeSignals := s.calculateLocale(drafts)
	signals = append(signals, localeSignals...)

	// 4. Allocation diagnostics (no points)
	signals = append(signals, s.allocationSignals(plan)...)

	totalScore := coverageScore + budgetScore + localeScore
	if len(drafts) == 0 {
		totalScore = 0
	}

	return model.Score{
		Index:      totalScore,
		Confidence: s.determineConfidence(totalScore),
		Signals:    signals,
	}
}

// calculateCoverage scores the share of core fields populated across drafts (0-60 points)
func (s *Scorer) calculateCoverage(drafts []model.CampaignDraft) (int, model.Signal) {
	perDraft := len(coreFields) + 1
	if len(drafts) == 0 {
		return 0, model.Signal{
			Type:        model.SignalFieldCoverage,
			Severity:    model.SeverityCritical,
			Description: "No drafts to cover",
			Data:        map[string]interface{}{"drafts": 0},
		}
	}

	populated := 0
	missing := make(map[string]bool)
	for _, d := range drafts {
		have := make(map[string]bool, len(d.PopulatedFields))
		for _, f := range d.PopulatedFields {
			have[f] = true
		}
		for _, f := range coreFields {
			if have[f] {
				populated++
			} else {
				missing[f] = true
			}
		}
		if have[ageFields[0]] || have[ageFields[1]] {
			populated++
		} else {
			missing["Age range"] = true
		}
	}

	ratio := float64(populated) / float64(perDraft*len(drafts))
	score := int(math.Min(ratio*60, 60))

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 0.8 {
		severity = model.SeverityWarning
	}

	var missingList []string
	for _, f := range append(append([]string{}, coreFields...), "Age range") {
		if missing[f] {
			missingList = append(missingList, f)
		}
	}

	description := fmt.Sprintf("Field coverage: %.0f%%", ratio*100)
	if len(missingList) > 0 {
		description += " (missing: " + strings.Join(missingList, ", ") + ")"
	}

	return score, model.Signal{
		Type:        model.SignalFieldCoverage,
		Severity:    severity,
		Description: description,
		Data: map[string]interface{}{
			"drafts":    len(drafts),
			"populated": populated,
			"expected":  perDraft * len(drafts),
			"ratio":     ratio,
			"missing":   missingList,
			"score":     score,
			"formula":   "min(populated / (7 * drafts) * 60, 60)",
		},
	}
}

// calculateBudget scores drafts meeting their platform minimum (0-30 points)
func (s *Scorer) calculateBudget(drafts []model.CampaignDraft, plan model.AllocationPlan) (int, []model.Signal) {
	if plan.Budget.TotalAmount <= 0 {
		return 0, []model.Signal{{
			Type:        model.SignalMissingBudget,
			Severity:    model.SeverityCritical,
			Description: "No budget amount found in the form",
			Data: map[string]interface{}{
				"source": plan.Budget.Source,
			},
		}}
	}
	if len(drafts) == 0 {
		return 0, nil
	}

	var signals []model.Signal
	valid := 0
	for _, d := range drafts {
		if d.Validation.IsValid {
			valid++
			continue
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalBudgetMinimum,
			Severity:    model.SeverityWarning,
			Platform:    d.Platform,
			Description: d.Validation.Message,
			Data: map[string]interface{}{
				"amount":    d.Validation.Amount,
				"minimum":   d.Validation.MinimumRequired,
				"shortfall": d.Validation.Shortfall(),
				"currency":  d.Validation.Currency,
				"period":    d.Validation.Period,
			},
		})
	}

	score := int(float64(valid) / float64(len(drafts)) * 30)
	return score, signals
}

// calculateLocale deducts for LinkedIn locale corrections and currency mismatches (0-10 points)
func (s *Scorer) calculateLocale(drafts []model.CampaignDraft) (int, []model.Signal) {
	score := 10
	var signals []model.Signal

	for _, d := range drafts {
		if d.Locale != nil && d.Locale.Corrected {
			score -= 3
			signals = append(signals, model.Signal{
				Type:        model.SignalLocaleCorrection,
				Severity:    model.SeverityInfo,
				Platform:    d.Platform,
				Description: fmt.Sprintf("Locale %s replaced with %s", d.Locale.RequestedLocale, d.Locale.Locale),
				Data: map[string]interface{}{
					"requested": d.Locale.RequestedLocale,
					"locale":    d.Locale.Locale,
					"country":   d.Locale.Country,
					"penalty":   3,
				},
			})
		}
		if d.Platform == model.PlatformLinkedIn && d.Budget.Currency != "" && d.Budget.Currency != "USD" {
			score -= 5
			signals = append(signals, model.Signal{
				Type:        model.SignalCurrencyMismatch,
				Severity:    model.SeverityWarning,
				Platform:    d.Platform,
				Description: fmt.Sprintf("Budget in %s; LinkedIn ad accounts are usually USD-only", d.Budget.Currency),
				Data: map[string]interface{}{
					"currency": d.Budget.Currency,
					"penalty":  5,
				},
			})
		}
	}

	if score < 0 {
		score = 0
	}
	return score, signals
}

// allocationSignals reports groups no draft spends and cent-level rounding drift
func (s *Scorer) allocationSignals(plan model.AllocationPlan) []model.Signal {
	var signals []model.Signal

	if unsupported := plan.Unsupported(); len(unsupported) > 0 {
		groups := make([]string, len(unsupported))
		var amount float64
		for i, u := range unsupported {
			groups[i] = u.Group
			amount += u.Amount
		}
		description := fmt.Sprintf("%s of the budget is assigned to unsupported channels: %s",
			model.FormatMoney(amount, plan.Budget.Currency), strings.Join(groups, ", "))
		signals = append(signals, model.Signal{
			Type:        model.SignalUnsupportedGroup,
			Severity:    model.SeverityWarning,
			Description: description,
			Data: map[string]interface{}{
				"groups":  groups,
				"amount":  amount,
				"formula": "total / group_count per unsupported group",
			},
		})
	}

	if plan.DriftCents != 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalAllocationDrift,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Per-group cent rounding differs from the total by %d cent(s)", plan.DriftCents),
			Data: map[string]interface{}{
				"drift_cents": plan.DriftCents,
				"formula":     "sum(round(share * 100)) - round(total * 100)",
			},
		})
	}

	return signals
}

// determineConfidence determines the confidence level based on the score
func (s *Scorer) determineConfidence(score int) string {
	if score >= 80 {
		return "high"
	} else if score >= 60 {
		return "medium"
	}
	return "low"
}
