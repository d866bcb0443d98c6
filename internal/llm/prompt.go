package llm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

const systemPrompt = "You brief marketing operators on campaign drafts. You never change budgets or settings; you only describe what the report contains."

// BuildPrompt constructs the default operator brief prompt
func BuildPrompt(report model.Report, allowedFigures []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are briefing an operator on campaign drafts assembled from an intake form. The drafts are final; your brief never alters them.

RULES:
1. Only quote money amounts from this list:
%s

2. Do not invent platforms, dates, audiences or amounts that are not in the report.
3. Call out every warning that needs a human decision before submission.
4. Keep it to one short paragraph followed by at most five bullet points.

Report:
- Source: %s
- Readiness Index: %d/100 (%s confidence)
- Budget: %s %s
- Allocation Groups: %d
- Drafts: %s

Drafts:
`, joinFigures(allowedFigures), report.Source, report.Score.Index, report.Score.Confidence,
		model.FormatMoney(report.Allocation.Budget.TotalAmount, report.Allocation.Budget.Currency),
		strings.ToLower(string(report.Allocation.Budget.Period)), report.Allocation.GroupCount, draftPlatforms(report.Drafts))

	for _, d := range report.Drafts {
		fmt.Fprintf(&b, "- %s: %q, objective %s, %s, %d warning(s)\n",
			d.Platform.DisplayName(), d.Name, d.CampaignType, model.FormatMoney(d.Budget.Amount, d.Budget.Currency), len(d.Warnings))
		for i, w := range d.Warnings {
			if i >= 5 {
				fmt.Fprintf(&b, "  - ... and %d more\n", len(d.Warnings)-5)
				break
			}
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	b.WriteString("\nKey Signals:\n")
	for i, signal := range report.Score.Signals {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", signal.Type, signal.Description)
	}

	b.WriteString("\nWrite the operator brief now.")
	return b.String()
}

// AllowedFigures lists every money amount that appears in the report
func AllowedFigures(report model.Report) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(amount float64, currency string) {
		s := model.FormatMoney(amount, currency)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	add(report.Allocation.Budget.TotalAmount, report.Allocation.Budget.Currency)
	for _, share := range report.Allocation.Shares {
		add(share.Amount, report.Allocation.Budget.Currency)
	}
	for _, d := range report.Drafts {
		add(d.Budget.Amount, d.Budget.Currency)
		if d.Validation.MinimumRequired > 0 {
			add(d.Validation.MinimumRequired, d.Validation.Currency)
		}
		if s := d.Validation.Shortfall(); s > 0 {
			add(s, d.Validation.Currency)
		}
	}
	return out
}

// figurePattern matches amounts written with a currency symbol or code
var figurePattern = regexp.MustCompile(`(?:CA\$|A\$|[$£€]|\b[A-Z]{3} )\d[\d,]*(?:\.\d{1,2})?`)

// extractFigures returns distinct money amounts quoted in text
func extractFigures(text string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, m := range figurePattern.FindAllString(text, -1) {
		m = strings.ReplaceAll(m, ",", "")
		if !strings.Contains(m, ".") {
			m += ".00"
		}
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}

// Helper functions

func joinFigures(figures []string) string {
	if len(figures) == 0 {
		return "(No amounts available)"
	}
	var b strings.Builder
	for i, f := range figures {
		if i >= 20 {
			fmt.Fprintf(&b, "\n... and %d more amounts", len(figures)-20)
			break
		}
		fmt.Fprintf(&b, "\n- %s", f)
	}
	return b.String()
}

func draftPlatforms(drafts []model.CampaignDraft) string {
	if len(drafts) == 0 {
		return "none"
	}
	names := make([]string, len(drafts))
	for i, d := range drafts {
		names[i] = d.Platform.DisplayName()
	}
	return strings.Join(names, ", ")
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
