package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

// Renderer writes reports as JSON, markdown and a terminal summary
type Renderer struct {
	includeFooter bool
	out           io.Writer // Summary
	progress      io.Writer // ✓ lines
}

// NewRenderer creates a renderer printing to stdout and stderr
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		out:           os.Stdout,
		progress:      os.Stderr,
	}
}

// SetOutput redirects the summary and progress writers
func (r *Renderer) SetOutput(out, progress io.Writer) {
	r.out = out
	r.progress = progress
}

// Progress prints one progress line
func (r *Renderer) Progress(format string, args ...interface{}) {
	fmt.Fprintf(r.progress, format+"\n", args...)
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	md, err := r.Markdown(report)
	if err != nil {
		return err
	}
	return writeFile(path, []byte(md))
}

// RenderLLMMarkdown writes an already rendered operator brief
func (r *Renderer) RenderLLMMarkdown(content, path string) error {
	if content == "" {
		return nil
	}
	return writeFile(path, []byte(content))
}

// Markdown renders the report as markdown
func (r *Renderer) Markdown(report *model.Report) (string, error) {
	var b strings.Builder

	b.WriteString("# Campaign Drafts\n\n")
	fmt.Fprintf(&b, "- **Source:** %s\n", report.Source)
	fmt.Fprintf(&b, "- **Report ID:** %s\n", report.ID)
	fmt.Fprintf(&b, "- **Processed:** %s\n", report.ProcessedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Form layout:** %s (%d fields)\n", formatOrNone(report.Submission.Format), len(report.Submission.FormData))
	fmt.Fprintf(&b, "- **Readiness:** %d/100 (%s confidence)\n\n", report.Score.Index, report.Score.Confidence)

	b.WriteString("## Budget\n\n")
	spec := report.Allocation.Budget
	fmt.Fprintf(&b, "Total %s %s", model.FormatMoney(spec.TotalAmount, spec.Currency), strings.ToLower(string(spec.Period)))
	if spec.Source != "" {
		fmt.Fprintf(&b, " (from %q)", spec.Source)
	}
	fmt.Fprintf(&b, ", split across %d group(s).\n\n", report.Allocation.GroupCount)

	if len(report.Allocation.Shares) > 0 {
		b.WriteString("| Group | Platform | Share | Minor units |\n")
		b.WriteString("|-------|----------|-------|-------------|\n")
		for _, s := range report.Allocation.Shares {
			platform := s.Platform.DisplayName()
			if s.Platform == "" {
				platform = "_unsupported_"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", s.Group, platform, model.FormatMoney(s.Amount, spec.Currency), s.MinorUnits)
		}
		b.WriteString("\n")
	}
	if report.Allocation.DriftCents != 0 {
		fmt.Fprintf(&b, "Rounding drift: %+d cents.\n\n", report.Allocation.DriftCents)
	}

	if len(report.Drafts) == 0 {
		b.WriteString("## Drafts\n\nNo platforms were requested or selected.\n\n")
	}

	for _, d := range report.Drafts {
		fmt.Fprintf(&b, "## %s\n\n", d.Platform.DisplayName())
		fmt.Fprintf(&b, "- **Name:** %s\n", d.Name)
		fmt.Fprintf(&b, "- **Objective:** %s (%s)\n", d.Objective, d.CampaignType)
		fmt.Fprintf(&b, "- **Schedule:** %s to %s\n", orDash(d.Schedule.StartDate), orDash(d.Schedule.EndDate))
		fmt.Fprintf(&b, "- **Countries:** %s\n", orDash(strings.Join(d.Targeting.Countries, ", ")))
		if !d.Targeting.Age.IsEmpty() {
			fmt.Fprintf(&b, "- **Age:** %d-%d\n", d.Targeting.Age.Min, d.Targeting.Age.Max)
		}
		fmt.Fprintf(&b, "- **Budget:** %s %s (native %v)\n",
			model.FormatMoney(d.Budget.Amount, d.Budget.Currency), strings.ToLower(string(d.Budget.Period)), d.Budget.Native())
		fmt.Fprintf(&b, "- **Minimum spend:** %s\n", d.Validation.Message)
		if d.Locale != nil {
			fmt.Fprintf(&b, "- **Locale:** %s\n", d.Locale.Locale)
		}
		fmt.Fprintf(&b, "- **Populated:** %s\n", orDash(strings.Join(d.PopulatedFields, ", ")))
		if len(d.Overridden) > 0 {
			fmt.Fprintf(&b, "- **Overridden:** %s\n", strings.Join(d.Overridden, ", "))
		}

		if len(d.Warnings) > 0 {
			b.WriteString("\n**Warnings:**\n\n")
			for _, w := range d.Warnings {
				fmt.Fprintf(&b, "- %s\n", w)
			}
		}

		params, err := json.MarshalIndent(d.Params, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal %s params: %w", d.Platform, err)
		}
		fmt.Fprintf(&b, "\n```json\n%s\n```\n\n", params)
	}

	if len(report.Score.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, s := range report.Score.Signals {
			fmt.Fprintf(&b, "- **%s** [%s] %s\n", s.Type, s.Severity, s.Description)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n_Drafts are proposals. Nothing was submitted to any ad platform._\n")
	}

	return b.String(), nil
}

// RenderSummary prints a short summary
func (r *Renderer) RenderSummary(report *model.Report) {
	spec := report.Allocation.Budget
	fmt.Fprintf(r.out, "\n%s\n", report.Source)
	fmt.Fprintf(r.out, "  Readiness: %d/100 (%s)\n", report.Score.Index, report.Score.Confidence)
	fmt.Fprintf(r.out, "  Budget:    %s %s across %d group(s)\n",
		model.FormatMoney(spec.TotalAmount, spec.Currency), strings.ToLower(string(spec.Period)), report.Allocation.GroupCount)

	for _, d := range report.Drafts {
		status := "✓"
		if !d.Validation.IsValid || len(d.Warnings) > 0 {
			status = "!"
		}
		fmt.Fprintf(r.out, "  %s %-9s %-12s %d field(s), %d warning(s)\n",
			status, d.Platform.DisplayName(), model.FormatMoney(d.Budget.Amount, d.Budget.Currency),
			len(d.PopulatedFields), len(d.Warnings))
	}
	if len(report.Drafts) == 0 {
		fmt.Fprintln(r.out, "  No drafts: no platforms requested")
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatOrNone(format string) string {
	if format == "" {
		return "unrecognised"
	}
	return format
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
