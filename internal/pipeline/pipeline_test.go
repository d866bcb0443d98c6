package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/campaignkit/internal/model"
)

const briefBody = `New response from the campaign intake form

Campaign name: Spring Launch
Campaign objective: Generate leads
Start date: 2026-03-01
End date: 2026-03-31
Target countries: UK
Target age range: 25-54
Language: English
Which channels would you like to use?: Facebook, LinkedIn, Google Search
Total budget: £900
`

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.HTTP.RespectRobots = false
	return NewPipeline(cfg, nil)
}

func TestPipeline_Process(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.Process(context.Background(), "brief.txt", briefBody, model.Selection{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if report.ID == "" {
		t.Error("Expected report ID")
	}
	if report.ProcessedAt.IsZero() {
		t.Error("Expected processed timestamp")
	}
	if report.Submission.Format != "labelled-lines" {
		t.Errorf("Expected labelled-lines format, got %q", report.Submission.Format)
	}
	if report.Allocation.GroupCount != 3 {
		t.Errorf("Expected 3 groups, got %d", report.Allocation.GroupCount)
	}
	if len(report.Drafts) != 3 {
		t.Fatalf("Expected 3 drafts, got %d", len(report.Drafts))
	}

	var sum float64
	for _, d := range report.Drafts {
		if d.Budget.Decimal != "300.00" || d.Budget.Currency != "GBP" {
			t.Errorf("%s: expected 300.00 GBP, got %s %s", d.Platform, d.Budget.Decimal, d.Budget.Currency)
		}
		sum += d.Budget.Amount
	}
	if sum != 900 {
		t.Errorf("Expected drafts to sum to 900, got %v", sum)
	}

	linkedin, ok := report.Draft(model.PlatformLinkedIn)
	if !ok {
		t.Fatal("Expected LinkedIn draft")
	}
	if linkedin.Locale == nil || linkedin.Locale.Locale != "en_US" || !linkedin.Locale.Corrected {
		t.Errorf("Expected corrected en_US locale, got %+v", linkedin.Locale)
	}

	if report.Score.Index <= 0 || report.Score.Index > 100 {
		t.Errorf("Expected index in 1..100, got %d", report.Score.Index)
	}
	if report.LLM != nil {
		t.Error("Expected no LLM brief without a provider")
	}
}

func TestPipeline_Process_Selection(t *testing.T) {
	p := newTestPipeline(t)

	selection := model.Selection{
		Platforms: []model.Platform{model.PlatformMeta},
		Overrides: map[model.Platform]model.Overrides{
			model.PlatformMeta: {model.FieldName: "Locked name"},
		},
	}

	report, err := p.Process(context.Background(), "brief.txt", briefBody, selection)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(report.Drafts) != 1 || report.Drafts[0].Platform != model.PlatformMeta {
		t.Fatalf("Expected only the Meta draft, got %d drafts", len(report.Drafts))
	}
	if report.Drafts[0].Name != "Locked name" {
		t.Errorf("Expected override to win, got %q", report.Drafts[0].Name)
	}
	// Selection narrows drafts but not the split
	if report.Drafts[0].Budget.Amount != 300 {
		t.Errorf("Expected 300, got %v", report.Drafts[0].Budget.Amount)
	}
}

func TestPipeline_Process_EmptyBody(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.Process(context.Background(), "empty", "", model.Selection{})
	if err != nil {
		t.Fatalf("Expected empty body to degrade, got %v", err)
	}
	if len(report.Submission.FormData) != 0 {
		t.Errorf("Expected no form data, got %d pairs", len(report.Submission.FormData))
	}
	if len(report.Drafts) != 0 {
		t.Errorf("Expected no drafts, got %d", len(report.Drafts))
	}
	if report.Allocation.Shares == nil {
		t.Error("Expected non-nil shares")
	}
}

func TestPipeline_Process_Cancelled(t *testing.T) {
	p := newTestPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Process(ctx, "brief.txt", briefBody, model.Selection{}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestPipeline_ProcessSource_File(t *testing.T) {
	p := newTestPipeline(t)

	path := filepath.Join(t.TempDir(), "brief.txt")
	if err := os.WriteFile(path, []byte(briefBody), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	report, err := p.ProcessSource(context.Background(), path, model.Selection{})
	if err != nil {
		t.Fatalf("ProcessSource failed: %v", err)
	}
	if report.Source != path {
		t.Errorf("Expected source %s, got %s", path, report.Source)
	}

	if _, err := p.ProcessSource(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), model.Selection{}); err == nil {
		t.Error("Expected error for missing source")
	}
}

func TestPipeline_RenderReport(t *testing.T) {
	p := newTestPipeline(t)
	var out, progress bytes.Buffer
	p.Renderer().SetOutput(&out, &progress)

	report, err := p.Process(context.Background(), "brief.txt", briefBody, model.Selection{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "report.json")
	mdPath := filepath.Join(dir, "out", "report.md")

	if err := p.RenderReport(report, jsonPath, mdPath, true); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["id"] != report.ID {
		t.Errorf("Expected id %s in JSON, got %v", report.ID, decoded["id"])
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"# Campaign Drafts", "## LinkedIn", "£300.00", "Nothing was submitted"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}

	if !strings.Contains(progress.String(), "✓ Wrote JSON") {
		t.Errorf("Expected progress lines, got %q", progress.String())
	}
	if !strings.Contains(out.String(), "Readiness:") {
		t.Errorf("Expected summary output, got %q", out.String())
	}
}
