package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/campaignkit/internal/budget"
	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/draft"
	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/llm"
	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/ppiankov/campaignkit/internal/score"
)

// Pipeline orchestrates the complete draft process
type Pipeline struct {
	fetcher    *Fetcher
	parser     *extract.FormParser
	assembler  *draft.Assembler
	scorer     *score.Scorer
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	logger     *slog.Logger
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration. A nil
// logger discards log output.
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
		if err != nil {
			logger.Warn("LLM provider disabled", "provider", cfg.LLM.Provider, "error", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		fetcher:    NewFetcher(cfg.HTTP),
		parser:     extract.NewFormParser(),
		assembler:  draft.NewAssembler(cfg.Engine),
		scorer:     score.NewScorer(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		logger:     logger,
		config:     cfg,
	}
}

// Assembler returns the draft assembler
func (p *Pipeline) Assembler() *draft.Assembler {
	return p.assembler
}

// Parse converts a raw body into a submission
func (p *Pipeline) Parse(body string) model.Submission {
	return p.parser.Parse(body)
}

// Plan derives the allocation plan for a submission
func (p *Pipeline) Plan(sub model.Submission) model.AllocationPlan {
	return budget.BuildPlan(p.assembler.Allocator().Spec(sub.FormData), classify.DetectPlatforms(sub.FormData))
}

// ProcessSource loads source (file, URL or "-") and processes it
func (p *Pipeline) ProcessSource(ctx context.Context, source string, selection model.Selection) (*model.Report, error) {
	fetched, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return p.Process(ctx, fetched.Source, fetched.Body, selection)
}

// Process runs one raw intake body through parsing, classification,
// allocation, assembly and scoring. The engine stages never fail; an error
// means ctx was cancelled.
func (p *Pipeline) Process(ctx context.Context, source, body string, selection model.Selection) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	// 1. Parse
	sub := p.parser.Parse(body)

	// 2. Classify and plan the split
	detection := classify.DetectPlatforms(sub.FormData)
	plan := budget.BuildPlan(p.assembler.Allocator().Spec(sub.FormData), detection)

	// 3. Assemble drafts
	drafts := p.assembler.AssembleAll(sub, selection)

	// 4. Score readiness
	scoreResult := p.scorer.Calculate(drafts, plan)

	report := &model.Report{
		ID:          uuid.NewString(),
		Source:      source,
		ProcessedAt: time.Now().UTC(),
		Submission:  sub,
		Detection:   detection,
		Allocation:  plan,
		Drafts:      drafts,
		Score:       scoreResult,
	}

	p.logger.Debug("submission processed",
		"report_id", report.ID,
		"source", source,
		"format", sub.Format,
		"pairs", len(sub.FormData),
		"drafts", len(drafts),
		"index", scoreResult.Index,
		"duration", time.Since(start))

	// 5. Operator brief, after everything else is final
	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			p.logger.Warn("LLM brief failed", "report_id", report.ID, "error", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// RenderReport writes the report to the requested outputs and prints the
// summary to the renderer's writer
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			p.renderer.Progress("✓ Wrote JSON: %s", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			p.renderer.Progress("✓ Wrote Markdown: %s", mdPath)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmMdPath); err != nil {
			p.logger.Warn("failed to write operator brief", "path", llmMdPath, "error", err)
		} else if verbose {
			p.renderer.Progress("✓ Wrote Operator Brief: %s", llmMdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}

// Renderer returns the report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}
