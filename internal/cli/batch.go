package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/ppiankov/campaignkit/internal/pipeline"
	"github.com/ppiankov/campaignkit/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Draft campaigns for many submissions in parallel",
	Long: `Batch processes many form submissions concurrently:
- Read sources (file paths or URLs) from the input file, one per line
- Process them with a bounded worker pool, pacing requests per host
- Write one JSON and one Markdown report per submission

A failing submission is reported and never stops the rest of the batch.

Example:
  campaignkit batch submissions.txt
  campaignkit batch submissions.txt --concurrency 8 --output-dir ./drafts
  campaignkit batch submissions.txt --platforms google,meta --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", model.DefaultConfig().Concurrency.Workers, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./campaignkit-drafts", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	addEngineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if err := applyEngineFlags(cmd, cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	selection, err := buildSelection(platforms, overrides)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  campaignkit Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, newLogger(cfg.Server.LogLevel, verbose, false, os.Stderr))
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	fmt.Fprintf(os.Stderr, "⚙️  Processing submissions with %d workers...\n\n", cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file, selection)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount, failureCount := writeBatchReports(renderer, results, outputDir, os.Stderr)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d submissions\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if successCount == 0 && failureCount > 0 {
		return fmt.Errorf("all %d submissions failed", failureCount)
	}
	return nil
}

// writeBatchReports renders each successful result and prints one status
// line per source
func writeBatchReports(renderer *pipeline.Renderer, results []*worker.DraftResult, dir string, status io.Writer) (success, failure int) {
	for _, result := range results {
		if result.Failed() {
			failure++
			fmt.Fprintf(status, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		base := filepath.Join(dir, reportBaseName(result.Index, result.Source))
		if err := renderer.RenderJSON(result.Report, base+".json"); err != nil {
			failure++
			fmt.Fprintf(status, "✗ %s: failed to write JSON: %v\n", result.Source, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, base+".md"); err != nil {
			failure++
			fmt.Fprintf(status, "✗ %s: failed to write Markdown: %v\n", result.Source, err)
			continue
		}

		success++
		fmt.Fprintf(status, "✓ %s (%d draft(s), readiness %d/100)\n", result.Source, len(result.Report.Drafts), result.Report.Score.Index)
	}
	return success, failure
}

// reportBaseName derives a unique, filesystem-safe report name from the
// source's position and its last path segment
func reportBaseName(index int, source string) string {
	name := strings.TrimRight(source, "/")
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return fmt.Sprintf("%03d-%s", index+1, sanitizeFilename(name))
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	"&", "_",
	"=", "_",
	" ", "-",
)

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(strings.TrimSpace(s))
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" || s == "." || s == ".." {
		return "submission"
	}
	return s
}
