package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/campaignkit/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON      string
	outMD        string
	draftTimeout time.Duration
)

// draftCmd represents the draft command
var draftCmd = &cobra.Command{
	Use:   "draft <source>",
	Short: "Turn one form submission into campaign drafts",
	Long: `Draft reads one intake form submission and:
- Extracts question/answer pairs from the HTML table or text layout
- Detects the requested ad platforms
- Splits the budget between them and converts it to each platform's units
- Checks minimum spends and target-language locales
- Writes the drafts with a readiness score

The source may be a file path, an http(s) URL or "-" for stdin.

Example:
  campaignkit draft submission.html
  campaignkit draft submission.txt --json drafts.json --md drafts.md
  campaignkit draft - --platforms meta,linkedin --set meta.name="Spring Launch"
  campaignkit draft https://forms.example.com/r/123 --llm --llm-provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runDraft,
}

func init() {
	rootCmd.AddCommand(draftCmd)

	draftCmd.Flags().StringVar(&outJSON, "json", "drafts.json", "output JSON path")
	draftCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	draftCmd.Flags().DurationVar(&draftTimeout, "timeout", 2*time.Minute, "overall timeout")
	addEngineFlags(draftCmd)
}

func runDraft(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if err := applyEngineFlags(cmd, cfg); err != nil {
		return err
	}
	selection, err := buildSelection(platforms, overrides)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Drafting: %s\n", source)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", draftTimeout)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, newLogger(cfg.Server.LogLevel, verbose, false, os.Stderr))

	report, err := p.ProcessSource(ctx, source, selection)
	if err != nil {
		return fmt.Errorf("draft failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Parsed %d answers (%s)\n", len(report.Submission.FormData), report.Submission.Format)
		fmt.Fprintf(os.Stderr, "✓ Detected %d platform group(s)\n", report.Allocation.GroupCount)
		fmt.Fprintf(os.Stderr, "✓ Assembled %d draft(s)\n", len(report.Drafts))
		fmt.Fprintf(os.Stderr, "✓ Calculated readiness index: %d/100\n", report.Score.Index)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated operator brief using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
