package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

// Processor turns one submission source into a report
type Processor interface {
	ProcessSource(ctx context.Context, source string, selection model.Selection) (*model.Report, error)
}

// DraftResult is the outcome for one source
type DraftResult struct {
	Index  int
	Source string
	Report *model.Report
	Error  error
}

// Failed reports whether the source produced no report
func (r *DraftResult) Failed() bool {
	return r.Error != nil
}

// BatchProcessor processes many submission sources concurrently. A failing
// source never aborts the batch.
type BatchProcessor struct {
	processor   Processor
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. requestsPerSecond <= 0
// disables per-host pacing of URL sources.
func NewBatchProcessor(processor Processor, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	b := &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
	if requestsPerSecond > 0 {
		b.limiter = NewLimiter(requestsPerSecond, burst)
	}
	return b
}

// ProcessSources processes sources and returns results in input order
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string, selection model.Selection) []*DraftResult {
	return b.ProcessSourcesWithProgress(ctx, sources, selection, nil)
}

// ProcessSourcesWithProgress is ProcessSources with a callback invoked as
// each result completes
func (b *BatchProcessor) ProcessSourcesWithProgress(ctx context.Context, sources []string, selection model.Selection, progress func(*DraftResult)) []*DraftResult {
	if len(sources) == 0 {
		return []*DraftResult{}
	}

	pool := NewPool[*DraftResult](ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, source := range sources {
			if !pool.Go(b.draftTask(i, source, selection)) {
				return
			}
		}
	}()

	seen := make(map[int]bool, len(sources))
	results := make([]*DraftResult, 0, len(sources))
	for r := range pool.Results() {
		seen[r.Index] = true
		results = append(results, r)
		if progress != nil {
			progress(r)
		}
	}

	// Sources never started because ctx was cancelled
	for i, source := range sources {
		if !seen[i] {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("not processed")
			}
			results = append(results, &DraftResult{Index: i, Source: source, Error: err})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// draftTask waits for the source's host limiter, then processes it
func (b *BatchProcessor) draftTask(index int, source string, selection model.Selection) Task[*DraftResult] {
	return func(ctx context.Context) *DraftResult {
		result := &DraftResult{Index: index, Source: source}
		if b.limiter != nil {
			if err := b.limiter.Wait(ctx, source); err != nil {
				result.Error = fmt.Errorf("rate limit: %w", err)
				return result
			}
		}
		result.Report, result.Error = b.processor.ProcessSource(ctx, source, selection)
		return result
	}
}

// ProcessFile reads sources from a list file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, selection model.Selection) ([]*DraftResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources, selection), nil
}

// ReadSourcesFromFile reads submission sources (paths or URLs) from a file,
// one per line. Blank lines and # comments are skipped; duplicates are dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
