package adapters

import (
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

// minColumnGap is the number of consecutive spaces that separates two columns
const minColumnGap = 3

// FixedWidthAdapter is the fallback for plain-text digests: a header line of
// questions laid out in columns and a line of answers under them.
type FixedWidthAdapter struct{}

// NewFixedWidthAdapter creates the fallback adapter
func NewFixedWidthAdapter() *FixedWidthAdapter {
	return &FixedWidthAdapter{}
}

// Name returns the adapter name
func (a *FixedWidthAdapter) Name() string {
	return "fixed-width"
}

// CanHandle always returns true (fallback adapter)
func (a *FixedWidthAdapter) CanHandle(body string) bool {
	return true
}

// Parse uses the first two non-blank lines as the question and answer lines
func (a *FixedWidthAdapter) Parse(body string) ([]model.QAPair, error) {
	lines := nonBlankLines(body)
	if len(lines) < 2 {
		return []model.QAPair{}, nil
	}

	// Columns line up by character, not by byte
	questionLine, answerLine := []rune(lines[0]), []rune(lines[1])

	spans := ColumnSpans(lines[0])
	var pairs []model.QAPair
	for i, span := range spans {
		question := strings.TrimSpace(string(questionLine[span.Start:span.End]))
		if question == "" {
			continue
		}

		// An answer may be wider than its question, up to the next column
		end := len(answerLine)
		if !span.Last {
			end = spans[i+1].Start
		}
		pairs = append(pairs, model.QAPair{
			Question: question,
			Answer:   strings.TrimSpace(clampSlice(answerLine, span.Start, end)),
		})
	}

	return pairs, nil
}

// Span is a half-open rune range of one column
type Span struct {
	Start int
	End   int
	Last  bool
}

// ColumnSpans splits a header line at runs of minColumnGap or more spaces
func ColumnSpans(s string) []Span {
	line := []rune(s)
	var spans []Span
	start := 0
	i := 0
	for i < len(line) {
		if line[i] != ' ' {
			i++
			continue
		}
		j := i
		for j < len(line) && line[j] == ' ' {
			j++
		}
		if j-i >= minColumnGap && j < len(line) {
			if i > start {
				spans = append(spans, Span{Start: start, End: i})
			}
			start = j
		}
		i = j
	}
	if start < len(line) {
		spans = append(spans, Span{Start: start, End: len(line)})
	}
	if len(spans) > 0 {
		spans[len(spans)-1].Last = true
	}
	return spans
}

func clampSlice(s []rune, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	if end <= start {
		return ""
	}
	return string(s[start:end])
}

func nonBlankLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
