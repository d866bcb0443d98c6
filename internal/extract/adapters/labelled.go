package adapters

import (
	"errors"
	"regexp"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

var errNoLabels = errors.New("no labelled lines found")

var (
	// "Campaign Name: Spring Sale" or "3. Budget:"
	labelPattern = regexp.MustCompile(`^\s*(?:\d{1,2}[.)]\s+)?([^:]{2,120}?)\s*:\s*(.*)$`)
	// Leading "1. " / "2) " numbering on a question
	numberingPattern = regexp.MustCompile(`^\s*\d{1,2}[.)]\s+`)
	urlSchemePattern = regexp.MustCompile(`(?i)^\s*https?$`)
)

// LabelledLinesAdapter reads "Question: Answer" digests, where an answer
// may also continue on the lines after a bare "Question:" label.
type LabelledLinesAdapter struct{}

// NewLabelledLinesAdapter creates a new labelled-lines adapter
func NewLabelledLinesAdapter() *LabelledLinesAdapter {
	return &LabelledLinesAdapter{}
}

// Name returns the adapter name
func (a *LabelledLinesAdapter) Name() string {
	return "labelled-lines"
}

// CanHandle requires at least two label lines and a first line that is not a
// fixed-width column header
func (a *LabelledLinesAdapter) CanHandle(body string) bool {
	lines := nonBlankLines(body)
	if len(lines) < 2 {
		return false
	}
	if len(ColumnSpans(lines[0])) > 1 {
		return false
	}

	labels := 0
	for _, line := range lines {
		if _, _, ok := splitLabel(line); ok {
			labels++
		}
	}
	return labels >= 2
}

// Parse collects pairs in document order
func (a *LabelledLinesAdapter) Parse(body string) ([]model.QAPair, error) {
	var pairs []model.QAPair
	var current *model.QAPair

	flush := func() {
		if current != nil {
			current.Answer = strings.TrimSpace(current.Answer)
			pairs = append(pairs, *current)
			current = nil
		}
	}

	for _, line := range nonBlankLines(body) {
		if question, answer, ok := splitLabel(line); ok {
			flush()
			current = &model.QAPair{Question: question, Answer: answer}
			continue
		}
		if current == nil {
			// Preamble before the first label ("You have a new response")
			continue
		}
		if current.Answer != "" {
			current.Answer += "\n"
		}
		current.Answer += strings.TrimSpace(line)
	}
	flush()

	if len(pairs) == 0 {
		return nil, errNoLabels
	}
	return pairs, nil
}

func splitLabel(line string) (string, string, bool) {
	m := labelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	question := strings.TrimSpace(numberingPattern.ReplaceAllString(m[1], ""))
	// "https://..." is a value, not a label
	if question == "" || urlSchemePattern.MatchString(question) {
		return "", "", false
	}
	return question, strings.TrimSpace(m[2]), true
}
