package extract

import (
	"strings"
	"testing"
)

func TestParseForm_HTMLTable(t *testing.T) {
	body := `<html><body>
<p>New submission</p>
<table>
  <thead><tr><th>Campaign Name</th><th>Total Budget</th><th>Channels</th></tr></thead>
  <tbody><tr><td>Spring &amp; Summer</td><td>£1,000</td><td>Facebook, <br>LinkedIn</td></tr></tbody>
</table>
</body></html>`

	sub := ParseForm(body)

	if sub.Format != "html-table" {
		t.Errorf("Expected html-table format, got %q", sub.Format)
	}
	if len(sub.FormData) != 3 {
		t.Fatalf("Expected 3 pairs, got %d", len(sub.FormData))
	}
	if sub.FormData[0].Question != "Campaign Name" || sub.FormData[0].Answer != "Spring & Summer" {
		t.Errorf("Unexpected first pair: %+v", sub.FormData[0])
	}
	if sub.FormData[2].Answer != "Facebook, LinkedIn" {
		t.Errorf("Expected collapsed whitespace, got %q", sub.FormData[2].Answer)
	}
	if sub.RawText != body {
		t.Error("Expected raw text to be kept")
	}
}

func TestParseForm_FixedWidth(t *testing.T) {
	body := "Campaign Name     Budget     Channels\n" +
		"Spring Launch     500        Facebook, Google Search\n"

	sub := ParseForm(body)

	if sub.Format != "fixed-width" {
		t.Errorf("Expected fixed-width format, got %q", sub.Format)
	}

	expected := map[string]string{
		"Campaign Name": "Spring Launch",
		"Budget":        "500",
		"Channels":      "Facebook, Google Search",
	}
	if len(sub.FormData) != len(expected) {
		t.Fatalf("Expected %d pairs, got %d", len(expected), len(sub.FormData))
	}
	for _, qa := range sub.FormData {
		if expected[qa.Question] != qa.Answer {
			t.Errorf("%s: expected %q, got %q", qa.Question, expected[qa.Question], qa.Answer)
		}
	}
}

func TestParseForm_LabelledLines(t *testing.T) {
	body := `You have a new response

1. Campaign name: Spring Launch
2. Target audience:
Small business owners
in the UK
3. Website: https://example.com
`

	sub := ParseForm(body)

	if sub.Format != "labelled-lines" {
		t.Errorf("Expected labelled-lines format, got %q", sub.Format)
	}
	if len(sub.FormData) != 3 {
		t.Fatalf("Expected 3 pairs, got %d: %+v", len(sub.FormData), sub.FormData)
	}
	if sub.FormData[0].Question != "Campaign name" {
		t.Errorf("Expected numbering stripped, got %q", sub.FormData[0].Question)
	}
	if sub.FormData[1].Answer != "Small business owners\nin the UK" {
		t.Errorf("Expected continuation lines, got %q", sub.FormData[1].Answer)
	}
	if sub.FormData[2].Answer != "https://example.com" {
		t.Errorf("Expected URL answer intact, got %q", sub.FormData[2].Answer)
	}
}

func TestParseForm_HTMLWithoutTable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"minified", `<div><p>Campaign name: Spring</p><p>Total budget: $500</p></div>`},
		{"multi-line", "<html>\n<body>\n<p>Campaign name: Spring</p>\n<p>Total budget: $500</p>\n</body>\n</html>"},
		{"table without thead", "<html><body>\n<table>\n<tr><td>Campaign name</td><td>Spring</td></tr>\n<tr><td>Total budget</td><td>$500</td></tr>\n</table>\n</body></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := ParseForm(tt.body)

			if sub.Format != "labelled-lines" {
				t.Errorf("Expected labelled-lines on visible text, got %q", sub.Format)
			}
			if len(sub.FormData) != 2 {
				t.Fatalf("Expected 2 pairs, got %d: %+v", len(sub.FormData), sub.FormData)
			}
			for _, pair := range sub.FormData {
				if strings.ContainsAny(pair.Question+pair.Answer, "<>") {
					t.Errorf("Expected no markup in pairs, got %+v", pair)
				}
			}
			if sub.FormData[0].Question != "Campaign name" || sub.FormData[0].Answer != "Spring" {
				t.Errorf("Unexpected first pair: %+v", sub.FormData[0])
			}
			if FindAnswer(sub.FormData, BudgetTerms) != "$500" {
				t.Errorf("Expected budget answer, got %+v", sub.FormData)
			}
		})
	}
}

func TestParseForm_Unrecognised(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace", "  \n\n "},
		{"single line", "thanks for your submission"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := ParseForm(tt.body)
			if sub.FormData == nil {
				t.Error("Expected non-nil FormData")
			}
			if len(sub.FormData) != 0 {
				t.Errorf("Expected no pairs, got %d", len(sub.FormData))
			}
			if sub.Format != "" {
				t.Errorf("Expected empty format, got %q", sub.Format)
			}
		})
	}
}
