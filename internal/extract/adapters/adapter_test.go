package adapters

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestColumnSpans(t *testing.T) {
	tests := []struct {
		line     string
		expected []Span
	}{
		{"Campaign Name", []Span{{Start: 0, End: 13, Last: true}}},
		{"Name   Budget", []Span{{Start: 0, End: 4}, {Start: 7, End: 13, Last: true}}},
		{"A  B", []Span{{Start: 0, End: 4, Last: true}}},
		{"Één   Budget", []Span{{Start: 0, End: 3}, {Start: 6, End: 12, Last: true}}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := ColumnSpans(tt.line)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d spans, got %d: %+v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Span %d: expected %+v, got %+v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestFixedWidth_LastColumnRunsToEndOfLine(t *testing.T) {
	body := "Name     Channels\nSpring   Facebook, Instagram and LinkedIn"

	pairs, err := NewFixedWidthAdapter().Parse(body)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(pairs))
	}
	if pairs[1].Answer != "Facebook, Instagram and LinkedIn" {
		t.Errorf("Expected full last column, got %q", pairs[1].Answer)
	}
}

func TestFixedWidth_NonASCIIColumns(t *testing.T) {
	body := "Brand       Budget\nCafé Ünïon  £900"

	pairs, err := NewFixedWidthAdapter().Parse(body)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Answer != "Café Ünïon" {
		t.Errorf("Expected Café Ünïon, got %q", pairs[0].Answer)
	}
	if pairs[1].Answer != "£900" {
		t.Errorf("Expected £900, got %q", pairs[1].Answer)
	}
}

func TestFixedWidth_ShortAnswerLine(t *testing.T) {
	body := "Name     Budget     Channels\nSpring"

	pairs, _ := NewFixedWidthAdapter().Parse(body)
	if len(pairs) != 3 {
		t.Fatalf("Expected 3 pairs, got %d", len(pairs))
	}
	if pairs[0].Answer != "Spring" || pairs[1].Answer != "" || pairs[2].Answer != "" {
		t.Errorf("Expected missing columns to be empty, got %+v", pairs)
	}
}

func TestLabelledLines_CanHandle(t *testing.T) {
	a := NewLabelledLinesAdapter()

	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{"two labels", "Name: Spring\nBudget: 500", true},
		{"one label", "Name: Spring\nthanks", false},
		{"column header", "Name     Budget\nSpring: x\nBudget: 5", false},
		{"urls only", "https://a.example\nhttps://b.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.CanHandle(tt.body); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestHTMLTable_RequiresHeadAndBody(t *testing.T) {
	body := `<table><tr><td>Name</td><td>Spring</td></tr></table>`

	if _, err := NewHTMLTableAdapter().Parse(body); err == nil {
		t.Error("Expected error for table without thead")
	}
}

func TestVisibleText(t *testing.T) {
	body := `<html><head><style>p{}</style></head><body>
<p>Campaign  name: Spring</p>
<script>var x = 1;</script>
<pre>Name     Budget
Spring   500</pre>
</body></html>`

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	text := VisibleText(doc)

	if !strings.Contains(text, "Campaign name: Spring") {
		t.Errorf("Expected collapsed paragraph text, got %q", text)
	}
	if !strings.Contains(text, "Name     Budget\nSpring   500") {
		t.Errorf("Expected preformatted text kept, got %q", text)
	}
	if strings.Contains(text, "var x") || strings.Contains(text, "p{}") {
		t.Errorf("Expected script and style dropped, got %q", text)
	}
}

func TestVisibleText_TableRows(t *testing.T) {
	body := `<table>
<tr><td>Brand</td><td>Acme</td></tr>
<tr><th>Budget:</th><td>500</td></tr>
<tr><td>A</td><td>B</td><td>C</td></tr>
</table>`

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	text := VisibleText(doc)

	for _, want := range []string{"Brand: Acme\n", "Budget: 500\n", "A  B  C\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in %q", want, text)
		}
	}
}

func TestRegistry_TextAdaptersNeverSeeMarkup(t *testing.T) {
	body := "<html>\n<body>\n<p>Name: Spring</p>\n<p>Budget: 500</p>\n</body>\n</html>"

	pairs, name := NewRegistry().Parse(body)

	if name != "labelled-lines" {
		t.Errorf("Expected labelled-lines, got %q", name)
	}
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].Question != "Name" || pairs[1].Answer != "500" {
		t.Errorf("Expected pairs from visible text, got %+v", pairs)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	if !LooksLikeHTML("<P>hello</P>") {
		t.Error("Expected markup to be detected")
	}
	if LooksLikeHTML("Budget: 5 < 10") {
		t.Error("Expected plain text")
	}
}
