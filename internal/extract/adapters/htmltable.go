package adapters

import (
	"errors"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
	"golang.org/x/net/html"
)

var errNoFormTable = errors.New("no form table found")

// HTMLTableAdapter reads the Forms "responses" table: header cells are the
// questions, the first body row holds the answers.
type HTMLTableAdapter struct {
	BaseAdapter
}

// NewHTMLTableAdapter creates a new HTML table adapter
func NewHTMLTableAdapter() *HTMLTableAdapter {
	return &HTMLTableAdapter{}
}

// Name returns the adapter name
func (a *HTMLTableAdapter) Name() string {
	return "html-table"
}

// ReadsMarkup marks the adapter as reading raw HTML
func (a *HTMLTableAdapter) ReadsMarkup() bool {
	return true
}

// CanHandle checks for a table element
func (a *HTMLTableAdapter) CanHandle(body string) bool {
	return strings.Contains(strings.ToLower(body), "<table")
}

// Parse extracts pairs from the first table that has both a thead and a tbody.
// Entities are decoded by the tokenizer.
func (a *HTMLTableAdapter) Parse(body string) ([]model.QAPair, error) {
	doc, err := a.ParseHTML(body)
	if err != nil {
		return nil, err
	}

	tables := a.FindAll(doc, func(n *html.Node) bool {
		return a.IsElement(n, "table")
	})

	for _, table := range tables {
		if pairs := a.parseHeaderTable(table); len(pairs) > 0 {
			return pairs, nil
		}
	}

	return nil, errNoFormTable
}

func (a *HTMLTableAdapter) parseHeaderTable(table *html.Node) []model.QAPair {
	thead := a.firstSection(table, "thead")
	tbody := a.firstSection(table, "tbody")
	if thead == nil || tbody == nil {
		return nil
	}

	var headers []string
	for _, row := range a.Children(thead, "tr") {
		cells := a.Children(row, "th", "td")
		if len(cells) == 0 {
			continue
		}
		for _, cell := range cells {
			headers = append(headers, a.ExtractText(cell))
		}
		break
	}
	if len(headers) == 0 {
		return nil
	}

	var answers []string
	for _, row := range a.Children(tbody, "tr") {
		cells := a.Children(row, "td", "th")
		if len(cells) == 0 {
			continue
		}
		for _, cell := range cells {
			answers = append(answers, a.ExtractText(cell))
		}
		break
	}

	pairs := make([]model.QAPair, 0, len(headers))
	for i, question := range headers {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		pairs = append(pairs, model.QAPair{Question: question, Answer: answer})
	}
	return pairs
}

// firstSection returns the table's direct thead/tbody child
func (a *HTMLTableAdapter) firstSection(table *html.Node, tag string) *html.Node {
	sections := a.Children(table, tag)
	if len(sections) == 0 {
		return nil
	}
	return sections[0]
}
