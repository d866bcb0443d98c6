package adapters

import (
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
	"golang.org/x/net/html"
)

// Adapter defines the interface for form body layouts
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter recognises the body layout
	CanHandle(body string) bool

	// Parse extracts question/answer pairs in document order
	Parse(body string) ([]model.QAPair, error)
}

// Registry manages body layout adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	// Register built-in adapters, most structured first
	registry.Register(NewHTMLTableAdapter())
	registry.Register(NewLabelledLinesAdapter())

	// Fixed-width columns are the last resort
	registry.generic = NewFixedWidthAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// Adapters returns the specific adapters followed by the generic one
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, 0, len(r.adapters)+1)
	out = append(out, r.adapters...)
	return append(out, r.generic)
}

// MarkupAdapter is implemented by adapters that read raw HTML rather than text
type MarkupAdapter interface {
	ReadsMarkup() bool
}

func readsMarkup(a Adapter) bool {
	m, ok := a.(MarkupAdapter)
	return ok && m.ReadsMarkup()
}

// Parse runs the body through each adapter that can handle it and returns
// the first non-empty result with the adapter's name. Markup adapters see
// HTML bodies as-is; text adapters only ever see the visible text. It never
// fails: when nothing matches, the result is empty.
func (r *Registry) Parse(body string) ([]model.QAPair, string) {
	if LooksLikeHTML(body) {
		if pairs, name := r.try(body, true); len(pairs) > 0 {
			return pairs, name
		}
		doc, err := html.Parse(strings.NewReader(body))
		if err != nil {
			return []model.QAPair{}, ""
		}
		body = VisibleText(doc)
	}

	if pairs, name := r.try(body, false); len(pairs) > 0 {
		return pairs, name
	}
	return []model.QAPair{}, ""
}

func (r *Registry) try(body string, markup bool) ([]model.QAPair, string) {
	for _, adapter := range r.Adapters() {
		if readsMarkup(adapter) != markup || !adapter.CanHandle(body) {
			continue
		}
		pairs, err := adapter.Parse(body)
		if err != nil || len(pairs) == 0 {
			continue
		}
		return pairs, adapter.Name()
	}
	return nil, ""
}

// LooksLikeHTML reports whether body appears to be markup
func LooksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	for _, tag := range []string{"<html", "<body", "<table", "<div", "<p>", "<p ", "<br", "<pre"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

// BaseAdapter provides common HTML helpers for adapters
type BaseAdapter struct{}

// ParseHTML parses HTML string into a node tree
func (b *BaseAdapter) ParseHTML(htmlContent string) (*html.Node, error) {
	return html.Parse(strings.NewReader(htmlContent))
}

// ExtractText returns the node's text with whitespace collapsed
func (b *BaseAdapter) ExtractText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
			buf.WriteString(" ")
		}
		if node.Type == html.ElementNode && node.Data == "br" {
			buf.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// IsElement checks the node is an element with one of the given tag names
func (b *BaseAdapter) IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, tag := range tags {
		if n.Data == tag {
			return true
		}
	}
	return false
}

// Children returns the direct element children matching one of the tags
func (b *BaseAdapter) Children(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b.IsElement(c, tags...) {
			out = append(out, c)
		}
	}
	return out
}

// FindAll finds all nodes matching a predicate
func (b *BaseAdapter) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// VisibleText renders a document as plain text, one line per block element.
// Whitespace inside <pre> is kept so fixed-width digests survive.
func VisibleText(doc *html.Node) string {
	var buf strings.Builder

	var walk func(n *html.Node, pre bool)
	walk = func(n *html.Node, pre bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head", "iframe":
				return
			case "tr":
				if !pre {
					buf.WriteString(rowText(n))
					buf.WriteString("\n")
					return
				}
			case "pre":
				pre = true
			case "br":
				buf.WriteString("\n")
				return
			}
		}

		if n.Type == html.TextNode {
			if pre {
				buf.WriteString(n.Data)
			} else if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, pre)
		}

		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(doc, false)

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Join(lines, "\n")
}

// rowText renders a table row on one line. A two-cell row reads as
// "Label: value" so label/value tables without a header still parse.
func rowText(tr *html.Node) string {
	var b BaseAdapter
	var cells []string
	for _, cell := range b.Children(tr, "td", "th") {
		if text := b.ExtractText(cell); text != "" {
			cells = append(cells, text)
		}
	}
	if len(cells) == 2 && !strings.HasSuffix(cells[0], ":") {
		return cells[0] + ": " + cells[1]
	}
	return strings.Join(cells, "  ")
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "tr", "li", "ul", "ol", "table", "pre", "section",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "td", "th":
		return true
	}
	return false
}
