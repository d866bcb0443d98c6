package extract

import (
	"github.com/ppiankov/campaignkit/internal/extract/adapters"
	"github.com/ppiankov/campaignkit/internal/model"
)

// FormParser converts raw intake email bodies into submissions
type FormParser struct {
	registry *adapters.Registry
}

// NewFormParser creates a parser with the built-in layout adapters
func NewFormParser() *FormParser {
	return &FormParser{registry: adapters.NewRegistry()}
}

// Parse never fails: an unrecognised body yields a submission with empty
// FormData and the original text.
func (p *FormParser) Parse(raw string) model.Submission {
	pairs, format := p.registry.Parse(raw)
	if pairs == nil {
		pairs = []model.QAPair{}
	}
	return model.Submission{
		RawText:  raw,
		FormData: pairs,
		Format:   format,
	}
}

var defaultParser = NewFormParser()

// ParseForm parses raw with the default parser
func ParseForm(raw string) model.Submission {
	return defaultParser.Parse(raw)
}
