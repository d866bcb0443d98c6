package budget

import (
	"regexp"
	"strings"

	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/model"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used when a submission names no currency at all
const DefaultCurrency = "USD"

var isoCodePattern = regexp.MustCompile(`\b[A-Z]{3}\b`)

type currencyRule struct {
	code    string
	pattern *regexp.Regexp
}

// currencyRules are checked in order; prefixed dollar signs come before the
// bare "$" so "CA$500" is not read as USD.
var currencyRules = []currencyRule{
	{"CAD", regexp.MustCompile(`(?i)\bC(?:A)?\$|\bcanadian\s+dollars?\b|\bcad\b`)},
	{"AUD", regexp.MustCompile(`(?i)\bA(?:U)?\$|\baustralian\s+dollars?\b|\baud\b`)},
	{"GBP", regexp.MustCompile(`(?i)£|\bpounds?\b|\bsterling\b|\bgbp\b`)},
	{"EUR", regexp.MustCompile(`(?i)€|\beuros?\b|\beur\b`)},
	{"USD", regexp.MustCompile(`(?i)\$|\bdollars?\b|\busd\b`)},
}

// DetectCurrency reads the currency field, falling back to symbols or
// currency words anywhere in the answers, then to USD.
func DetectCurrency(formData []model.QAPair) string {
	return DetectCurrencyWithDefault(formData, DefaultCurrency)
}

// DetectCurrencyWithDefault is DetectCurrency with a configurable default
func DetectCurrencyWithDefault(formData []model.QAPair, fallback string) string {
	if answer := extract.FindAnswer(formData, extract.CurrencyTerms); answer != "" {
		if code, ok := ParseCurrency(answer); ok {
			return code
		}
	}

	for _, answer := range extract.Answers(formData) {
		if code, ok := matchCurrencyRules(answer); ok {
			return code
		}
	}

	if code, ok := NormalizeCode(fallback); ok {
		return code
	}
	return DefaultCurrency
}

// ParseCurrency reads an explicit currency answer: an ISO 4217 code, a
// symbol or a currency word.
func ParseCurrency(s string) (string, bool) {
	if code, ok := matchCurrencyRules(s); ok {
		return code, true
	}
	for _, candidate := range isoCodePattern.FindAllString(s, -1) {
		if code, ok := NormalizeCode(candidate); ok {
			return code, true
		}
	}
	return "", false
}

// NormalizeCode validates an ISO 4217 code and returns it upper-cased
func NormalizeCode(s string) (string, bool) {
	unit, err := currency.ParseISO(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return unit.String(), true
}

func matchCurrencyRules(s string) (string, bool) {
	for _, rule := range currencyRules {
		if rule.pattern.MatchString(s) {
			return rule.code, true
		}
	}
	return "", false
}
