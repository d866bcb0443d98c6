package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/model"
)

// countryAliases maps lowercase names, aliases and region shorthands to
// ISO 3166-1 alpha-2 codes
var countryAliases = map[string][]string{
	"united states": {"US"}, "united states of america": {"US"}, "usa": {"US"}, "us": {"US"}, "america": {"US"},
	"united kingdom": {"GB"}, "uk": {"GB"}, "gb": {"GB"}, "great britain": {"GB"}, "britain": {"GB"},
	"england": {"GB"}, "scotland": {"GB"}, "wales": {"GB"}, "northern ireland": {"GB"},
	"canada": {"CA"}, "ca": {"CA"},
	"australia": {"AU"}, "au": {"AU"},
	"new zealand": {"NZ"}, "nz": {"NZ"},
	"ireland": {"IE"}, "republic of ireland": {"IE"},
	"germany": {"DE"}, "deutschland": {"DE"},
	"france":      {"FR"},
	"spain":       {"ES"},
	"italy":       {"IT"},
	"netherlands": {"NL"}, "the netherlands": {"NL"}, "holland": {"NL"},
	"belgium": {"BE"},
	"sweden":  {"SE"}, "norway": {"NO"}, "denmark": {"DK"}, "finland": {"FI"},
	"switzerland": {"CH"}, "austria": {"AT"}, "portugal": {"PT"}, "poland": {"PL"},
	"india": {"IN"}, "singapore": {"SG"}, "sg": {"SG"},
	"united arab emirates": {"AE"}, "uae": {"AE"},
	"south africa": {"ZA"}, "brazil": {"BR"}, "mexico": {"MX"}, "japan": {"JP"},

	"north america": {"US", "CA"},
	"dach":          {"DE", "AT", "CH"},
	"nordics":       {"SE", "NO", "DK", "FI"},
	"scandinavia":   {"SE", "NO", "DK"},
	"benelux":       {"BE", "NL", "LU"},
	"anz":           {"AU", "NZ"},
	"uk & ireland":  {"GB", "IE"},
}

var countryPattern = buildCountryPattern()

// buildCountryPattern matches the longest alias first so "north america"
// wins over "america"
func buildCountryPattern() *regexp.Regexp {
	aliases := make([]string, 0, len(countryAliases))
	for alias := range countryAliases {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	for i, a := range aliases {
		aliases[i] = strings.ReplaceAll(regexp.QuoteMeta(a), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(aliases, "|") + `)\b`)
}

// ambiguousCodes are two-letter aliases that also read as US state
// abbreviations ("San Diego, CA"); in free text they never name a country
var ambiguousCodes = map[string]bool{"ca": true}

// ParseCountries extracts country codes from a free-text geography answer,
// in mention order without duplicates. "Worldwide" yields nothing.
// Two-letter aliases count only when the answer is nothing but the code or
// when they are written in capitals ("reach us" is not the US).
func ParseCountries(answer string) []string {
	text := strings.ReplaceAll(answer, ".", "")
	whole := strings.TrimSpace(text)

	seen := make(map[string]bool)
	var codes []string
	for _, match := range countryPattern.FindAllString(text, -1) {
		if len(match) == 2 && match != whole && !freeTextCode(match) {
			continue
		}
		key := strings.ToLower(strings.Join(strings.Fields(match), " "))
		for _, code := range countryAliases[key] {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes
}

func freeTextCode(match string) bool {
	return match == strings.ToUpper(match) && !ambiguousCodes[strings.ToLower(match)]
}

// CountriesFromForm reads the geography field of a submission. An answer
// that is a clean list ("US, CA" or "Germany; UK") is read entry by entry;
// anything else is scanned as free text.
func CountriesFromForm(formData []model.QAPair) []string {
	answer := extract.FindAnswer(formData, extract.GeographyTerms)
	if codes, ok := strictCountryList(answer); ok {
		return codes
	}
	return ParseCountries(answer)
}

// strictCountryList succeeds only when every list entry names a country
func strictCountryList(answer string) ([]string, bool) {
	tokens := extract.NormalizeList(answer)
	if len(tokens) == 0 {
		return nil, false
	}

	seen := make(map[string]bool)
	var codes []string
	for _, token := range tokens {
		found := ParseCountries(token)
		if len(found) == 0 {
			if code := NormalizeCountry(token); code != "" {
				found = []string{code}
			}
		}
		if len(found) == 0 {
			return nil, false
		}
		for _, code := range found {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes, true
}

// NormalizeCountry converts a name or alias to its ISO code
func NormalizeCountry(s string) string {
	codes := ParseCountries(s)
	if len(codes) > 0 {
		return codes[0]
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 2 {
		return s
	}
	return ""
}

// ParseCountryList reads a list of country codes or names such as
// "DE, FR" or "Germany; UK". Unknown entries are dropped.
func ParseCountryList(answer string) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, token := range extract.NormalizeList(answer) {
		code := NormalizeCountry(token)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}
