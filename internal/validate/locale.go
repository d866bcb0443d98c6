package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/model"
	"golang.org/x/text/language"
)

// DefaultLinkedInLocale is the locale LinkedIn accepts for every English variant
const DefaultLinkedInLocale = "en_US"

type linkedInCountry struct {
	geoID   string
	locales []string // Supported interface locales, preferred first
}

// linkedInCountries maps ISO country codes to LinkedIn geo IDs and the
// interface locales LinkedIn accepts for campaigns targeting them.
// LinkedIn has no regional English variants.
var linkedInCountries = map[string]linkedInCountry{
	"US": {"103644278", []string{"en_US", "es_ES"}},
	"GB": {"101165590", []string{"en_US"}},
	"CA": {"101174742", []string{"en_US", "fr_FR"}},
	"AU": {"101452733", []string{"en_US"}},
	"NZ": {"105490917", []string{"en_US"}},
	"IE": {"104738515", []string{"en_US"}},
	"DE": {"101282230", []string{"de_DE", "en_US"}},
	"AT": {"103883259", []string{"de_DE", "en_US"}},
	"CH": {"106693272", []string{"de_DE", "fr_FR", "it_IT", "en_US"}},
	"FR": {"105015875", []string{"fr_FR", "en_US"}},
	"BE": {"100565514", []string{"nl_NL", "fr_FR", "en_US"}},
	"NL": {"102890719", []string{"nl_NL", "en_US"}},
	"ES": {"105646813", []string{"es_ES", "en_US"}},
	"IT": {"103350119", []string{"it_IT", "en_US"}},
	"PT": {"100364837", []string{"pt_BR", "en_US"}},
	"BR": {"106057199", []string{"pt_BR", "en_US"}},
	"MX": {"103323778", []string{"es_ES", "en_US"}},
	"IN": {"102713980", []string{"en_US"}},
	"SG": {"102454443", []string{"en_US", "zh_CN"}},
	"AE": {"104305776", []string{"en_US", "ar_AE"}},
	"ZA": {"104035573", []string{"en_US"}},
	"SE": {"105117694", []string{"sv_SE", "en_US"}},
	"JP": {"101355337", []string{"ja_JP", "en_US"}},
}

// languageNames maps English language names to base tags, checked in order
var languageNames = []struct{ name, base string }{
	{"english", "en"}, {"french", "fr"}, {"german", "de"}, {"spanish", "es"}, {"italian", "it"},
	{"dutch", "nl"}, {"portuguese", "pt"}, {"chinese", "zh"}, {"mandarin", "zh"}, {"japanese", "ja"},
	{"arabic", "ar"}, {"swedish", "sv"},
}

// LinkedInGeoURN returns the geo URN for an ISO country code
func LinkedInGeoURN(country string) (string, bool) {
	entry, ok := linkedInCountries[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return "", false
	}
	return "urn:li:geo:" + entry.geoID, true
}

// ValidateLinkedInLocale resolves the interface locale LinkedIn will accept
// for a country and requested language. A locale LinkedIn does not offer is
// replaced with the closest supported one and a warning explains why.
func ValidateLinkedInLocale(country, lang string) model.LocaleCheck {
	code := classify.NormalizeCountry(country)
	base, region := parseLanguage(lang)

	check := model.LocaleCheck{Country: code}
	if region == "" {
		region = code
	}
	if region == "" {
		region = "US"
	}
	check.RequestedLocale = base + "_" + region

	entry, ok := linkedInCountries[code]
	if !ok {
		check.Locale = DefaultLinkedInLocale
		if code == "" {
			check.Warnings = append(check.Warnings, "No target country found; LinkedIn locale defaults to "+DefaultLinkedInLocale)
		} else {
			check.Warnings = append(check.Warnings,
				fmt.Sprintf("%s is not in the LinkedIn geo table; set the geo URN manually (locale %s)", code, DefaultLinkedInLocale))
		}
		check.Corrected = check.Locale != check.RequestedLocale
		return check
	}

	check.GeoURN = "urn:li:geo:" + entry.geoID
	check.Locale = closestLocale(entry.locales, check.RequestedLocale, base)
	if check.Locale != check.RequestedLocale {
		check.Corrected = true
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("LinkedIn does not support %s for %s campaigns; using %s", check.RequestedLocale, code, check.Locale))
	}

	return check
}

// CheckLinkedInCurrency returns a warning when currency is unlikely to match
// the ad account. Most LinkedIn ad accounts bill in USD whatever the geography.
func CheckLinkedInCurrency(currency string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || code == "USD" {
		return "", false
	}
	return fmt.Sprintf("LinkedIn ad accounts are usually USD-only; budget is in %s, confirm the account currency before submitting", code), true
}

// parseLanguage returns the base language and, when given explicitly, the
// region of a BCP 47 tag, POSIX locale or English language name. Empty or
// unparseable input is treated as English.
func parseLanguage(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "en", ""
	}

	lower := strings.ToLower(s)
	for _, n := range languageNames {
		if strings.Contains(lower, n.name) {
			return n.base, ""
		}
	}

	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return "en", ""
	}

	b, _ := tag.Base()
	region := ""
	if r, conf := tag.Region(); conf == language.Exact {
		region = r.String()
	}
	return b.String(), region
}

// closestLocale picks the requested locale if supported, then any supported
// locale with the same base language, then en_US, then the first supported.
func closestLocale(supported []string, requested, base string) string {
	for _, l := range supported {
		if l == requested {
			return l
		}
	}
	for _, l := range supported {
		if strings.HasPrefix(l, base+"_") {
			return l
		}
	}
	for _, l := range supported {
		if l == DefaultLinkedInLocale {
			return l
		}
	}
	if len(supported) > 0 {
		return supported[0]
	}
	return DefaultLinkedInLocale
}
