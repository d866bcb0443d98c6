package model

// ValidationResult is an advisory minimum-spend check for one platform allocation.
// It never blocks assembly or submission.
type ValidationResult struct {
	Platform        Platform   `json:"platform"`
	IsValid         bool       `json:"is_valid"`
	Amount          float64    `json:"amount"`
	MinimumRequired float64    `json:"minimum_required"`
	Currency        string     `json:"currency"`
	TableCurrency   string     `json:"table_currency"` // Row used; USD for unknown currencies
	Period          PeriodType `json:"period"`
	Message         string     `json:"message"`
}

// Shortfall returns how far the amount is below the minimum (0 if valid)
func (v ValidationResult) Shortfall() float64 {
	if v.IsValid {
		return 0
	}
	return v.MinimumRequired - v.Amount
}

// LocaleCheck is the LinkedIn geography/locale resolution for a draft
type LocaleCheck struct {
	Country         string   `json:"country"`
	GeoURN          string   `json:"geo_urn,omitempty"`
	RequestedLocale string   `json:"requested_locale"`
	Locale          string   `json:"locale"` // Locale LinkedIn will accept, e.g. en_US
	Corrected       bool     `json:"corrected"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Language returns the language half of Locale
func (l LocaleCheck) Language() string {
	for i := 0; i < len(l.Locale); i++ {
		if l.Locale[i] == '_' {
			return l.Locale[:i]
		}
	}
	return l.Locale
}

// CountryPart returns the country half of Locale
func (l LocaleCheck) CountryPart() string {
	for i := 0; i < len(l.Locale); i++ {
		if l.Locale[i] == '_' {
			return l.Locale[i+1:]
		}
	}
	return ""
}
