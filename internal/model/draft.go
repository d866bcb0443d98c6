package model

import "strings"

// Field names a draft value the UI can lock or override
type Field string

const (
	FieldName         Field = "name"
	FieldObjective    Field = "objective"
	FieldCampaignType Field = "campaign_type"
	FieldStartDate    Field = "start_date"
	FieldEndDate      Field = "end_date"
	FieldCountries    Field = "countries"
	FieldAgeMin       Field = "age_min"
	FieldAgeMax       Field = "age_max"
	FieldBudget       Field = "budget"
	FieldCurrency     Field = "currency"
	FieldPeriod       Field = "period"
	FieldLanguage     Field = "language"
)

// AllFields lists every overridable field
var AllFields = []Field{
	FieldName, FieldObjective, FieldCampaignType, FieldStartDate, FieldEndDate,
	FieldCountries, FieldAgeMin, FieldAgeMax, FieldBudget, FieldCurrency,
	FieldPeriod, FieldLanguage,
}

// ParseField converts a user-supplied field name, accepting "-" for "_"
func ParseField(s string) (Field, bool) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, f := range AllFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Overrides holds manually entered or locked values. They always take
// precedence over values extracted from the form.
type Overrides map[Field]string

// Get returns the trimmed override for f, if one is set
func (o Overrides) Get(f Field) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o[f]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Selection is the UI state for one draft session
type Selection struct {
	Platforms []Platform             `json:"platforms,omitempty"` // Empty means every requested platform
	Overrides map[Platform]Overrides `json:"overrides,omitempty"`
}

// OverridesFor returns the overrides for p (nil-safe)
func (s Selection) OverridesFor(p Platform) Overrides {
	if s.Overrides == nil {
		return nil
	}
	return s.Overrides[p]
}

// Schedule is the flight window as ISO dates (YYYY-MM-DD); empty when unknown
type Schedule struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Targeting is the platform-neutral audience definition
type Targeting struct {
	Countries []string `json:"countries,omitempty"` // ISO 3166-1 alpha-2
	Age       AgeRange `json:"age,omitempty"`
	Language  string   `json:"language,omitempty"`
}

// CampaignDraft is the assembled, platform-specific campaign proposal.
// It is handed to the API submission collaborator and then discarded.
type CampaignDraft struct {
	Platform        Platform         `json:"platform"`
	Name            string           `json:"name"`
	Objective       string           `json:"objective,omitempty"`     // Canonical objective (awareness, traffic, ...)
	CampaignType    string           `json:"campaign_type,omitempty"` // Platform-native objective/type code
	Schedule        Schedule         `json:"schedule"`
	Targeting       Targeting        `json:"targeting"`
	Budget          AllocatedBudget  `json:"budget"`
	Validation      ValidationResult `json:"validation"`
	Locale          *LocaleCheck     `json:"locale,omitempty"`
	Params          interface{}      `json:"params"`
	PopulatedFields []string         `json:"populated_fields"`
	Overridden      []string         `json:"overridden,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
}
