package draft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/model"
)

// fieldLabels are the names shown to operators in PopulatedFields
var fieldLabels = map[model.Field]string{
	model.FieldName:         "Campaign name",
	model.FieldObjective:    "Objective",
	model.FieldCampaignType: "Campaign type",
	model.FieldStartDate:    "Start date",
	model.FieldEndDate:      "End date",
	model.FieldCountries:    "Countries",
	model.FieldAgeMin:       "Minimum age",
	model.FieldAgeMax:       "Maximum age",
	model.FieldBudget:       "Budget",
	model.FieldCurrency:     "Currency",
	model.FieldPeriod:       "Budget period",
	model.FieldLanguage:     "Language",
}

// applyCommonFields fills the platform-neutral draft fields
func applyCommonFields(in *input, d *model.CampaignDraft) {
	d.Name = resolveName(in, d)
	d.Objective = resolveObjective(in, d)
	d.Schedule = resolveSchedule(in, d)
	d.Targeting.Countries = resolveCountries(in, d)
	d.Targeting.Age = resolveAge(in, d)
	d.Targeting.Language = resolveText(in, d, model.FieldLanguage, extract.LanguageTerms)
}

// resolveText returns the override for f, else the form answer for terms
func resolveText(in *input, d *model.CampaignDraft, f model.Field, terms []string) string {
	if v, ok := in.overrides.Get(f); ok {
		markOverridden(d, f)
		return v
	}
	if v := strings.TrimSpace(extract.FindAnswer(in.formData, terms)); v != "" {
		markPopulated(d, f)
		return v
	}
	return ""
}

func resolveName(in *input, d *model.CampaignDraft) string {
	if name := resolveText(in, d, model.FieldName, extract.NameTerms); name != "" {
		return name
	}

	suffix := d.Platform.DisplayName() + " campaign"
	if brand := strings.TrimSpace(extract.FindAnswer(in.formData, extract.BrandTerms)); brand != "" {
		return brand + " - " + suffix
	}
	d.Warnings = append(d.Warnings, "Campaign name not found; using a placeholder")
	return suffix
}

func resolveObjective(in *input, d *model.CampaignDraft) string {
	if v, ok := in.overrides.Get(model.FieldObjective); ok {
		markOverridden(d, model.FieldObjective)
		if objective, ok := classify.ClassifyObjective(v); ok {
			return objective
		}
		return strings.ToLower(v)
	}

	if objective, ok := classify.ObjectiveFromForm(in.formData); ok {
		markPopulated(d, model.FieldObjective)
		return objective
	}

	d.Warnings = append(d.Warnings, "Objective not found; defaulting to traffic")
	return classify.ObjectiveTraffic
}

func resolveSchedule(in *input, d *model.CampaignDraft) model.Schedule {
	s := model.Schedule{
		StartDate: resolveDate(in, d, model.FieldStartDate, extract.StartDateTerms),
		EndDate:   resolveDate(in, d, model.FieldEndDate, extract.EndDateTerms),
	}
	if s.StartDate != "" && s.EndDate != "" && s.EndDate < s.StartDate {
		d.Warnings = append(d.Warnings, fmt.Sprintf("End date %s is before start date %s", s.EndDate, s.StartDate))
	}
	return s
}

func resolveDate(in *input, d *model.CampaignDraft, f model.Field, terms []string) string {
	if v, ok := in.overrides.Get(f); ok {
		markOverridden(d, f)
		if date := extract.ParseDate(v); date != "" {
			return date
		}
		d.Warnings = append(d.Warnings, fmt.Sprintf("%s override %q is not a date", fieldLabels[f], v))
		return ""
	}

	answer := extract.FindAnswer(in.formData, terms)
	if answer == "" {
		return ""
	}
	if date := extract.ParseDate(answer); date != "" {
		markPopulated(d, f)
		return date
	}
	d.Warnings = append(d.Warnings, fmt.Sprintf("Could not read %s from %q", strings.ToLower(fieldLabels[f]), answer))
	return ""
}

func resolveCountries(in *input, d *model.CampaignDraft) []string {
	if v, ok := in.overrides.Get(model.FieldCountries); ok {
		markOverridden(d, model.FieldCountries)
		return classify.ParseCountryList(v)
	}
	codes := classify.CountriesFromForm(in.formData)
	if len(codes) > 0 {
		markPopulated(d, model.FieldCountries)
	}
	return codes
}

func resolveAge(in *input, d *model.CampaignDraft) model.AgeRange {
	age := extract.ParseAgeRange(extract.FindAnswer(in.formData, extract.AgeTerms))
	age.Min = resolveAgeBound(in, d, model.FieldAgeMin, age.Min)
	age.Max = resolveAgeBound(in, d, model.FieldAgeMax, age.Max)
	return age
}

func resolveAgeBound(in *input, d *model.CampaignDraft, f model.Field, extracted int) int {
	if v, ok := in.overrides.Get(f); ok {
		if n, err := strconv.Atoi(v); err == nil {
			markOverridden(d, f)
			return n
		}
		d.Warnings = append(d.Warnings, fmt.Sprintf("%s override %q is not a number", fieldLabels[f], v))
	}
	if extracted != 0 {
		markPopulated(d, f)
	}
	return extracted
}

func markPopulated(d *model.CampaignDraft, f model.Field) {
	d.PopulatedFields = append(d.PopulatedFields, fieldLabels[f])
}

// markOverridden records an operator value. Overridden fields also count as
// populated.
func markOverridden(d *model.CampaignDraft, f model.Field) {
	d.Overridden = append(d.Overridden, fieldLabels[f])
	d.PopulatedFields = append(d.PopulatedFields, fieldLabels[f])
}
