package draft

import (
	"fmt"
	"time"

	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/ppiankov/campaignkit/internal/validate"
)

// linkedInAgeBuckets are the fixed age ranges LinkedIn targets
var linkedInAgeBuckets = []struct {
	min, max int
	urn      string
}{
	{18, 24, "urn:li:ageRange:(18,24)"},
	{25, 34, "urn:li:ageRange:(25,34)"},
	{35, 54, "urn:li:ageRange:(35,54)"},
	{55, 99, "urn:li:ageRange:(55,2147483647)"},
}

func buildLinkedIn(in *input, d *model.CampaignDraft) {
	d.CampaignType = platformCode(in, d, model.PlatformLinkedIn)

	country := ""
	if len(d.Targeting.Countries) > 0 {
		country = d.Targeting.Countries[0]
	}
	locale := validate.ValidateLinkedInLocale(country, d.Targeting.Language)
	d.Locale = &locale
	d.Warnings = append(d.Warnings, locale.Warnings...)

	if msg, mismatch := validate.CheckLinkedInCurrency(d.Budget.Currency); mismatch {
		d.Warnings = append(d.Warnings, msg)
	}

	params := model.LinkedInCampaignParams{
		Name:          d.Name,
		Type:          "SPONSORED_UPDATES",
		ObjectiveType: d.CampaignType,
		CostType:      "CPM",
		Status:        statusDraft,
		Locale: model.LinkedInLocale{
			Country:  locale.CountryPart(),
			Language: locale.Language(),
		},
		TargetingCriteria: model.LinkedInTargetingCriteria{
			AgeRanges: linkedInAgeRanges(d.Targeting.Age),
		},
	}

	money := &model.LinkedInMoney{Amount: d.Budget.Decimal, CurrencyCode: d.Budget.Currency}
	if d.Budget.Period == model.PeriodDaily {
		params.DailyBudget = money
	} else {
		params.TotalBudget = money
	}

	for _, c := range d.Targeting.Countries {
		if urn, ok := validate.LinkedInGeoURN(c); ok {
			params.TargetingCriteria.Locations = append(params.TargetingCriteria.Locations, urn)
		} else if c != country {
			d.Warnings = append(d.Warnings, fmt.Sprintf("%s is not in the LinkedIn geo table; add its geo URN manually", c))
		}
	}

	if start, ok := epochMillis(d.Schedule.StartDate); ok {
		params.RunSchedule = &model.LinkedInRunSchedule{Start: start}
		if end, ok := epochMillis(d.Schedule.EndDate); ok {
			params.RunSchedule.End = end
		}
	} else {
		d.Warnings = append(d.Warnings, "LinkedIn campaigns need a start date")
	}

	d.Params = params
}

// linkedInAgeRanges returns every bucket overlapping age. An empty range
// targets all ages.
func linkedInAgeRanges(age model.AgeRange) []string {
	if age.IsEmpty() {
		return nil
	}
	lo, hi := age.Min, age.Max
	if hi == 0 {
		hi = 99
	}

	var urns []string
	for _, b := range linkedInAgeBuckets {
		if b.max >= lo && b.min <= hi {
			urns = append(urns, b.urn)
		}
	}
	return urns
}

// epochMillis converts a YYYY-MM-DD date to UTC midnight in milliseconds
func epochMillis(date string) (int64, bool) {
	if date == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
