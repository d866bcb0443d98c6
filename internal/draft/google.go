package draft

import (
	"strings"

	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/model"
)

func buildGoogle(in *input, d *model.CampaignDraft) {
	d.CampaignType = googleChannelType(in, d)

	params := model.GoogleCampaignParams{
		Name:                   d.Name,
		AdvertisingChannelType: d.CampaignType,
		Status:                 statusPaused,
		StartDate:              d.Schedule.StartDate,
		EndDate:                d.Schedule.EndDate,
		GeoTargetCountries:     d.Targeting.Countries,
		AgeMin:                 d.Targeting.Age.Min,
		AgeMax:                 d.Targeting.Age.Max,
		CampaignBudget: model.GoogleCampaignBudget{
			DeliveryMethod: "STANDARD",
			CurrencyCode:   d.Budget.Currency,
		},
	}

	if d.Budget.Period == model.PeriodDaily {
		params.CampaignBudget.AmountMicros = d.Budget.Micros
		params.CampaignBudget.Period = "DAILY"
	} else {
		params.CampaignBudget.TotalAmountMicros = d.Budget.Micros
		params.CampaignBudget.Period = "CUSTOM_PERIOD"
		if d.Schedule.EndDate == "" {
			d.Warnings = append(d.Warnings, "Google total budgets need an end date")
		}
	}

	d.Params = params
}

// googleChannelType prefers an override, then an explicit campaign type or
// Google product named in the form, then the objective mapping
func googleChannelType(in *input, d *model.CampaignDraft) string {
	if v, ok := in.overrides.Get(model.FieldCampaignType); ok {
		markOverridden(d, model.FieldCampaignType)
		if t, ok := classify.ParseGoogleCampaignType(v); ok {
			return t
		}
		return strings.ToUpper(v)
	}

	if t, ok := classify.ClassifyGoogleCampaignType(in.formData); ok {
		markPopulated(d, model.FieldCampaignType)
		return t
	}
	return classify.PlatformObjective(model.PlatformGoogle, d.Objective)
}
