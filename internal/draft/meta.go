package draft

import (
	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/model"
)

// Initial statuses for drafted campaigns
const (
	statusPaused = "PAUSED"
	statusDraft  = "DRAFT"

	tiktokDisabled = "DISABLE"
)

func buildMeta(in *input, d *model.CampaignDraft) {
	d.CampaignType = platformCode(in, d, model.PlatformMeta)

	params := model.MetaCampaignParams{
		Name:                d.Name,
		Objective:           d.CampaignType,
		Status:              statusPaused,
		SpecialAdCategories: []string{},
		StartTime:           d.Schedule.StartDate,
		EndTime:             d.Schedule.EndDate,
		Targeting: model.MetaTargeting{
			GeoLocations:       model.MetaGeoLocations{Countries: d.Targeting.Countries},
			AgeMin:             d.Targeting.Age.Min,
			AgeMax:             d.Targeting.Age.Max,
			PublisherPlatforms: classify.MetaPublishers(in.detection),
		},
	}
	if params.Targeting.PublisherPlatforms == nil {
		params.Targeting.PublisherPlatforms = []string{string(model.MetaFacebook), string(model.MetaInstagram)}
	}

	if d.Budget.Period == model.PeriodDaily {
		params.DailyBudget = d.Budget.MinorUnits
	} else {
		params.LifetimeBudget = d.Budget.MinorUnits
		if d.Schedule.EndDate == "" {
			d.Warnings = append(d.Warnings, "Meta lifetime budgets need an end date")
		}
	}

	if len(d.Targeting.Countries) == 0 {
		d.Warnings = append(d.Warnings, "Meta ad sets need at least one target country")
	}

	d.Params = params
}

// platformCode returns the platform-native objective code, honouring a
// campaign type override given as a native code
func platformCode(in *input, d *model.CampaignDraft, p model.Platform) string {
	if v, ok := in.overrides.Get(model.FieldCampaignType); ok {
		markOverridden(d, model.FieldCampaignType)
		return v
	}
	return classify.PlatformObjective(p, d.Objective)
}
