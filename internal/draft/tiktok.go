package draft

import (
	"github.com/ppiankov/campaignkit/internal/model"
)

var tiktokAgeGroups = []struct {
	min, max int
	code     string
}{
	{13, 17, "AGE_13_17"},
	{18, 24, "AGE_18_24"},
	{25, 34, "AGE_25_34"},
	{35, 44, "AGE_35_44"},
	{45, 54, "AGE_45_54"},
	{55, 99, "AGE_55_100"},
}

func buildTikTok(in *input, d *model.CampaignDraft) {
	d.CampaignType = platformCode(in, d, model.PlatformTikTok)

	params := model.TikTokCampaignParams{
		CampaignName:    d.Name,
		ObjectiveType:   d.CampaignType,
		OperationStatus: tiktokDisabled,
		Budget:          d.Budget.Decimal,
		ScheduleType:    "SCHEDULE_FROM_NOW",
		AgeGroups:       tiktokAgeGroupCodes(d.Targeting.Age),
		LocationCodes:   d.Targeting.Countries,
	}

	if d.Budget.Period == model.PeriodDaily {
		params.BudgetMode = "BUDGET_MODE_DAY"
	} else {
		params.BudgetMode = "BUDGET_MODE_TOTAL"
	}

	if d.Schedule.StartDate != "" {
		params.ScheduleStartTime = d.Schedule.StartDate + " 00:00:00"
	}
	if d.Schedule.EndDate != "" {
		params.ScheduleType = "SCHEDULE_START_END"
		params.ScheduleEndTime = d.Schedule.EndDate + " 23:59:59"
	} else if params.BudgetMode == "BUDGET_MODE_TOTAL" {
		d.Warnings = append(d.Warnings, "TikTok total budgets need an end date")
	}

	d.Params = params
}

func tiktokAgeGroupCodes(age model.AgeRange) []string {
	if age.IsEmpty() {
		return nil
	}
	lo, hi := age.Min, age.Max
	if hi == 0 {
		hi = 99
	}

	var codes []string
	for _, g := range tiktokAgeGroups {
		if g.max >= lo && g.min <= hi {
			codes = append(codes, g.code)
		}
	}
	return codes
}
