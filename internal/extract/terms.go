package extract

// Ordered search terms per semantic field, most specific first. FindAnswer
// tries every term for an exact question match before any substring match,
// so a generic term never shadows a specific one.
var (
	NameTerms = []string{
		"campaign name", "name of campaign", "name of the campaign", "campaign title", "project name",
	}

	BrandTerms = []string{
		"brand name", "company name", "organisation name", "organization name",
		"brand", "company", "organisation", "organization", "client",
	}

	ObjectiveTerms = []string{
		"campaign objective", "primary objective", "campaign goal", "marketing objective",
		"objective", "goal", "kpi",
	}

	CampaignTypeTerms = []string{
		"google campaign type", "campaign type", "ad format", "ad type",
	}

	GeographyTerms = []string{
		"target country", "target countries", "target location", "target locations",
		"target geography", "geographic targeting", "geography", "countries", "country",
		"target market", "location", "region",
	}

	LanguageTerms = []string{
		"target language", "ad language", "campaign language", "language", "locale",
	}

	AgeTerms = []string{
		"target age range", "age range", "target age", "audience age", "age group",
	}

	StartDateTerms = []string{
		"campaign start date", "start date", "launch date", "go live date", "go-live date",
		"start",
	}

	EndDateTerms = []string{
		"campaign end date", "end date", "finish date", "close date", "completion date",
	}

	BudgetTerms = []string{
		"total budget", "budget amount", "campaign budget", "overall budget", "media budget",
		"daily budget", "ad spend", "budget", "spend", "cost",
	}

	CurrencyTerms = []string{
		"budget currency", "currency code", "currency",
	}

	PeriodTerms = []string{
		"budget type", "budget period", "budget frequency", "daily or lifetime",
		"daily or total", "spend period", "pacing",
	}

	PlatformTerms = []string{
		"preferred channels", "preferred platforms", "advertising channels", "ad platforms",
		"channels", "platforms", "networks", "channel", "platform", "network",
	}
)
