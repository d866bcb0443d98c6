package model

// Platform-native payloads. Field names and encodings match what each ad API
// expects so the submission collaborator can forward them unchanged.

// MetaCampaignParams is a Marketing API campaign + ad set payload
type MetaCampaignParams struct {
	Name                string        `json:"name"`
	Objective           string        `json:"objective"`
	Status              string        `json:"status"`
	SpecialAdCategories []string      `json:"special_ad_categories"`
	LifetimeBudget      int64         `json:"lifetime_budget,omitempty"` // cents
	DailyBudget         int64         `json:"daily_budget,omitempty"`    // cents
	StartTime           string        `json:"start_time,omitempty"`
	EndTime             string        `json:"end_time,omitempty"`
	Targeting           MetaTargeting `json:"targeting"`
}

// MetaTargeting is the ad set targeting spec
type MetaTargeting struct {
	GeoLocations       MetaGeoLocations `json:"geo_locations"`
	AgeMin             int              `json:"age_min,omitempty"`
	AgeMax             int              `json:"age_max,omitempty"`
	PublisherPlatforms []string         `json:"publisher_platforms,omitempty"`
}

// MetaGeoLocations lists targeted countries
type MetaGeoLocations struct {
	Countries []string `json:"countries,omitempty"`
}

// GoogleCampaignParams is a Google Ads campaign + budget payload
type GoogleCampaignParams struct {
	Name                   string               `json:"name"`
	AdvertisingChannelType string               `json:"advertising_channel_type"`
	Status                 string               `json:"status"`
	StartDate              string               `json:"start_date,omitempty"`
	EndDate                string               `json:"end_date,omitempty"`
	CampaignBudget         GoogleCampaignBudget `json:"campaign_budget"`
	GeoTargetCountries     []string             `json:"geo_target_countries,omitempty"`
	AgeMin                 int                  `json:"age_min,omitempty"`
	AgeMax                 int                  `json:"age_max,omitempty"`
}

// GoogleCampaignBudget carries the budget in micros
type GoogleCampaignBudget struct {
	AmountMicros      int64  `json:"amount_micros,omitempty"`
	TotalAmountMicros int64  `json:"total_amount_micros,omitempty"`
	DeliveryMethod    string `json:"delivery_method"`
	ExplicitlyShared  bool   `json:"explicitly_shared"`
	Period            string `json:"period"`
	CurrencyCode      string `json:"currency_code"`
}

// LinkedInCampaignParams is a Marketing API adCampaigns payload
type LinkedInCampaignParams struct {
	Name              string                    `json:"name"`
	Type              string                    `json:"type"`
	ObjectiveType     string                    `json:"objectiveType"`
	CostType          string                    `json:"costType"`
	Status            string                    `json:"status"`
	Locale            LinkedInLocale            `json:"locale"`
	DailyBudget       *LinkedInMoney            `json:"dailyBudget,omitempty"`
	TotalBudget       *LinkedInMoney            `json:"totalBudget,omitempty"`
	RunSchedule       *LinkedInRunSchedule      `json:"runSchedule,omitempty"`
	TargetingCriteria LinkedInTargetingCriteria `json:"targetingCriteria"`
}

// LinkedInLocale is the campaign interface locale
type LinkedInLocale struct {
	Country  string `json:"country"`
	Language string `json:"language"`
}

// LinkedInMoney is an amount as a fixed two-decimal string
type LinkedInMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// LinkedInRunSchedule uses epoch milliseconds
type LinkedInRunSchedule struct {
	Start int64 `json:"start"`
	End   int64 `json:"end,omitempty"`
}

// LinkedInTargetingCriteria is a reduced include-only criteria block
type LinkedInTargetingCriteria struct {
	Locations []string `json:"locations,omitempty"` // urn:li:geo:...
	AgeRanges []string `json:"ageRanges,omitempty"` // urn:li:ageRange:(25,34)
}

// TikTokCampaignParams is a Business API campaign + ad group payload
type TikTokCampaignParams struct {
	CampaignName      string   `json:"campaign_name"`
	ObjectiveType     string   `json:"objective_type"`
	OperationStatus   string   `json:"operation_status"`
	BudgetMode        string   `json:"budget_mode"`
	Budget            string   `json:"budget"`
	ScheduleType      string   `json:"schedule_type"`
	ScheduleStartTime string   `json:"schedule_start_time,omitempty"`
	ScheduleEndTime   string   `json:"schedule_end_time,omitempty"`
	AgeGroups         []string `json:"age_groups,omitempty"`
	LocationCodes     []string `json:"location_codes,omitempty"`
}
