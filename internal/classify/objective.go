package classify

import (
	"regexp"
	"strings"

	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/model"
)

// Canonical campaign objectives, mapped to each platform's own vocabulary
const (
	ObjectiveAwareness   = "awareness"
	ObjectiveTraffic     = "traffic"
	ObjectiveEngagement  = "engagement"
	ObjectiveLeads       = "leads"
	ObjectiveAppInstalls = "app_installs"
	ObjectiveVideoViews  = "video_views"
	ObjectiveSales       = "sales"
)

type objectiveRule struct {
	objective string
	pattern   *regexp.Regexp
}

// objectiveRules are checked in order; the first match wins. Narrow intents
// (app installs, video views) come before broad ones (awareness).
var objectiveRules = []objectiveRule{
	{ObjectiveAppInstalls, regexp.MustCompile(`(?i)\bapp\s+(?:installs?|downloads?|promotion)\b|\bdownloads?\b`)},
	{ObjectiveVideoViews, regexp.MustCompile(`(?i)\bvideo\s+views?\b|\bviews\b|\bwatch`)},
	{ObjectiveLeads, regexp.MustCompile(`(?i)\blead|\bsign[\s-]?ups?\b|\bregistrations?\b|\benquir|\binquir|\bcontact\s+form|\bdemo\s+requests?\b`)},
	{ObjectiveSales, regexp.MustCompile(`(?i)\bsales\b|\bconversions?\b|\bpurchases?\b|\brevenue\b|\broas\b|\be-?commerce\b|\bcheckouts?\b|\bbookings?\b`)},
	{ObjectiveTraffic, regexp.MustCompile(`(?i)\btraffic\b|\bwebsite\s+visits?\b|\bclicks?\b|\bvisits?\b|\blanding\s+page`)},
	{ObjectiveEngagement, regexp.MustCompile(`(?i)\bengagement\b|\blikes\b|\bcomments\b|\bshares\b|\bfollowers?\b|\bcommunity\b|\binteractions?\b`)},
	{ObjectiveAwareness, regexp.MustCompile(`(?i)\bawareness\b|\breach\b|\bbrand\b|\bvisibility\b|\bimpressions?\b|\brecall\b`)},
}

// ClassifyObjective maps a free-text objective answer to a canonical objective
func ClassifyObjective(answer string) (string, bool) {
	if strings.TrimSpace(answer) == "" {
		return "", false
	}
	for _, rule := range objectiveRules {
		if rule.pattern.MatchString(answer) {
			return rule.objective, true
		}
	}
	return "", false
}

// ObjectiveFromForm classifies the objective field of a submission
func ObjectiveFromForm(formData []model.QAPair) (string, bool) {
	return ClassifyObjective(extract.FindAnswer(formData, extract.ObjectiveTerms))
}

var platformObjectives = map[model.Platform]map[string]string{
	model.PlatformMeta: {
		ObjectiveAwareness:   "OUTCOME_AWARENESS",
		ObjectiveTraffic:     "OUTCOME_TRAFFIC",
		ObjectiveEngagement:  "OUTCOME_ENGAGEMENT",
		ObjectiveLeads:       "OUTCOME_LEADS",
		ObjectiveAppInstalls: "OUTCOME_APP_PROMOTION",
		ObjectiveVideoViews:  "OUTCOME_ENGAGEMENT",
		ObjectiveSales:       "OUTCOME_SALES",
	},
	model.PlatformLinkedIn: {
		ObjectiveAwareness:   "BRAND_AWARENESS",
		ObjectiveTraffic:     "WEBSITE_VISIT",
		ObjectiveEngagement:  "ENGAGEMENT",
		ObjectiveLeads:       "LEAD_GENERATION",
		ObjectiveAppInstalls: "WEBSITE_VISIT",
		ObjectiveVideoViews:  "VIDEO_VIEW",
		ObjectiveSales:       "WEBSITE_CONVERSION",
	},
	model.PlatformTikTok: {
		ObjectiveAwareness:   "REACH",
		ObjectiveTraffic:     "TRAFFIC",
		ObjectiveEngagement:  "ENGAGEMENT",
		ObjectiveLeads:       "LEAD_GENERATION",
		ObjectiveAppInstalls: "APP_PROMOTION",
		ObjectiveVideoViews:  "VIDEO_VIEWS",
		ObjectiveSales:       "WEB_CONVERSIONS",
	},
	model.PlatformGoogle: {
		ObjectiveAwareness:   GoogleDisplay,
		ObjectiveTraffic:     GoogleSearch,
		ObjectiveEngagement:  GoogleDisplay,
		ObjectiveLeads:       GoogleSearch,
		ObjectiveAppInstalls: GoogleMultiChannel,
		ObjectiveVideoViews:  GoogleVideo,
		ObjectiveSales:       GooglePerformanceMax,
	},
}

// PlatformObjective returns the platform-native code for a canonical
// objective. Unknown objectives map to the platform's traffic objective.
func PlatformObjective(p model.Platform, objective string) string {
	table, ok := platformObjectives[p]
	if !ok {
		return ""
	}
	if code, ok := table[objective]; ok {
		return code
	}
	return table[ObjectiveTraffic]
}

// Google Ads advertising channel types
const (
	GoogleSearch         = "SEARCH"
	GoogleDisplay        = "DISPLAY"
	GoogleVideo          = "VIDEO"
	GooglePerformanceMax = "PERFORMANCE_MAX"
	GoogleShopping       = "SHOPPING"
	GoogleMultiChannel   = "MULTI_CHANNEL"
)

var googleTypeRules = []struct {
	channelType string
	pattern     *regexp.Regexp
}{
	{GooglePerformanceMax, regexp.MustCompile(`(?i)\bperformance\s*max\b|\bpmax\b`)},
	{GoogleShopping, regexp.MustCompile(`(?i)\bshopping\b|\bproduct\s+listing`)},
	{GoogleVideo, regexp.MustCompile(`(?i)\byoutube\b|\bvideo\b`)},
	{GoogleDisplay, regexp.MustCompile(`(?i)\bdisplay\b|\bgdn\b|\bbanners?\b`)},
	{GoogleMultiChannel, regexp.MustCompile(`(?i)\bapp\s+campaign`)},
	{GoogleSearch, regexp.MustCompile(`(?i)\bsearch\b|\bppc\b|\bkeywords?\b|\btext\s+ads?\b`)},
}

// ClassifyGoogleCampaignType reads the Google channel type from an explicit
// campaign type answer, then from Google tokens in the channel answers
// ("Google Search", "YouTube").
func ClassifyGoogleCampaignType(formData []model.QAPair) (string, bool) {
	if answer := extract.FindAnswer(formData, extract.CampaignTypeTerms); answer != "" {
		if t, ok := ParseGoogleCampaignType(answer); ok {
			return t, true
		}
	}

	detection := DetectPlatforms(formData)
	for _, token := range detection.Tokens {
		if !containsPlatform(tokenPlatforms(token), model.PlatformGoogle) {
			continue
		}
		if t, ok := ParseGoogleCampaignType(token); ok {
			return t, true
		}
	}
	return "", false
}

// ParseGoogleCampaignType maps free text such as "YouTube" or "PMax" to a
// Google advertising channel type
func ParseGoogleCampaignType(s string) (string, bool) {
	for _, rule := range googleTypeRules {
		if rule.pattern.MatchString(s) {
			return rule.channelType, true
		}
	}
	return "", false
}

func containsPlatform(list []model.Platform, p model.Platform) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}
