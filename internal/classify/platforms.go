package classify

import (
	"regexp"
	"strings"

	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/model"
)

var (
	// Questions that may list ad channels. Others are never scanned so an
	// unrelated answer mentioning "Google" cannot request a platform.
	platformQuestionPattern = regexp.MustCompile(`(?i)channel|network|platform|preferred|social media|advertis`)

	// Questions whose unrecognised tokens still count as their own group.
	// "Preferred start date" is scanned for known platforms only.
	channelListPattern = regexp.MustCompile(`(?i)channel|network|platform|social media|advertis`)

	// An unrecognised token must look like a channel name to form a group
	channelNamePattern = regexp.MustCompile(`^[\p{L}][\p{L} &+.'/()-]{1,39}$`)
)

// ignoredTokens never form an allocation group
var ignoredTokens = map[string]bool{
	"other": true, "others": true, "none": true, "n/a": true, "na": true, "not sure": true,
	"unsure": true, "all": true, "any": true, "tbc": true, "tbd": true, "yes": true, "no": true,
	"social media": true, "social": true, "digital": true, "online": true, "paid social": true,
}

type platformRule struct {
	platform model.Platform
	pattern  *regexp.Regexp
}

// platformRules maps keywords to platforms, in draft order
var platformRules = []platformRule{
	{model.PlatformGoogle, wordPattern("google", "google ads", "adwords", "youtube", "gdn", "performance max", "pmax")},
	{model.PlatformMeta, wordPattern("facebook", "instagram", "messenger", "threads", "meta", "fb", "insta")},
	{model.PlatformLinkedIn, wordPattern("linkedin", "linked in", "professional network", "b2b")},
	{model.PlatformTikTok, wordPattern("tiktok", "tik tok")},
}

type familyRule struct {
	family  model.MetaFamily
	pattern *regexp.Regexp
}

var metaFamilyRules = []familyRule{
	{model.MetaFacebook, wordPattern("facebook", "fb")},
	{model.MetaInstagram, wordPattern("instagram", "insta")},
	{model.MetaMessenger, wordPattern("messenger")},
	{model.MetaThreads, wordPattern("threads")},
}

// wordPattern compiles a case-insensitive whole-word alternation
func wordPattern(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// DetectPlatforms determines which platforms a submission asks for and how
// many allocation groups share the budget.
func DetectPlatforms(formData []model.QAPair) model.PlatformDetection {
	var answers []string
	var tokens []string
	var groupTokens []string

	for _, qa := range formData {
		if !platformQuestionPattern.MatchString(qa.Question) {
			continue
		}
		answers = append(answers, qa.Answer)

		listTokens := extract.NormalizeList(qa.Answer)
		tokens = append(tokens, listTokens...)
		if channelListPattern.MatchString(qa.Question) {
			groupTokens = append(groupTokens, listTokens...)
			continue
		}
		for _, t := range listTokens {
			if len(tokenPlatforms(t)) > 0 {
				groupTokens = append(groupTokens, t)
			}
		}
	}

	detection := model.PlatformDetection{
		Requested: []model.Platform{},
		Groups:    GroupKeys(groupTokens),
		Tokens:    tokens,
	}
	detection.GroupCount = len(detection.Groups)

	for _, rule := range platformRules {
		for _, answer := range answers {
			if rule.pattern.MatchString(answer) {
				detection.Requested = append(detection.Requested, rule.platform)
				break
			}
		}
	}

	for _, rule := range metaFamilyRules {
		for _, answer := range answers {
			if rule.pattern.MatchString(answer) {
				detection.MetaFamily = append(detection.MetaFamily, rule.family)
				break
			}
		}
	}

	return detection
}

// IsPlatformRequested reports whether p is named in any channel answer
func IsPlatformRequested(formData []model.QAPair, p model.Platform) bool {
	return DetectPlatforms(formData).Has(p)
}

// CountPlatformGroups counts distinct allocation groups in a token list.
// Every Meta surface collapses into one "meta" group.
func CountPlatformGroups(tokens []string) int {
	return len(GroupKeys(tokens))
}

// GroupKeys returns distinct group keys in first-seen order. A token naming
// several platforms contributes to each, but no group is counted twice.
// Tokens naming no supported platform are their own group when they look
// like a channel name.
func GroupKeys(tokens []string) []string {
	seen := make(map[string]bool)
	keys := []string{}

	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	for _, raw := range tokens {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" || ignoredTokens[token] {
			continue
		}
		platforms := tokenPlatforms(token)
		if len(platforms) > 0 {
			for _, p := range platforms {
				add(string(p))
			}
			continue
		}
		if channelNamePattern.MatchString(token) {
			add(token)
		}
	}

	return keys
}

// GroupPlatform returns the supported platform owning a group key
func GroupPlatform(group string) (model.Platform, bool) {
	for _, p := range model.AllPlatforms {
		if string(p) == group {
			return p, true
		}
	}
	return "", false
}

func tokenPlatforms(token string) []model.Platform {
	var out []model.Platform
	for _, rule := range platformRules {
		if rule.pattern.MatchString(token) {
			out = append(out, rule.platform)
		}
	}
	return out
}

// MetaPublishers returns the Meta surfaces to place ads on. Naming only
// "Meta" defaults to Facebook and Instagram.
func MetaPublishers(d model.PlatformDetection) []string {
	if !d.Has(model.PlatformMeta) {
		return nil
	}
	if len(d.MetaFamily) == 0 {
		return []string{string(model.MetaFacebook), string(model.MetaInstagram)}
	}
	out := make([]string, len(d.MetaFamily))
	for i, f := range d.MetaFamily {
		out[i] = string(f)
	}
	return out
}
