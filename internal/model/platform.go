package model

import (
	"fmt"
	"strings"
)

// Platform identifies an ad network the engine can draft campaigns for
type Platform string

const (
	PlatformGoogle   Platform = "google"
	PlatformMeta     Platform = "meta"
	PlatformLinkedIn Platform = "linkedin"
	PlatformTikTok   Platform = "tiktok"
)

// AllPlatforms lists supported platforms in draft order
var AllPlatforms = []Platform{PlatformGoogle, PlatformMeta, PlatformLinkedIn, PlatformTikTok}

// ParsePlatform converts a user-supplied name into a Platform
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "google", "google ads", "adwords":
		return PlatformGoogle, true
	case "meta", "facebook", "instagram", "messenger", "threads":
		return PlatformMeta, true
	case "linkedin", "linked in":
		return PlatformLinkedIn, true
	case "tiktok", "tik tok":
		return PlatformTikTok, true
	default:
		return "", false
	}
}

// ParsePlatformList reads a comma-separated list such as "meta,google",
// dropping duplicates
func ParsePlatformList(s string) ([]Platform, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Platform
	seen := make(map[Platform]bool)
	for _, name := range strings.Split(s, ",") {
		p, ok := ParsePlatform(name)
		if !ok {
			return nil, fmt.Errorf("unknown platform %q", strings.TrimSpace(name))
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// UnmarshalText accepts any name ParsePlatform knows, so decoded selections
// and override keys are validated and normalized ("facebook" becomes meta).
// An empty name decodes to the zero value.
func (p *Platform) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*p = ""
		return nil
	}
	parsed, ok := ParsePlatform(string(text))
	if !ok {
		return fmt.Errorf("unknown platform %q", string(text))
	}
	*p = parsed
	return nil
}

func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the human-facing platform name used in messages
func (p Platform) DisplayName() string {
	switch p {
	case PlatformGoogle:
		return "Google"
	case PlatformMeta:
		return "Meta"
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformTikTok:
		return "TikTok"
	default:
		return string(p)
	}
}

// MetaFamily is a Meta-owned surface. All of them share one allocation group.
type MetaFamily string

const (
	MetaFacebook  MetaFamily = "facebook"
	MetaInstagram MetaFamily = "instagram"
	MetaMessenger MetaFamily = "messenger"
	MetaThreads   MetaFamily = "threads"
)

// PlatformDetection is the classifier's view of which platforms a form asks for
type PlatformDetection struct {
	Requested  []Platform   `json:"requested"`             // Supported platforms named anywhere in scanned answers
	MetaFamily []MetaFamily `json:"meta_family,omitempty"` // Meta surfaces explicitly named
	Groups     []string     `json:"groups"`                // Distinct allocation group keys, first-seen order
	GroupCount int          `json:"group_count"`
	Tokens     []string     `json:"tokens,omitempty"` // Normalized answer tokens that were scanned
}

// Has reports whether p was requested
func (d PlatformDetection) Has(p Platform) bool {
	for _, r := range d.Requested {
		if r == p {
			return true
		}
	}
	return false
}
