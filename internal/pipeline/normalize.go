package pipeline

import (
	"strings"

	"github.com/transformlabs/pulse/pkg/models"
)

// platformRule maps label fragments to a canonical platform. Rules are
// tested top to bottom and the first match wins, so a label containing
// several recognizable fragments ("Twitter / Instagram crosspost")
// always resolves to the earliest rule. Bare aliases ("x", "ig", "yt")
// match by token equality, not containment, to keep labels like
// "LinkedIn Video" from tripping over the single-letter alias.
type platformRule struct {
	substrings []string
	aliases    []string
	platform   models.Platform
}

var platformRules = []platformRule{
	{substrings: []string{"twitter", "x ("}, aliases: []string{"x"}, platform: models.PlatformTwitter},
	{substrings: []string{"linkedin", "linked"}, platform: models.PlatformLinkedin},
	{substrings: []string{"instagram"}, aliases: []string{"ig"}, platform: models.PlatformInstagram},
	{substrings: []string{"tiktok"}, platform: models.PlatformTiktok},
	{substrings: []string{"youtube"}, aliases: []string{"yt"}, platform: models.PlatformYoutube},
	{substrings: []string{"email"}, platform: models.PlatformEmail},
	{substrings: []string{"blog"}, platform: models.PlatformBlog},
}

// NormalizePlatform maps a free-text platform label to one of the
// canonical platform identifiers. Unrecognized labels become
// PlatformUnknown, never an error.
func NormalizePlatform(raw string) models.Platform {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range platformRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return rule.platform
			}
		}
		for _, alias := range rule.aliases {
			if lower == alias {
				return rule.platform
			}
		}
	}
	return models.PlatformUnknown
}

// NormalizeStatus maps a free-text status label to one of the three
// pipeline states. Anything not recognized as published or approved
// silently becomes draft: an unknown status is a classification
// default, not an error.
func NormalizeStatus(raw string) models.ContentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "published", "done", "complete":
		return models.StatusPublished
	case "approved", "ready":
		return models.StatusApproved
	default:
		return models.StatusDraft
	}
}
