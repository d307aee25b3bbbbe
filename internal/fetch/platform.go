package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Recognised platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// platformRules describes how to find the posting text on one job board
type platformRules struct {
	hostSuffixes []string
	content      []string
	noise        []string
}

var platforms = map[Platform]platformRules{
	PlatformGreenhouse: {
		hostSuffixes: []string{"greenhouse.io"},
		content:      []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:        []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hostSuffixes: []string{"lever.co"},
		content:      []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:        []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hostSuffixes: []string{"workday.com", "myworkdayjobs.com"},
		content:      []string{"[data-automation-id='jobDescription']", ".job-description", ".gwt-HTML"},
		noise:        []string{"[data-automation-id='applyButton']", ".application-section"},
	},
}

// commonNoise is removed from every job page: forms, EEO notices, share widgets, consent banners.
var commonNoise = []string{
	"form",
	".application-form",
	"#application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".voluntary-disclosure",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL's host.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for platform, rules := range platforms {
		for _, suffix := range rules.hostSuffixes {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns content selectors for platform, most specific first.
func ContentSelectors(platform Platform) []string {
	if rules, ok := platforms[platform]; ok {
		return append([]string(nil), rules.content...)
	}
	return JobPostingSelectors()
}

// NoiseSelectors returns selectors removed before extraction on platform.
func NoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonNoise...)
	if rules, ok := platforms[platform]; ok {
		out = append(out, rules.noise...)
	}
	return out
}
