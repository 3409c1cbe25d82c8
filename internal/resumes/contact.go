package resumes

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Phone formats in priority order; the first matching format wins.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s.\-]?\(?\d{1,4}\)?[\s.\-]?\d{3}[\s.\-]?\d{3,4}`),
		regexp.MustCompile(`\(\d{3}\)[\s.\-]?\d{3}[\s.\-]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[\s.\-]\d{3}[\s.\-]\d{4}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
	}

	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9\-_%]+`)
	githubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9\-_.]+`)

	zipLineRe = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
)

// scanContactInfo runs independent pattern scans over the full text. It is
// not section-gated; contact details commonly appear in headers and footers.
func scanContactInfo(raw string, lines []string) ContactInfo {
	var info ContactInfo

	if m := emailRe.FindString(raw); m != "" {
		info.Email = &m
	}
	for _, re := range phoneRes {
		if m := re.FindString(raw); m != "" {
			phone := strings.TrimSpace(m)
			info.Phone = &phone
			break
		}
	}
	if m := linkedinRe.FindString(raw); m != "" {
		info.LinkedIn = &m
	}
	if m := githubRe.FindString(raw); m != "" {
		info.GitHub = &m
	}

	// A line carrying a ZIP code is treated as the mailing address.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !zipLineRe.MatchString(trimmed) {
			continue
		}
		// Phone-only lines can contain 5-digit runs; skip them.
		if info.Phone != nil && strings.Contains(trimmed, *info.Phone) {
			continue
		}
		info.Address = &trimmed
		break
	}
	return info
}
