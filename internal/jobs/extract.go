package jobs

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractDetails derives structured posting fields from raw text. It is a
// pure function: the same input always produces the same JobFields, it
// performs no I/O, and it never fails — each field independently degrades to
// nil (or "unknown" for the job type) when no heuristic applies.
func ExtractDetails(raw string) JobFields {
	text := collapseWhitespace(raw)
	lower := strings.ToLower(text)

	return JobFields{
		Title:           extractTitle(raw, text),
		Company:         extractCompany(raw, text),
		Location:        extractLocation(raw),
		JobType:         extractJobType(lower),
		SalaryRange:     extractSalary(raw, text),
		Requirements:    extractRequirements(text),
		SkillsRequired:  extractSkills(text),
		ExperienceLevel: extractExperienceLevel(lower),
	}
}

// optional boxes a non-empty string; empty strings stay nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const (
	titleMinLen = 3
	titleMaxLen = 120
)

var (
	titleMarkerRules = []rule{
		{
			re:       regexp.MustCompile(`(?im)^\s*(?:job\s*title|position|role|title)\s*[:\-]\s*(.+)$`),
			post:     stripTitleSuffix,
			validate: lengthBetween(titleMinLen, titleMaxLen),
		},
	}
	titleNarrativeRules = []rule{
		{
			re:       regexp.MustCompile(`\b(?:is hiring|seeks|is seeking|looking for (?:an? |to hire an? ))\s*([A-Z][A-Za-z/&\- ]+?)(?:\.|,|\sto\b|\sin\b|$)`),
			validate: lengthBetween(titleMinLen, titleMaxLen),
		},
	}

	titleKeywords = []string{
		"manager", "engineer", "specialist", "assistant", "officer", "executive",
		"analyst", "consultant", "teacher", "nurse", "driver", "agent", "technician",
		"developer", "coordinator", "administrator",
	}
)

// stripTitleSuffix cuts trailing " - ", "@" and "|" qualifiers such as
// "Backend Engineer - Remote" or "Designer @ Acme".
func stripTitleSuffix(s string) string {
	for _, sep := range []string{" - ", "@", "|"} {
		if idx := strings.Index(s, sep); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

func extractTitle(raw, text string) *string {
	if title, ok := firstMatch(raw, titleMarkerRules); ok {
		return optional(title)
	}
	if title, ok := firstMatch(text, titleNarrativeRules); ok {
		return optional(title)
	}

	// Keyword fallback: a short leading line naming a common role.
	for _, line := range firstLines(raw, 5) {
		line = strings.TrimSpace(line)
		if line == "" || len(line) >= 50 {
			continue
		}
		lowerLine := strings.ToLower(line)
		if strings.HasPrefix(lowerLine, "about") || strings.HasPrefix(lowerLine, "we are") ||
			strings.HasPrefix(lowerLine, "location") || strings.HasPrefix(lowerLine, "employment") {
			continue
		}
		for _, kw := range titleKeywords {
			if strings.Contains(lowerLine, kw) {
				return optional(stripTitleSuffix(line))
			}
		}
	}
	return nil
}

const (
	companyMinLen = 3
	companyMaxLen = 60
)

var companyStopwords = map[string]struct{}{
	"remote": {}, "global": {}, "full-time": {}, "part-time": {}, "contract": {},
	"job": {}, "role": {}, "position": {}, "salary": {}, "location": {},
	"team": {}, "department": {}, "division": {}, "group": {},
}

func validCompany(s string) bool {
	if len(s) < companyMinLen || len(s) > companyMaxLen {
		return false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "company") {
		return false
	}
	for _, word := range strings.Fields(lower) {
		if _, stop := companyStopwords[strings.Trim(word, ".,")]; stop {
			return false
		}
	}
	return true
}

var (
	// The labeled marker is the only company rule anchored to the end of its
	// line; the narrative rules match substrings of the normalized text.
	companyMarkerRules = []rule{
		{
			re:       regexp.MustCompile(`(?im)^\s*(?:company|organization|employer)\s*[:\-]\s*(.+)$`),
			validate: validCompany,
		},
	}
	companyNarrativeRules = []rule{
		{
			re:       regexp.MustCompile(`\b(?:at|with)\s+([A-Z][A-Za-z0-9&.' ]{1,79}?)(?:\s+(?:is|seeks|invites)\b|[,.]|\s+-|$)`),
			validate: validCompany,
		},
		{
			re:       regexp.MustCompile(`([A-Z][A-Za-z0-9&.' ]{1,79}?)\s+(?:is\s+hiring|seeks\b|is\s+looking|invites\s+applications)`),
			validate: validCompany,
		},
		{
			re:       regexp.MustCompile(`\b(?:join|work\s+at)\s+([A-Z][A-Za-z0-9&.' ]{1,79}?)(?:'s)?\s+(?:team|crew)\b`),
			validate: validCompany,
		},
	}
)

func extractCompany(raw, text string) *string {
	if company, ok := firstMatch(raw, companyMarkerRules); ok {
		return optional(company)
	}
	if company, ok := firstMatch(text, companyNarrativeRules); ok {
		return optional(company)
	}
	return nil
}

var (
	locationMarkerRe  = regexp.MustCompile(`(?i)^\s*(?:location|based in|office in)\s*[:\-]\s*(.+)$`)
	remoteAnywhereRe  = regexp.MustCompile(`(?i)\b(?:remote|work from home|anywhere)\b`)
	locationCanonical = "Remote"
)

// extractLocation gives an explicit "Location:" line absolute priority over
// the remote-keyword fallback, so a posting that names an office but allows
// remote work keeps its concrete location.
func extractLocation(raw string) *string {
	for _, line := range firstLines(raw, 10) {
		if m := locationMarkerRe.FindStringSubmatch(line); m != nil {
			loc := strings.TrimSpace(m[1])
			if len(loc) > 3 && len(loc) < 100 {
				return optional(loc)
			}
		}
	}
	if remoteAnywhereRe.MatchString(raw) {
		return optional(locationCanonical)
	}
	return nil
}

var jobTypeClasses = []struct {
	re    *regexp.Regexp
	value JobType
}{
	{regexp.MustCompile(`\bfull.?time\b`), JobTypeFullTime},
	{regexp.MustCompile(`\bpart.?time\b`), JobTypePartTime},
	{regexp.MustCompile(`\b(?:contract|contractor|freelance)\b`), JobTypeContract},
	{regexp.MustCompile(`\b(?:intern|internship)\b`), JobTypeInternship},
	{regexp.MustCompile(`\b(?:remote|work from home)\b`), JobTypeRemote},
}

// extractJobType checks keyword classes in a fixed order; the first class
// with a hit wins even when later classes would also match.
func extractJobType(lower string) JobType {
	for _, class := range jobTypeClasses {
		if class.re.MatchString(lower) {
			return class.value
		}
	}
	return JobTypeUnknown
}

const currencyClass = `[$€£₦¥₹]`

var (
	salaryAmount = currencyClass + `\s?\d[\d,]*(?:\.\d{1,2})?`
	salaryRange  = salaryAmount + `(?:\s*[–-]\s*` + currencyClass + `?\s?\d[\d,]*(?:\.\d{1,2})?)?`
	salaryPeriod = `(?:\s*(?:per\s*(?:hour|week|month|year)|annually|/year|/hour|/month))?`

	hasDigit = regexp.MustCompile(`\d`)

	salaryRules = []rule{
		{
			re:       regexp.MustCompile(`(?i)(?:salary|compensation|pay)\s*(?:range)?\s*[:\-]?\s*(` + salaryRange + salaryPeriod + `)`),
			validate: validSalary,
		},
		{
			re:       regexp.MustCompile(`(?i)(` + salaryRange + salaryPeriod + `)`),
			validate: validSalary,
		},
		{
			re:       regexp.MustCompile(`(?i)(` + salaryAmount + `\s*/?\s*(?:hour|week|month|year|annum))`),
			validate: validSalary,
		},
	}
)

func validSalary(s string) bool {
	return len(s) >= 4 && len(s) <= 100 && hasDigit.MatchString(s)
}

func extractSalary(raw, text string) *string {
	// Compensation details live near the top of real postings; scanning the
	// lead lines keeps budget figures further down from being picked up.
	head := collapseWhitespace(strings.Join(firstLines(raw, 10), "\n"))
	if head == "" {
		head = text
	}
	if salary, ok := firstMatch(head, salaryRules); ok {
		return optional(salary)
	}
	return nil
}

var requirementsRules = []rule{
	{
		re:       regexp.MustCompile(`(?i)\b(?:requirements?|qualifications?|must have)\s*:\s*(.+)$`),
		validate: lengthBetween(11, 1<<20),
	},
	{
		re:       regexp.MustCompile(`(?i)\b(?:you should have|you need|required skills?|minimum requirements?)\s*:\s*(.+)$`),
		validate: lengthBetween(11, 1<<20),
	},
}

func extractRequirements(text string) *string {
	if req, ok := firstMatch(text, requirementsRules); ok {
		return optional(req)
	}
	return nil
}

var (
	experienceClasses = []struct {
		re    *regexp.Regexp
		value string
	}{
		{regexp.MustCompile(`\b(?:senior|lead|principal|architect)\b`), LevelSenior},
		{regexp.MustCompile(`\b(?:junior|entry.level|graduate|new grad)\b`), LevelJunior},
		{regexp.MustCompile(`\b(?:mid.level|intermediate|experienced)\b`), LevelMidLevel},
		{regexp.MustCompile(`\b(?:intern|internship)\b`), LevelInternship},
	}

	// No whitespace is allowed between the sign and the unit, so "3+ years"
	// stays unmatched while "3 years" and "5+years" hit.
	yearsRe = regexp.MustCompile(`(\d+)\s*[+\-]?(?:years?|yrs?)`)
)

// extractExperienceLevel prefers seniority keywords; the years-of-experience
// heuristic only runs when no keyword class matched.
func extractExperienceLevel(lower string) *string {
	for _, class := range experienceClasses {
		if class.re.MatchString(lower) {
			return optional(class.value)
		}
	}

	if m := yearsRe.FindStringSubmatch(lower); m != nil {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case years < 2:
				return optional(LevelJunior)
			case years <= 5:
				return optional(LevelMidLevel)
			default:
				return optional(LevelSenior)
			}
		}
	}
	return nil
}
