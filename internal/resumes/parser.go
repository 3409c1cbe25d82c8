package resumes

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	inlineSkillsRe = regexp.MustCompile(`(?i)^(?:technical\s+)?skills\s*:\s*(.+)$`)
	yearRe         = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	durationRe     = regexp.MustCompile(`(?i)((?:19|20)\d{2})(?:\s*(?:[-–]|to)\s*((?:19|20)\d{2}|present|current))?`)
)

// ParseContent turns extracted resume text into structured fields. The scan
// is a single top-to-bottom pass over the lines, switching sections when a
// line matches a section header. Any internal panic is converted into
// ErrParseFailed and all partial results are discarded; callers get either a
// complete parse or none of it.
func ParseContent(raw string) (fields ResumeFields, err error) {
	defer func() {
		if r := recover(); r != nil {
			fields = ResumeFields{}
			err = fmt.Errorf("%w: %v", ErrParseFailed, r)
		}
	}()

	lines := strings.Split(raw, "\n")

	fields.FullName = extractFullName(lines)
	fields.ContactInfo = scanContactInfo(raw, lines)

	var summaryParts []string
	section := SectionNone

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if next, ok := matchSection(trimmed); ok {
			section = next
			continue
		}
		if trimmed == "" {
			continue
		}

		// Inline skill lists count regardless of the current section.
		if m := inlineSkillsRe.FindStringSubmatch(trimmed); m != nil {
			fields.Skills = append(fields.Skills, splitList(m[1])...)
			continue
		}

		switch section {
		case SectionSummary:
			summaryParts = append(summaryParts, trimmed)
		case SectionSkills:
			fields.Skills = append(fields.Skills, splitList(stripBullet(trimmed))...)
		case SectionExperience:
			if yearRe.MatchString(trimmed) {
				fields.WorkExperience = append(fields.WorkExperience, newExperienceEntry(trimmed))
			} else if isBullet(trimmed) && len(fields.WorkExperience) > 0 {
				last := &fields.WorkExperience[len(fields.WorkExperience)-1]
				last.Description = append(last.Description, stripBullet(trimmed))
			}
		case SectionEducation:
			if yearRe.MatchString(trimmed) {
				fields.Education = append(fields.Education, newEducationEntry(trimmed))
			}
		case SectionCertifications:
			fields.Certifications = append(fields.Certifications, stripBullet(trimmed))
		case SectionProjects:
			if isBullet(trimmed) {
				if len(fields.Projects) > 0 {
					last := &fields.Projects[len(fields.Projects)-1]
					last.Description = append(last.Description, stripBullet(trimmed))
				}
			} else {
				fields.Projects = append(fields.Projects, ProjectEntry{Name: trimmed})
			}
		}
	}

	if len(summaryParts) > 0 {
		summary := strings.Join(summaryParts, " ")
		fields.Summary = &summary
	}
	return fields, nil
}

// extractFullName picks the first short line of 2 to 4 alphabetic words
// within the first 10 lines that is not a section header.
func extractFullName(lines []string) *string {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if _, header := matchSection(trimmed); header {
			continue
		}
		words := strings.Fields(trimmed)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if !allAlphabetic(words) {
			continue
		}
		return &trimmed
	}
	return nil
}

func allAlphabetic(words []string) bool {
	for _, word := range words {
		for _, r := range word {
			if !unicode.IsLetter(r) && r != '.' && r != '-' && r != '\'' {
				return false
			}
		}
	}
	return true
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") ||
		strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ")
}

func stripBullet(line string) string {
	line = strings.TrimPrefix(line, "•")
	line = strings.TrimPrefix(line, "- ")
	line = strings.TrimPrefix(line, "* ")
	return strings.TrimSpace(line)
}

// splitList cuts a list-ish line on commas, pipes and bullet dots.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == '•'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// newExperienceEntry starts a work history record from a line carrying a
// 4-digit year. The year span becomes the duration; the remainder is split
// into title and company on common separators.
func newExperienceEntry(line string) ExperienceEntry {
	entry := ExperienceEntry{Duration: strings.TrimSpace(durationRe.FindString(line))}

	rest := durationRe.ReplaceAllString(line, "")
	rest = strings.Trim(rest, " \t|,-–()")

	title, company := splitTitleCompany(rest)
	entry.Title = title
	entry.Company = company
	return entry
}

func splitTitleCompany(s string) (string, string) {
	for _, sep := range []string{" at ", " @ ", " | ", ", ", " - "} {
		if idx := strings.Index(s, sep); idx > 0 {
			return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):])
		}
	}
	return strings.TrimSpace(s), ""
}

// newEducationEntry builds an education record from a year-bearing line.
func newEducationEntry(line string) EducationEntry {
	entry := EducationEntry{Year: yearRe.FindString(line)}

	rest := yearRe.ReplaceAllString(line, "")
	rest = strings.Trim(rest, " \t|,-–()")

	degree, institution := splitTitleCompany(rest)
	entry.Degree = degree
	entry.Institution = institution
	return entry
}
