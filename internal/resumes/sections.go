package resumes

import "strings"

// Section is the parser's current position within a resume.
type Section int

const (
	SectionNone Section = iota
	SectionSummary
	SectionExperience
	SectionEducation
	SectionSkills
	SectionCertifications
	SectionProjects
)

func (s Section) String() string {
	switch s {
	case SectionSummary:
		return "summary"
	case SectionExperience:
		return "experience"
	case SectionEducation:
		return "education"
	case SectionSkills:
		return "skills"
	case SectionCertifications:
		return "certifications"
	case SectionProjects:
		return "projects"
	}
	return "none"
}

// sectionKeywords maps each section to the header phrases that open it.
// Headers are matched case-insensitively against the whole trimmed line,
// with trailing colons ignored.
var sectionKeywords = map[Section][]string{
	SectionSummary: {
		"summary", "professional summary", "executive summary",
		"profile", "professional profile", "career summary",
		"objective", "career objective",
	},
	SectionExperience: {
		"experience", "professional experience", "work experience",
		"employment", "work history", "career history",
	},
	SectionEducation: {
		"education", "academic background", "qualifications",
		"academic qualifications",
	},
	SectionSkills: {
		"skills", "technical skills", "core competencies",
		"technologies", "technical competencies",
	},
	SectionProjects: {
		"projects", "personal projects", "key projects",
		"notable projects",
	},
	SectionCertifications: {
		"certifications", "certificates", "professional certifications",
		"licenses",
	},
}

// sectionTransitions is the flattened transition table: normalized header
// line to next section. Built once from sectionKeywords.
var sectionTransitions = buildTransitions()

func buildTransitions() map[string]Section {
	table := make(map[string]Section)
	for section, keywords := range sectionKeywords {
		for _, kw := range keywords {
			table[kw] = section
		}
	}
	return table
}

// matchSection reports whether the line is a section header and which
// section it opens.
func matchSection(line string) (Section, bool) {
	normalized := strings.ToLower(strings.TrimSpace(line))
	normalized = strings.TrimRight(normalized, ":")
	normalized = strings.TrimSpace(normalized)
	section, ok := sectionTransitions[normalized]
	return section, ok
}
