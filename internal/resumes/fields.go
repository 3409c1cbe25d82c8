package resumes

// ContactInfo holds contact details scanned from the whole resume text.
// Every field is optional.
type ContactInfo struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

// ExperienceEntry is one work history record.
type ExperienceEntry struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

// EducationEntry is one education record.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ProjectEntry is one project record.
type ProjectEntry struct {
	Name        string   `json:"name"`
	Description []string `json:"description"`
}

// ResumeFields is the structured view of a parsed resume. Slices keep the
// order the items appeared in; duplicates are not removed.
type ResumeFields struct {
	FullName       *string           `json:"fullName"`
	Summary        *string           `json:"summary"`
	ContactInfo    ContactInfo       `json:"contactInfo"`
	Skills         []string          `json:"skills"`
	WorkExperience []ExperienceEntry `json:"workExperience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications"`
	Projects       []ProjectEntry    `json:"projects"`
}
