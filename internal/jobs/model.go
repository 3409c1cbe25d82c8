package jobs

import "time"

// JobType classifies the employment arrangement of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
	JobTypeUnknown    JobType = "unknown"
)

// Experience level values produced by the extractor.
const (
	LevelJunior     = "Junior"
	LevelMidLevel   = "Mid-level"
	LevelSenior     = "Senior"
	LevelInternship = "Internship"
)

// JobFields holds the structured details derived from a posting's raw text.
// Every pointer field is optional; a nil value means the heuristics found
// nothing, which is a normal outcome for free-form postings.
type JobFields struct {
	Title           *string `json:"title"`
	Company         *string `json:"company"`
	Location        *string `json:"location"`
	JobType         JobType `json:"job_type"`
	SalaryRange     *string `json:"salary_range"`
	Requirements    *string `json:"requirements"`
	SkillsRequired  *string `json:"skills_required"`
	ExperienceLevel *string `json:"experience_level"`
}

// JobPosting is a stored posting: the raw text as submitted plus the fields
// extracted from it.
type JobPosting struct {
	ID             string
	RawContent     string
	Fields         JobFields
	SourceFilename string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
