package jobs

import "time"

// JobResponse is the outward-facing representation of a job posting.
type JobResponse struct {
	JobID           string    `json:"jobId"`
	Title           *string   `json:"title"`
	Company         *string   `json:"company"`
	Location        *string   `json:"location"`
	JobType         string    `json:"jobType"`
	SalaryRange     *string   `json:"salaryRange"`
	Requirements    *string   `json:"requirements"`
	SkillsRequired  *string   `json:"skillsRequired"`
	ExperienceLevel *string   `json:"experienceLevel"`
	SourceFilename  string    `json:"sourceFilename,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toResponse(job JobPosting) JobResponse {
	return JobResponse{
		JobID:           job.ID,
		Title:           job.Fields.Title,
		Company:         job.Fields.Company,
		Location:        job.Fields.Location,
		JobType:         string(job.Fields.JobType),
		SalaryRange:     job.Fields.SalaryRange,
		Requirements:    job.Fields.Requirements,
		SkillsRequired:  job.Fields.SkillsRequired,
		ExperienceLevel: job.Fields.ExperienceLevel,
		SourceFilename:  job.SourceFilename,
		CreatedAt:       job.CreatedAt,
	}
}
