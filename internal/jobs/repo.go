package jobs

import "context"

// JobsRepo defines persistence operations for job postings.
type JobsRepo interface {
	Create(ctx context.Context, job JobPosting) error
	GetByID(ctx context.Context, jobID string) (JobPosting, error)
	List(ctx context.Context, limit, offset int) ([]JobPosting, error)
}
