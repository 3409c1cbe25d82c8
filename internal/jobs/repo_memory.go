package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of JobsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]JobPosting
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]JobPosting)}
}

// Create stores a job posting.
func (r *MemoryRepo) Create(ctx context.Context, job JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

// GetByID returns a job posting by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return JobPosting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[jobID]
	if !ok {
		return JobPosting{}, ErrNotFound
	}
	return job, nil
}

// List returns job postings newest-first, honoring limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	jobs := make([]JobPosting, 0, len(r.data))
	for _, job := range r.data {
		jobs = append(jobs, job)
	}
	r.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	if offset >= len(jobs) {
		return []JobPosting{}, nil
	}
	end := len(jobs)
	if offset+limit < end {
		end = offset + limit
	}
	return jobs[offset:end], nil
}

var _ JobsRepo = (*MemoryRepo)(nil)
