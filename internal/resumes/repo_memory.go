package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of ResumesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Resume)}
}

// Create stores a resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[resume.ID] = resume
	return nil
}

// GetByID returns a resume by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.data[resumeID]
	if !ok || resume.DeletedAt != nil {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// List returns resumes newest-first, honoring limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
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
	out := make([]Resume, 0, len(r.data))
	for _, resume := range r.data {
		if resume.DeletedAt == nil {
			out = append(out, resume)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	if offset >= len(out) {
		return []Resume{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// UpdateParse stores the outcome of a (re)parse.
func (r *MemoryRepo) UpdateParse(ctx context.Context, resumeID string, fields *ResumeFields, parsed bool, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.data[resumeID]
	if !ok || resume.DeletedAt != nil {
		return ErrNotFound
	}
	resume.ParsedFields = fields
	resume.Parsed = parsed
	resume.UpdatedAt = updatedAt
	r.data[resumeID] = resume
	return nil
}

// SoftDelete marks a resume deleted.
func (r *MemoryRepo) SoftDelete(ctx context.Context, resumeID string, deletedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.data[resumeID]
	if !ok || resume.DeletedAt != nil {
		return ErrNotFound
	}
	resume.DeletedAt = &deletedAt
	resume.UpdatedAt = deletedAt
	r.data[resumeID] = resume
	return nil
}

var _ ResumesRepo = (*MemoryRepo)(nil)
