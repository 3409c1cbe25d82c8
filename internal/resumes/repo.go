package resumes

import (
	"context"
	"time"
)

// ResumesRepo defines persistence operations for resumes.
type ResumesRepo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	List(ctx context.Context, limit, offset int) ([]Resume, error)
	UpdateParse(ctx context.Context, resumeID string, fields *ResumeFields, parsed bool, updatedAt time.Time) error
	SoftDelete(ctx context.Context, resumeID string, deletedAt time.Time) error
}
