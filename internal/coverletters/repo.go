package coverletters

import (
	"context"
	"time"
)

// CoverLettersRepo defines persistence operations for cover letters.
type CoverLettersRepo interface {
	Create(ctx context.Context, letter CoverLetter) error
	GetByID(ctx context.Context, letterID string) (CoverLetter, error)
	List(ctx context.Context, limit, offset int) ([]CoverLetter, error)
	MarkProcessing(ctx context.Context, letterID string, startedAt time.Time) error
	Complete(ctx context.Context, letterID, content, provider string, tokensUsed *int, elapsedSeconds float64, completedAt time.Time) error
	Fail(ctx context.Context, letterID, reason string, completedAt time.Time) error
}
