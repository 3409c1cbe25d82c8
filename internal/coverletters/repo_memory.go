package coverletters

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores cover letters in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]CoverLetter
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]CoverLetter)}
}

// Create stores the cover letter.
func (r *MemoryRepo) Create(ctx context.Context, letter CoverLetter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[letter.ID] = letter
	return nil
}

// GetByID returns a cover letter by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, letterID string) (CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return CoverLetter{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	letter, ok := r.byID[letterID]
	if !ok {
		return CoverLetter{}, ErrNotFound
	}
	return letter, nil
}

// List returns cover letters newest-first with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]CoverLetter, error) {
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
	letters := make([]CoverLetter, 0, len(r.byID))
	for _, letter := range r.byID {
		letters = append(letters, letter)
	}
	r.mu.RUnlock()

	sort.Slice(letters, func(i, j int) bool {
		return letters[i].CreatedAt.After(letters[j].CreatedAt)
	})

	if offset >= len(letters) {
		return []CoverLetter{}, nil
	}
	end := len(letters)
	if offset+limit < end {
		end = offset + limit
	}
	return letters[offset:end], nil
}

// MarkProcessing transitions a queued letter to processing.
func (r *MemoryRepo) MarkProcessing(ctx context.Context, letterID string, startedAt time.Time) error {
	return r.update(ctx, letterID, func(letter *CoverLetter) {
		letter.Status = StatusProcessing
		letter.StartedAt = &startedAt
	})
}

// Complete stores a successful generation.
func (r *MemoryRepo) Complete(ctx context.Context, letterID, content, provider string, tokensUsed *int, elapsedSeconds float64, completedAt time.Time) error {
	return r.update(ctx, letterID, func(letter *CoverLetter) {
		letter.Status = StatusCompleted
		letter.Content = content
		letter.Provider = provider
		letter.TokensUsed = tokensUsed
		letter.ElapsedSeconds = &elapsedSeconds
		letter.CompletedAt = &completedAt
	})
}

// Fail stores a failed generation with its reason.
func (r *MemoryRepo) Fail(ctx context.Context, letterID, reason string, completedAt time.Time) error {
	return r.update(ctx, letterID, func(letter *CoverLetter) {
		letter.Status = StatusFailed
		letter.FailureReason = reason
		letter.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) update(ctx context.Context, letterID string, apply func(*CoverLetter)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.byID[letterID]
	if !ok {
		return ErrNotFound
	}
	apply(&letter)
	r.byID[letterID] = letter
	return nil
}

var _ CoverLettersRepo = (*MemoryRepo)(nil)
