package coverletters

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements CoverLettersRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, job_id, resume_id, template_type, status, content, provider, tokens_used, elapsed_seconds, failure_reason, created_at, started_at, completed_at`

// Create inserts a new cover letter in its initial state.
func (r *PGRepo) Create(ctx context.Context, letter CoverLetter) error {
	const query = `
INSERT INTO cover_letters (id, job_id, resume_id, template_type, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		letter.ID,
		letter.JobID,
		letter.ResumeID,
		letter.TemplateType,
		letter.Status,
		letter.CreatedAt,
	)
	return err
}

// GetByID returns a cover letter by ID.
func (r *PGRepo) GetByID(ctx context.Context, letterID string) (CoverLetter, error) {
	const query = `
SELECT ` + letterColumns + `
FROM cover_letters
WHERE id = $1
LIMIT 1`

	letter, err := scanLetter(r.DB.QueryRowContext(ctx, query, letterID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return letter, nil
}

// List returns cover letters newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]CoverLetter, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + letterColumns + `
FROM cover_letters
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CoverLetter
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, letter)
	}
	return out, rows.Err()
}

// MarkProcessing transitions a queued letter to processing.
func (r *PGRepo) MarkProcessing(ctx context.Context, letterID string, startedAt time.Time) error {
	const query = `
UPDATE cover_letters
SET status = $1, started_at = $2
WHERE id = $3`

	res, err := r.DB.ExecContext(ctx, query, StatusProcessing, startedAt, letterID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete stores a successful generation.
func (r *PGRepo) Complete(ctx context.Context, letterID, content, provider string, tokensUsed *int, elapsedSeconds float64, completedAt time.Time) error {
	const query = `
UPDATE cover_letters
SET status = $1, content = $2, provider = $3, tokens_used = $4, elapsed_seconds = $5, completed_at = $6
WHERE id = $7`

	res, err := r.DB.ExecContext(ctx, query, StatusCompleted, content, provider, nullIfNilInt(tokensUsed), elapsedSeconds, completedAt, letterID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Fail stores a failed generation with its reason.
func (r *PGRepo) Fail(ctx context.Context, letterID, reason string, completedAt time.Time) error {
	const query = `
UPDATE cover_letters
SET status = $1, failure_reason = $2, completed_at = $3
WHERE id = $4`

	res, err := r.DB.ExecContext(ctx, query, StatusFailed, reason, completedAt, letterID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLetter(row interface{ Scan(dest ...any) error }) (CoverLetter, error) {
	var (
		letter    CoverLetter
		content   sql.NullString
		provider  sql.NullString
		tokens    sql.NullInt64
		elapsed   sql.NullFloat64
		reason    sql.NullString
		started   sql.NullTime
		completed sql.NullTime
	)
	err := row.Scan(
		&letter.ID,
		&letter.JobID,
		&letter.ResumeID,
		&letter.TemplateType,
		&letter.Status,
		&content,
		&provider,
		&tokens,
		&elapsed,
		&reason,
		&letter.CreatedAt,
		&started,
		&completed,
	)
	if err != nil {
		return CoverLetter{}, err
	}
	if content.Valid {
		letter.Content = content.String
	}
	if provider.Valid {
		letter.Provider = provider.String
	}
	if tokens.Valid {
		n := int(tokens.Int64)
		letter.TokensUsed = &n
	}
	if elapsed.Valid {
		letter.ElapsedSeconds = &elapsed.Float64
	}
	if reason.Valid {
		letter.FailureReason = reason.String
	}
	if started.Valid {
		t := started.Time
		letter.StartedAt = &t
	}
	if completed.Valid {
		t := completed.Time
		letter.CompletedAt = &t
	}
	return letter, nil
}

func nullIfNilInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

var _ CoverLettersRepo = (*PGRepo)(nil)
