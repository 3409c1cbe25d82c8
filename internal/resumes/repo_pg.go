package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements ResumesRepo using Postgres. Structured fields are kept
// as a JSONB column beside the extracted text.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, original_filename, file_type, mime_type, size_bytes, storage_key, checksum, extracted_text, parsed, parsed_fields, uploaded_at, updated_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (` + resumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	fieldsJSON, err := marshalFields(resume.ParsedFields)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.OriginalFilename,
		resume.FileType,
		nullIfEmpty(resume.MimeType),
		resume.SizeBytes,
		nullIfEmpty(resume.StorageKey),
		nullIfEmpty(resume.Checksum),
		nullIfEmpty(resume.ExtractedText),
		resume.Parsed,
		fieldsJSON,
		resume.UploadedAt,
		resume.UpdatedAt,
	)
	return err
}

// GetByID returns a resume by ID, excluding soft-deleted rows.
func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`

	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// List returns resumes newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
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
SELECT ` + resumeColumns + `
FROM resumes
WHERE deleted_at IS NULL
ORDER BY uploaded_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// UpdateParse stores the outcome of a (re)parse.
func (r *PGRepo) UpdateParse(ctx context.Context, resumeID string, fields *ResumeFields, parsed bool, updatedAt time.Time) error {
	const query = `
UPDATE resumes
SET parsed_fields = $1, parsed = $2, updated_at = $3
WHERE id = $4 AND deleted_at IS NULL`

	fieldsJSON, err := marshalFields(fields)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, fieldsJSON, parsed, updatedAt, resumeID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a resume deleted.
func (r *PGRepo) SoftDelete(ctx context.Context, resumeID string, deletedAt time.Time) error {
	const query = `
UPDATE resumes
SET deleted_at = $1, updated_at = $1
WHERE id = $2 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, deletedAt, resumeID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResume(row interface{ Scan(dest ...any) error }) (Resume, error) {
	var (
		resume     Resume
		mimeType   sql.NullString
		storageKey sql.NullString
		checksum   sql.NullString
		text       sql.NullString
		fieldsJSON []byte
	)
	err := row.Scan(
		&resume.ID,
		&resume.OriginalFilename,
		&resume.FileType,
		&mimeType,
		&resume.SizeBytes,
		&storageKey,
		&checksum,
		&text,
		&resume.Parsed,
		&fieldsJSON,
		&resume.UploadedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if mimeType.Valid {
		resume.MimeType = mimeType.String
	}
	if storageKey.Valid {
		resume.StorageKey = storageKey.String
	}
	if checksum.Valid {
		resume.Checksum = checksum.String
	}
	if text.Valid {
		resume.ExtractedText = text.String
	}
	if len(fieldsJSON) > 0 {
		var fields ResumeFields
		if err := json.Unmarshal(fieldsJSON, &fields); err != nil {
			return Resume{}, fmt.Errorf("decode parsed fields: %w", err)
		}
		resume.ParsedFields = &fields
	}
	return resume, nil
}

func marshalFields(fields *ResumeFields) (any, error) {
	if fields == nil {
		return nil, nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode parsed fields: %w", err)
	}
	return data, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ ResumesRepo = (*PGRepo)(nil)
