package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements JobsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, raw_content, title, company, location, job_type, salary_range, requirements, skills_required, experience_level, source_filename, created_at, updated_at`

// Create inserts a new job posting with its extracted fields.
func (r *PGRepo) Create(ctx context.Context, job JobPosting) error {
	const query = `
INSERT INTO job_postings (` + jobColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	jobType := job.Fields.JobType
	if jobType == "" {
		jobType = JobTypeUnknown
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.RawContent,
		nullable(job.Fields.Title),
		nullable(job.Fields.Company),
		nullable(job.Fields.Location),
		string(jobType),
		nullable(job.Fields.SalaryRange),
		nullable(job.Fields.Requirements),
		nullable(job.Fields.SkillsRequired),
		nullable(job.Fields.ExperienceLevel),
		nullableString(job.SourceFilename),
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID returns a job posting by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (JobPosting, error) {
	const query = `
SELECT ` + jobColumns + `
FROM job_postings
WHERE id = $1
LIMIT 1`

	job, err := scanJob(r.DB.QueryRowContext(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobPosting{}, ErrNotFound
		}
		return JobPosting{}, err
	}
	return job, nil
}

// List returns job postings newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]JobPosting, error) {
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
SELECT ` + jobColumns + `
FROM job_postings
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (JobPosting, error) {
	var (
		job            JobPosting
		jobType        string
		title          sql.NullString
		company        sql.NullString
		location       sql.NullString
		salaryRange    sql.NullString
		requirements   sql.NullString
		skills         sql.NullString
		experience     sql.NullString
		sourceFilename sql.NullString
	)
	err := row.Scan(
		&job.ID,
		&job.RawContent,
		&title,
		&company,
		&location,
		&jobType,
		&salaryRange,
		&requirements,
		&skills,
		&experience,
		&sourceFilename,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return JobPosting{}, err
	}
	job.Fields = JobFields{
		Title:           fromNull(title),
		Company:         fromNull(company),
		Location:        fromNull(location),
		JobType:         JobType(jobType),
		SalaryRange:     fromNull(salaryRange),
		Requirements:    fromNull(requirements),
		SkillsRequired:  fromNull(skills),
		ExperienceLevel: fromNull(experience),
	}
	if sourceFilename.Valid {
		job.SourceFilename = sourceFilename.String
	}
	return job, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

var _ JobsRepo = (*PGRepo)(nil)
