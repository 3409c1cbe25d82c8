package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"easyapply-backend/internal/extract"
	"easyapply-backend/internal/shared/metrics"
	"easyapply-backend/internal/shared/telemetry"
)

// Service contains business logic for job postings.
type Service struct {
	Repo JobsRepo
}

// CreateFromText records a posting pasted as plain text, running the field
// extractor over it before persisting.
func (s *Service) CreateFromText(ctx context.Context, rawContent string) (JobPosting, error) {
	if strings.TrimSpace(rawContent) == "" {
		return JobPosting{}, fmt.Errorf("%w: raw content is empty", ErrInvalidInput)
	}
	return s.create(ctx, rawContent, "")
}

// CreateFromDocument extracts text from an uploaded posting document and
// records it like pasted text. The original binary is not retained.
func (s *Service) CreateFromDocument(ctx context.Context, doc extract.Document) (JobPosting, error) {
	if doc.Filename == "" {
		return JobPosting{}, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if !extract.SupportedExtension(doc.Filename) {
		return JobPosting{}, fmt.Errorf("%w: unsupported file type", ErrInvalidInput)
	}
	if doc.Size > extract.MaxFileSize {
		return JobPosting{}, fmt.Errorf("%w: file exceeds size limit", ErrInvalidInput)
	}

	metrics.IncExtraction()
	text, err := extract.Text(ctx, doc)
	if err != nil {
		metrics.IncExtractionFailed()
		return JobPosting{}, err
	}
	return s.create(ctx, text, doc.Filename)
}

func (s *Service) create(ctx context.Context, rawContent, sourceFilename string) (JobPosting, error) {
	now := time.Now().UTC()
	job := JobPosting{
		ID:             uuid.NewString(),
		RawContent:     rawContent,
		Fields:         ExtractDetails(rawContent),
		SourceFilename: sourceFilename,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return JobPosting{}, fmt.Errorf("create job posting: %w", err)
	}

	telemetry.Info("jobs.created", map[string]any{
		"job_id":    job.ID,
		"has_title": job.Fields.Title != nil,
		"job_type":  string(job.Fields.JobType),
	})
	return job, nil
}

// Get returns a single job posting.
func (s *Service) Get(ctx context.Context, jobID string) (JobPosting, error) {
	if jobID == "" {
		return JobPosting{}, fmt.Errorf("%w: job id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, jobID)
}

// List returns postings newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]JobPosting, error) {
	return s.Repo.List(ctx, limit, offset)
}
