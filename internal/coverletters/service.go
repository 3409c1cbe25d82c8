package coverletters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"easyapply-backend/internal/generate"
	"easyapply-backend/internal/jobs"
	"easyapply-backend/internal/queue"
	"easyapply-backend/internal/resumes"
	"easyapply-backend/internal/shared/telemetry"
)

// Service contains business logic for cover letters. Generation runs after
// Create returns: through the queue when one is configured, otherwise on an
// in-process goroutine.
type Service struct {
	Repo      CoverLettersRepo
	Jobs      jobs.JobsRepo
	Resumes   resumes.ResumesRepo
	Generator *generate.Service
	Queue     queue.Client
}

// Create validates the referenced job and resume, records a queued cover
// letter, and kicks off asynchronous generation.
func (s *Service) Create(ctx context.Context, jobID, resumeID string, style generate.Style) (CoverLetter, error) {
	jobID = strings.TrimSpace(jobID)
	resumeID = strings.TrimSpace(resumeID)
	if jobID == "" || resumeID == "" {
		return CoverLetter{}, fmt.Errorf("%w: jobId and resumeId are required", ErrInvalidInput)
	}

	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return CoverLetter{}, fmt.Errorf("job %s: %w", jobID, err)
	}
	if _, err := s.Resumes.GetByID(ctx, resumeID); err != nil {
		return CoverLetter{}, fmt.Errorf("resume %s: %w", resumeID, err)
	}

	letter := CoverLetter{
		ID:           uuid.NewString(),
		JobID:        jobID,
		ResumeID:     resumeID,
		TemplateType: string(style.Normalize()),
		Status:       StatusQueued,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, letter); err != nil {
		return CoverLetter{}, err
	}

	telemetry.Info("coverletters.created", map[string]any{
		"request_id":      requestIDFromContext(ctx),
		"cover_letter_id": letter.ID,
		"job_id":          jobID,
		"resume_id":       resumeID,
		"template_type":   letter.TemplateType,
	})

	s.dispatch(ctx, letter.ID)

	return letter, nil
}

// Get returns a cover letter by ID.
func (s *Service) Get(ctx context.Context, letterID string) (CoverLetter, error) {
	if strings.TrimSpace(letterID) == "" {
		return CoverLetter{}, fmt.Errorf("%w: cover letter id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, letterID)
}

// List returns cover letters ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]CoverLetter, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) dispatch(ctx context.Context, letterID string) {
	if s.Queue != nil {
		msg := queue.Message{
			CoverLetterID: letterID,
			RequestID:     requestIDFromContext(ctx),
			EnqueuedAt:    time.Now().UTC().Format(time.RFC3339),
			Version:       1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			return
		}
		telemetry.Warn("coverletters.enqueue_failed", map[string]any{
			"cover_letter_id": letterID,
			"err":             err.Error(),
		})
	}
	go s.completeAsync(backgroundWithRequestID(ctx), letterID)
}

func (s *Service) completeAsync(ctx context.Context, letterID string) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, letterID, fmt.Errorf("panic: %v", r))
		}
	}()
	_ = s.Process(ctx, letterID)
}

// Process runs generation for a queued cover letter and records the outcome.
// Called by the worker for queued messages and by the in-process fallback.
func (s *Service) Process(ctx context.Context, letterID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.MarkProcessing(ctx, letterID, startedAt); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return s.fail(ctx, letterID, fmt.Errorf("set processing failed: %w", err))
	}

	letter, err := s.Repo.GetByID(ctx, letterID)
	if err != nil {
		return s.fail(ctx, letterID, fmt.Errorf("cover letter lookup: %w", err))
	}

	telemetry.Info("coverletters.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"cover_letter_id":   letter.ID,
		"job_id":            letter.JobID,
		"resume_id":         letter.ResumeID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	if s.Jobs == nil || s.Resumes == nil || s.Generator == nil {
		return s.fail(ctx, letterID, errors.New("missing generation dependencies"))
	}

	job, err := s.Jobs.GetByID(ctx, letter.JobID)
	if err != nil {
		return s.fail(ctx, letterID, fmt.Errorf("job lookup id=%s: %w", letter.JobID, err))
	}
	resume, err := s.Resumes.GetByID(ctx, letter.ResumeID)
	if err != nil {
		return s.fail(ctx, letterID, fmt.Errorf("resume lookup id=%s: %w", letter.ResumeID, err))
	}

	result, err := s.Generator.CoverLetter(ctx, generate.Request{
		Job:        job.Fields,
		ResumeText: resume.ExtractedText,
		Style:      generate.Style(letter.TemplateType),
	})
	if err != nil {
		return s.fail(ctx, letterID, err)
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, letterID, result.Text, result.ProviderID, result.TokensUsed, result.ElapsedSeconds, completedAt); err != nil {
		return s.fail(ctx, letterID, fmt.Errorf("store result failed: %w", err))
	}

	telemetry.Info("coverletters.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"cover_letter_id":   letter.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"provider":          result.ProviderID,
		"elapsed_seconds":   result.ElapsedSeconds,
	})
	return nil
}

func (s *Service) fail(ctx context.Context, letterID string, cause error) error {
	completedAt := time.Now().UTC()
	if err := s.Repo.Fail(ctx, letterID, cause.Error(), completedAt); err != nil {
		telemetry.Error("coverletters.fail_update_failed", map[string]any{
			"cover_letter_id": letterID,
			"err":             err.Error(),
		})
	}
	telemetry.Warn("coverletters.status", map[string]any{
		"request_id":      requestIDFromContext(ctx),
		"cover_letter_id": letterID,
		"status":          StatusFailed,
		"err":             cause.Error(),
	})
	return cause
}
