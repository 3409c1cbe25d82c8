package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"easyapply-backend/internal/extract"
	"easyapply-backend/internal/shared/metrics"
	"easyapply-backend/internal/shared/storage/object"
	"easyapply-backend/internal/shared/telemetry"
	"easyapply-backend/internal/shared/util"
)

// Service contains business logic for resumes.
type Service struct {
	Repo  ResumesRepo
	Store object.ObjectStore
}

func allowedResumeExtension(ext string) bool {
	switch ext {
	case "pdf", "doc", "docx":
		return true
	}
	return false
}

// Upload validates the file, stores the binary, extracts its text, and
// attempts a structured parse. Extraction failures abort the upload; parse
// failures do not, the resume is kept with parsed = false so a later reparse
// can retry.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) (Resume, error) {
	if filename == "" {
		return Resume{}, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !allowedResumeExtension(ext) {
		return Resume{}, fmt.Errorf("%w: unsupported file type %q", ErrInvalidInput, ext)
	}
	if int64(len(content)) > extract.MaxFileSize {
		return Resume{}, fmt.Errorf("%w: file exceeds size limit", ErrInvalidInput)
	}
	if len(content) == 0 {
		return Resume{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	metrics.IncExtraction()
	text, err := extract.Text(ctx, extract.Document{
		Content:  content,
		Filename: filename,
		Size:     int64(len(content)),
	})
	if err != nil {
		metrics.IncExtractionFailed()
		return Resume{}, err
	}
	if len(text) < MinTextLength || len(text) > MaxTextLength {
		return Resume{}, fmt.Errorf("%w: %d characters", ErrTextLength, len(text))
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, "resumes", filename, bytes.NewReader(content))
	if err != nil {
		return Resume{}, fmt.Errorf("store resume: %w", err)
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:               uuid.NewString(),
		OriginalFilename: filename,
		FileType:         ext,
		MimeType:         mimeType,
		SizeBytes:        size,
		StorageKey:       storageKey,
		Checksum:         util.Checksum(content),
		ExtractedText:    text,
		UploadedAt:       now,
		UpdatedAt:        now,
	}
	resume.ParsedFields, resume.Parsed = s.parse(resume.ID, text)

	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}

	telemetry.Info("resumes.uploaded", map[string]any{
		"resume_id": resume.ID,
		"file_type": resume.FileType,
		"parsed":    resume.Parsed,
	})
	return resume, nil
}

// parse runs the structured parser, converting a failure into a logged miss.
func (s *Service) parse(resumeID, text string) (*ResumeFields, bool) {
	fields, err := ParseContent(text)
	if err != nil {
		metrics.IncResumeParseFailed()
		telemetry.Warn("resumes.parse_failed", map[string]any{
			"resume_id": resumeID,
			"err":       err.Error(),
		})
		return nil, false
	}
	return &fields, true
}

// Get returns a single resume.
func (s *Service) Get(ctx context.Context, resumeID string) (Resume, error) {
	if resumeID == "" {
		return Resume{}, fmt.Errorf("%w: resume id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, resumeID)
}

// List returns resumes newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Reparse re-runs the structured parser over the stored extracted text.
func (s *Service) Reparse(ctx context.Context, resumeID string) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if resume.ExtractedText == "" {
		return Resume{}, fmt.Errorf("%w: no extracted text to parse", ErrInvalidInput)
	}

	resume.ParsedFields, resume.Parsed = s.parse(resume.ID, resume.ExtractedText)
	resume.UpdatedAt = time.Now().UTC()

	if err := s.Repo.UpdateParse(ctx, resume.ID, resume.ParsedFields, resume.Parsed, resume.UpdatedAt); err != nil {
		return Resume{}, fmt.Errorf("update parse: %w", err)
	}
	return resume, nil
}

// Delete soft-deletes the resume record and removes the stored binary.
func (s *Service) Delete(ctx context.Context, resumeID string) error {
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return err
	}
	if err := s.Repo.SoftDelete(ctx, resumeID, time.Now().UTC()); err != nil {
		return err
	}
	if resume.StorageKey != "" {
		if err := s.Store.Delete(ctx, resume.StorageKey); err != nil && !errors.Is(err, context.Canceled) {
			telemetry.Warn("resumes.blob_delete_failed", map[string]any{
				"resume_id":   resumeID,
				"storage_key": resume.StorageKey,
				"err":         err.Error(),
			})
		}
	}
	return nil
}
