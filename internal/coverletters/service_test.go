package coverletters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"easyapply-backend/internal/generate"
	"easyapply-backend/internal/jobs"
	"easyapply-backend/internal/queue"
	"easyapply-backend/internal/resumes"
)

type fakeProvider struct {
	id   string
	text string
	err  error
}

func (p fakeProvider) ID() string { return p.id }

func (p fakeProvider) Complete(ctx context.Context, prompt string) (generate.Completion, error) {
	if p.err != nil {
		return generate.Completion{}, p.err
	}
	tokens := 256
	return generate.Completion{Text: p.text, TokensUsed: &tokens}, nil
}

type captureQueue struct {
	msgs []queue.Message
	err  error
}

func (q *captureQueue) Send(ctx context.Context, msg queue.Message) error {
	if q.err != nil {
		return q.err
	}
	q.msgs = append(q.msgs, msg)
	return nil
}

func setupService(t *testing.T, providers ...generate.Provider) (*Service, *MemoryRepo, string, string) {
	t.Helper()

	jobsRepo := jobs.NewMemoryRepo()
	title := "Backend Engineer"
	job := jobs.JobPosting{
		ID:         "job-1",
		RawContent: "Job Title: Backend Engineer",
		Fields:     jobs.JobFields{Title: &title, JobType: jobs.JobTypeUnknown},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := jobsRepo.Create(context.Background(), job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	resumesRepo := resumes.NewMemoryRepo()
	resume := resumes.Resume{
		ID:               "resume-1",
		OriginalFilename: "resume.pdf",
		FileType:         "pdf",
		ExtractedText:    "Jane Doe. Backend engineer with Go and Postgres experience.",
		UploadedAt:       time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	if err := resumesRepo.Create(context.Background(), resume); err != nil {
		t.Fatalf("create resume: %v", err)
	}

	repo := NewMemoryRepo()
	gen := generate.NewService(providers)
	gen.Warn = func(string, error) {}

	svc := &Service{
		Repo:      repo,
		Jobs:      jobsRepo,
		Resumes:   resumesRepo,
		Generator: gen,
	}
	return svc, repo, job.ID, resume.ID
}

func waitForTerminalStatus(t *testing.T, repo *MemoryRepo, letterID string) CoverLetter {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		letter, err := repo.GetByID(context.Background(), letterID)
		if err != nil {
			t.Fatalf("get cover letter: %v", err)
		}
		if letter.Status == StatusCompleted || letter.Status == StatusFailed {
			return letter
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("cover letter %s never reached a terminal status", letterID)
	return CoverLetter{}
}

func TestCreateQueuesAndCompletes(t *testing.T) {
	svc, repo, jobID, resumeID := setupService(t, fakeProvider{id: "model-a", text: "Dear Hiring Manager,"})

	letter, err := svc.Create(context.Background(), jobID, resumeID, generate.StyleProfessional)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if letter.Status != StatusQueued {
		t.Fatalf("expected initial status queued, got %s", letter.Status)
	}
	if letter.TemplateType != "professional" {
		t.Fatalf("expected template professional, got %s", letter.TemplateType)
	}

	got := waitForTerminalStatus(t, repo, letter.ID)
	if got.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (reason %q)", got.Status, got.FailureReason)
	}
	if got.Content != "Dear Hiring Manager," {
		t.Fatalf("unexpected content %q", got.Content)
	}
	if got.Provider != "model-a" {
		t.Fatalf("unexpected provider %q", got.Provider)
	}
	if got.TokensUsed == nil || *got.TokensUsed != 256 {
		t.Fatalf("unexpected tokens %v", got.TokensUsed)
	}
	if got.StartedAt == nil || got.CompletedAt == nil {
		t.Fatalf("expected started and completed timestamps, got %+v", got)
	}
}

func TestCreateNormalizesUnknownStyle(t *testing.T) {
	svc, _, jobID, resumeID := setupService(t, fakeProvider{id: "model-a", text: "letter"})

	letter, err := svc.Create(context.Background(), jobID, resumeID, generate.Style("whimsical"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if letter.TemplateType != "professional" {
		t.Fatalf("expected professional fallback, got %s", letter.TemplateType)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, jobID, resumeID := setupService(t, fakeProvider{id: "model-a", text: "letter"})

	if _, err := svc.Create(context.Background(), "", resumeID, generate.StyleProfessional); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty job id, got %v", err)
	}
	if _, err := svc.Create(context.Background(), jobID, "missing", generate.StyleProfessional); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected resume not found, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "missing", resumeID, generate.StyleProfessional); !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected job not found, got %v", err)
	}
}

func TestProcessRecordsFailureWhenAllProvidersFail(t *testing.T) {
	svc, repo, jobID, resumeID := setupService(t,
		fakeProvider{id: "model-a", err: errors.New("quota exhausted")},
		fakeProvider{id: "model-b", err: errors.New("timeout")},
	)

	letter := CoverLetter{
		ID:           "letter-1",
		JobID:        jobID,
		ResumeID:     resumeID,
		TemplateType: "professional",
		Status:       StatusQueued,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	err := svc.Process(context.Background(), letter.ID)
	if !errors.Is(err, generate.ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}

	got, err := repo.GetByID(context.Background(), letter.ID)
	if err != nil {
		t.Fatalf("get letter: %v", err)
	}
	if got.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", got.Status)
	}
	if got.FailureReason == "" || !strings.Contains(got.FailureReason, "exhausted") {
		t.Fatalf("unexpected failure reason %q", got.FailureReason)
	}
	if got.CompletedAt == nil {
		t.Fatalf("expected completed timestamp on failure")
	}
}

func TestProcessFailsWhenJobMissing(t *testing.T) {
	svc, repo, _, resumeID := setupService(t, fakeProvider{id: "model-a", text: "letter"})

	letter := CoverLetter{
		ID:           "letter-2",
		JobID:        "gone",
		ResumeID:     resumeID,
		TemplateType: "professional",
		Status:       StatusQueued,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), letter); err != nil {
		t.Fatalf("create letter: %v", err)
	}

	if err := svc.Process(context.Background(), letter.ID); !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected job not found, got %v", err)
	}

	got, _ := repo.GetByID(context.Background(), letter.ID)
	if got.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", got.Status)
	}
}

func TestProcessUnknownLetter(t *testing.T) {
	svc, _, _, _ := setupService(t, fakeProvider{id: "model-a", text: "letter"})

	if err := svc.Process(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateDispatchesToQueue(t *testing.T) {
	svc, repo, jobID, resumeID := setupService(t, fakeProvider{id: "model-a", text: "letter"})
	q := &captureQueue{}
	svc.Queue = q

	ctx := WithRequestID(context.Background(), "req-42")
	letter, err := svc.Create(ctx, jobID, resumeID, generate.StyleCreative)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(q.msgs) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(q.msgs))
	}
	msg := q.msgs[0]
	if msg.CoverLetterID != letter.ID {
		t.Fatalf("queued message id %q, want %q", msg.CoverLetterID, letter.ID)
	}
	if msg.RequestID != "req-42" {
		t.Fatalf("queued message request id %q", msg.RequestID)
	}
	if msg.Version != 1 {
		t.Fatalf("queued message version %d", msg.Version)
	}

	// With a queue configured, nothing runs inline.
	got, err := repo.GetByID(context.Background(), letter.ID)
	if err != nil {
		t.Fatalf("get letter: %v", err)
	}
	if got.Status != StatusQueued {
		t.Fatalf("expected letter to stay queued, got %s", got.Status)
	}
}

func TestCreateFallsBackWhenQueueSendFails(t *testing.T) {
	svc, repo, jobID, resumeID := setupService(t, fakeProvider{id: "model-a", text: "letter"})
	svc.Queue = &captureQueue{err: errors.New("sqs unavailable")}

	letter, err := svc.Create(context.Background(), jobID, resumeID, generate.StyleProfessional)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got := waitForTerminalStatus(t, repo, letter.ID)
	if got.Status != StatusCompleted {
		t.Fatalf("expected inline fallback to complete, got %s (reason %q)", got.Status, got.FailureReason)
	}
}
