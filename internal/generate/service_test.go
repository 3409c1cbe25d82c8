package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"easyapply-backend/internal/jobs"
)

type fakeProvider struct {
	id    string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (Completion, error) {
	f.calls++
	if f.err != nil {
		return Completion{}, f.err
	}
	tokens := 512
	return Completion{Text: f.text, TokensUsed: &tokens}, nil
}

func TestCoverLetterFailoverOrdering(t *testing.T) {
	first := &fakeProvider{id: "model-a", err: errors.New("rate limited")}
	second := &fakeProvider{id: "model-b", err: errors.New("auth failed")}
	third := &fakeProvider{id: "model-c", text: "Dear Hiring Manager, ..."}

	var warned []string
	svc := NewService([]Provider{first, second, third})
	svc.Warn = func(providerID string, err error) {
		warned = append(warned, providerID)
	}

	result, err := svc.CoverLetter(context.Background(), Request{ResumeText: "resume"})
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}
	if result.ProviderID != "model-c" {
		t.Errorf("providerId = %q, want model-c", result.ProviderID)
	}
	if len(warned) != 2 || warned[0] != "model-a" || warned[1] != "model-b" {
		t.Errorf("warnings = %v, want [model-a model-b]", warned)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 1 {
		t.Errorf("calls = %d/%d/%d, want one each", first.calls, second.calls, third.calls)
	}
	if result.TokensUsed == nil || *result.TokensUsed != 512 {
		t.Errorf("tokensUsed = %v, want 512", result.TokensUsed)
	}
	if result.ElapsedSeconds < 0 {
		t.Errorf("elapsedSeconds = %f", result.ElapsedSeconds)
	}
}

func TestCoverLetterAllProvidersFail(t *testing.T) {
	svc := NewService([]Provider{
		&fakeProvider{id: "model-a", err: errors.New("down")},
		&fakeProvider{id: "model-b", err: errors.New("down")},
	})
	svc.Warn = func(string, error) {}

	_, err := svc.CoverLetter(context.Background(), Request{})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("err = %v, want ErrAllProvidersFailed", err)
	}
}

func TestCoverLetterNoProviders(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.CoverLetter(context.Background(), Request{})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("err = %v, want ErrAllProvidersFailed", err)
	}
}

func TestCoverLetterStripsThinkTags(t *testing.T) {
	svc := NewService([]Provider{
		&fakeProvider{id: "model-a", text: "<think>reasoning</think>Dear Hiring Manager..."},
	})
	svc.Warn = func(string, error) {}

	result, err := svc.CoverLetter(context.Background(), Request{})
	if err != nil {
		t.Fatalf("CoverLetter: %v", err)
	}
	if result.Text != "Dear Hiring Manager..." {
		t.Errorf("text = %q", result.Text)
	}
	if strings.Contains(result.Text, "<think>") {
		t.Error("think tag survived cleanup")
	}
}

func TestCoverLetterEmptyAfterCleanupFails(t *testing.T) {
	var warned int
	svc := NewService([]Provider{
		&fakeProvider{id: "model-a", text: "<think>only reasoning</think>"},
	})
	svc.Warn = func(string, error) { warned++ }

	_, err := svc.CoverLetter(context.Background(), Request{})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("err = %v, want ErrAllProvidersFailed", err)
	}
	if warned != 1 {
		t.Errorf("warnings = %d, want 1", warned)
	}
}

func TestStripThinkTagsMultipleSpans(t *testing.T) {
	in := "<think>a</think>Hello<think>\nb\n</think> world"
	if got := stripThinkTags(in); got != "Hello world" {
		t.Errorf("got %q", got)
	}
}

func TestBuildPromptFillsMissingFields(t *testing.T) {
	title := "Data Scientist"
	prompt := BuildPrompt(StyleProfessional, jobs.JobFields{Title: &title, JobType: jobs.JobTypeUnknown}, "")

	if !strings.Contains(prompt, "Job title = Data Scientist") {
		t.Error("title not interpolated")
	}
	if !strings.Contains(prompt, "company name = Not specified") {
		t.Error("missing company not filled")
	}
	if !strings.Contains(prompt, "job_type = Not specified") {
		t.Error("unknown job type not filled")
	}
	if !strings.Contains(prompt, "No resume content provided") {
		t.Error("empty resume not filled")
	}
	if strings.Contains(prompt, "{") {
		t.Error("unreplaced placeholder left in prompt")
	}
}

func TestBuildPromptStyleSelection(t *testing.T) {
	professional := BuildPrompt(StyleProfessional, jobs.JobFields{}, "resume")
	creative := BuildPrompt(StyleCreative, jobs.JobFields{}, "resume")
	fallback := BuildPrompt(Style("bullet_point"), jobs.JobFields{}, "resume")

	if !strings.Contains(professional, "ATS-optimized") {
		t.Error("professional template not selected")
	}
	if !strings.Contains(creative, "story-driven") {
		t.Error("creative template not selected")
	}
	if fallback != professional {
		t.Error("unrecognized style did not fall back to professional")
	}
}
