package generate

import (
	"context"
	"fmt"
	"math"

	"easyapply-backend/internal/jobs"
	"easyapply-backend/internal/shared/metrics"
	"easyapply-backend/internal/shared/telemetry"
)

// Request is the immutable input to a cover letter generation.
type Request struct {
	Job        jobs.JobFields
	ResumeText string
	Style      Style
}

// Result is a successful generation. ElapsedSeconds covers only the winning
// provider attempt, rounded to two decimals.
type Result struct {
	Text           string
	ProviderID     string
	TokensUsed     *int
	ElapsedSeconds float64
}

// Service generates cover letters with ordered provider failover. It holds
// no per-call mutable state; concurrent calls are independent.
type Service struct {
	Providers []Provider

	// Warn is invoked once per failed provider attempt. Defaults to a
	// telemetry warning when nil.
	Warn func(providerID string, err error)
}

// NewService constructs a Service over an ordered provider list.
func NewService(providers []Provider) *Service {
	return &Service{Providers: providers}
}

// CoverLetter builds the prompt and walks the provider list in order,
// returning the first provider's cleaned completion. When every provider
// fails it returns ErrAllProvidersFailed; there is no partial success.
func (s *Service) CoverLetter(ctx context.Context, req Request) (Result, error) {
	if len(s.Providers) == 0 {
		return Result{}, fmt.Errorf("%w: no providers configured", ErrAllProvidersFailed)
	}

	prompt := BuildPrompt(req.Style, req.Job, req.ResumeText)

	metrics.IncGeneration()
	completion, providerID, elapsed, err := tryProviders(ctx, s.Providers, prompt, s.warn)
	if err != nil {
		metrics.IncGenerationFailed()
		return Result{}, err
	}

	metrics.ObserveGenerationDurationMs(elapsed * 1000)
	return Result{
		Text:           completion.Text,
		ProviderID:     providerID,
		TokensUsed:     completion.TokensUsed,
		ElapsedSeconds: math.Round(elapsed*100) / 100,
	}, nil
}

func (s *Service) warn(providerID string, err error) {
	metrics.IncProviderFailover()
	if s.Warn != nil {
		s.Warn(providerID, err)
		return
	}
	telemetry.Warn("generate.provider_failed", map[string]any{
		"provider": providerID,
		"err":      err.Error(),
	})
}
