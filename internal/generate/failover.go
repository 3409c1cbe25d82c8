package generate

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrAllProvidersFailed is the single aggregate failure the failover exposes.
// Individual provider errors are reported through the warn callback only.
var ErrAllProvidersFailed = errors.New("all providers exhausted")

var thinkTagRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// stripThinkTags removes reasoning-trace spans some models emit before the
// actual answer.
func stripThinkTags(text string) string {
	return strings.TrimSpace(thinkTagRe.ReplaceAllString(text, ""))
}

// tryProviders walks the provider list in order and returns the first usable
// completion, the winning provider's ID, and the wall-clock seconds the
// winning attempt took. Each failed provider triggers exactly one warn call
// and is never retried. A completion that is empty after think-tag cleanup
// counts as a failure of that provider.
func tryProviders(ctx context.Context, providers []Provider, prompt string, warn func(providerID string, err error)) (Completion, string, float64, error) {
	for _, provider := range providers {
		start := time.Now()
		completion, err := provider.Complete(ctx, prompt)
		if err != nil {
			warn(provider.ID(), err)
			continue
		}

		completion.Text = stripThinkTags(completion.Text)
		if completion.Text == "" {
			warn(provider.ID(), errors.New("empty completion after cleanup"))
			continue
		}
		return completion, provider.ID(), time.Since(start).Seconds(), nil
	}
	return Completion{}, "", 0, ErrAllProvidersFailed
}
