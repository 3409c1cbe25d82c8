// Package openrouter implements generate.Provider against the OpenRouter
// chat completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"easyapply-backend/internal/generate"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"

	systemPrompt = "You are a professional career advisor specializing in writing compelling cover letters."

	maxTokens   = 800
	temperature = 0.7
	topP        = 1.0
)

// Client calls one OpenRouter model. The model identifier doubles as the
// provider ID reported in generation results.
type Client struct {
	Model   string
	APIKey  string
	BaseURL string

	httpClient *http.Client
}

// New constructs a client for the given model and credential. An empty
// credential is allowed; Complete then fails immediately so the failover
// moves on to the next provider.
func New(model, apiKey string) *Client {
	return &Client{
		Model:      model,
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// ID returns the model identifier.
func (c *Client) ID() string {
	return c.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

// Complete sends the prompt with fixed decoding parameters and returns the
// raw completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (generate.Completion, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return generate.Completion{}, errors.New("api key not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return generate.Completion{}, err
	}

	url := strings.TrimSuffix(c.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return generate.Completion{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return generate.Completion{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return generate.Completion{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return generate.Completion{}, fmt.Errorf("openrouter status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return generate.Completion{}, fmt.Errorf("openrouter response parse: %w", err)
	}
	if parsed.Error != nil {
		return generate.Completion{}, fmt.Errorf("openrouter error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return generate.Completion{}, errors.New("openrouter response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return generate.Completion{}, errors.New("openrouter response empty content")
	}

	completion := generate.Completion{Text: content}
	if parsed.Usage != nil {
		tokens := parsed.Usage.TotalTokens
		completion.TokensUsed = &tokens
	}
	return completion, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ generate.Provider = (*Client)(nil)
