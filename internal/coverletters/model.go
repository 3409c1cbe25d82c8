package coverletters

import "time"

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// CoverLetter is a generation request and, once processed, its outcome.
// Content, Provider, TokensUsed and ElapsedSeconds are set only on
// completion; FailureReason only on failure.
type CoverLetter struct {
	ID             string     `json:"id"`
	JobID          string     `json:"jobId"`
	ResumeID       string     `json:"resumeId"`
	TemplateType   string     `json:"templateType"`
	Status         string     `json:"status"`
	Content        string     `json:"content,omitempty"`
	Provider       string     `json:"provider,omitempty"`
	TokensUsed     *int       `json:"tokensUsed,omitempty"`
	ElapsedSeconds *float64   `json:"elapsedSeconds,omitempty"`
	FailureReason  string     `json:"failureReason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}
