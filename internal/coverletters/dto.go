package coverletters

import "time"

// CoverLetterResponse is the API representation of a cover letter.
type CoverLetterResponse struct {
	CoverLetterID  string     `json:"coverLetterId"`
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

func toResponse(letter CoverLetter) CoverLetterResponse {
	return CoverLetterResponse{
		CoverLetterID:  letter.ID,
		JobID:          letter.JobID,
		ResumeID:       letter.ResumeID,
		TemplateType:   letter.TemplateType,
		Status:         letter.Status,
		Content:        letter.Content,
		Provider:       letter.Provider,
		TokensUsed:     letter.TokensUsed,
		ElapsedSeconds: letter.ElapsedSeconds,
		FailureReason:  letter.FailureReason,
		CreatedAt:      letter.CreatedAt,
		StartedAt:      letter.StartedAt,
		CompletedAt:    letter.CompletedAt,
	}
}
