package resumes

import "time"

// Extracted text outside this range is rejected as not a usable resume.
const (
	MinTextLength = 50
	MaxTextLength = 50000
)

// Resume is an uploaded resume: the stored file's metadata, its extracted
// text, and the structured fields when parsing succeeded.
type Resume struct {
	ID               string
	OriginalFilename string
	FileType         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	Checksum         string
	ExtractedText    string
	Parsed           bool
	ParsedFields     *ResumeFields
	UploadedAt       time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}
