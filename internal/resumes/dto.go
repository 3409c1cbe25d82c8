package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID         string        `json:"resumeId"`
	OriginalFilename string        `json:"originalFilename"`
	FileType         string        `json:"fileType"`
	SizeBytes        int64         `json:"sizeBytes"`
	Parsed           bool          `json:"parsed"`
	ParsedFields     *ResumeFields `json:"parsedFields,omitempty"`
	UploadedAt       time.Time     `json:"uploadedAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// ResumeListItem is the compact listing representation.
type ResumeListItem struct {
	ResumeID         string    `json:"resumeId"`
	OriginalFilename string    `json:"originalFilename"`
	FileType         string    `json:"fileType"`
	FullName         *string   `json:"fullName"`
	Parsed           bool      `json:"parsed"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

func toResponse(resume Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:         resume.ID,
		OriginalFilename: resume.OriginalFilename,
		FileType:         resume.FileType,
		SizeBytes:        resume.SizeBytes,
		Parsed:           resume.Parsed,
		ParsedFields:     resume.ParsedFields,
		UploadedAt:       resume.UploadedAt,
		UpdatedAt:        resume.UpdatedAt,
	}
}

func toListItem(resume Resume) ResumeListItem {
	item := ResumeListItem{
		ResumeID:         resume.ID,
		OriginalFilename: resume.OriginalFilename,
		FileType:         resume.FileType,
		Parsed:           resume.Parsed,
		UploadedAt:       resume.UploadedAt,
	}
	if resume.ParsedFields != nil {
		item.FullName = resume.ParsedFields.FullName
	}
	return item
}
