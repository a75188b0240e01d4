package resumes

import "time"

// ResumeResponse is the outward-facing representation of a résumé.
type ResumeResponse struct {
	ResumeID    string     `json:"resumeId"`
	FileName    string     `json:"fileName"`
	MimeType    string     `json:"mimeType"`
	SizeBytes   int64      `json:"sizeBytes"`
	HasText     bool       `json:"hasText"`
	ExtractedAt *time.Time `json:"extractedAt,omitempty"`
	UploadedAt  time.Time  `json:"uploadedAt"`
}

func toResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:    r.ID,
		FileName:    r.FileName,
		MimeType:    r.MimeType,
		SizeBytes:   r.SizeBytes,
		HasText:     r.ExtractedTextKey != "",
		ExtractedAt: r.ExtractedAt,
		UploadedAt:  r.CreatedAt,
	}
}
