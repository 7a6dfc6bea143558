package types

import "encoding/json"

// ------------------------------
// Request Types
// ------------------------------

// CreateProjectRequest holds parameters for POST /projects/create.
// Description is applied only when the project is first created.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Attachment is a file submitted alongside a task. Content is UTF-8 text
// for text/code categories and base64 for image/pdf; the category (and
// with it the encoding) is inferred from the file name and MIME type,
// never supplied explicitly.
type Attachment struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"`
}

// CreateTaskRequest holds parameters for POST /tasks/create.
type CreateTaskRequest struct {
	Prompt         string          `json:"prompt"`
	MaxCredits     int             `json:"maxCredits"`
	ProjectID      int64           `json:"projectId"`
	Mode           ServiceMode     `json:"mode,omitempty"`
	TagID          int64           `json:"tagId,omitempty"`
	Metadata       Metadata        `json:"metadata,omitempty"`
	Attachments    []Attachment    `json:"attachments,omitempty"`
	IdempotencyKey string          `json:"idempotencyKey,omitempty"`
	ResponseSchema json.RawMessage `json:"responseSchema,omitempty"`
}
