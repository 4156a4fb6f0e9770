package dto

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentResponse describes a stored attachment.
type AttachmentResponse struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	FileType   string    `json:"file_type"`
	FileName   string    `json:"file_name"`
	URL        string    `json:"url"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// UploadResponse is the stored attachment and the read paths to refresh.
type UploadResponse struct {
	Attachment AttachmentResponse `json:"attachment"`
	Refresh    []string           `json:"refresh"`
}
