package model

import (
	"time"

	"github.com/google/uuid"
)

// FileType classifies order attachments.
type FileType string

const (
	FileTypeDesignMockup    FileType = "design_mockup"
	FileTypePrintFile       FileType = "print_file"
	FileTypeClientReference FileType = "client_reference"
)

// Attachment is file metadata stored alongside an order.
type Attachment struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	CompanyID  uuid.UUID
	FileType   FileType
	FileName   string
	URL        string
	UploadedBy uuid.UUID
	CreatedAt  time.Time
}

// Valid reports whether t is a known attachment type.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeDesignMockup, FileTypePrintFile, FileTypeClientReference:
		return true
	}
	return false
}
