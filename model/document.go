package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "pending"
	DocumentStatusProcessed DocumentStatus = "processed"
	DocumentStatusFailed    DocumentStatus = "failed"
)

// Document represents an uploaded source document
type Document struct {
	ID         int64          `json:"id"`
	RID        uuid.UUID      `json:"rid"`
	Filename   string         `json:"filename"`
	Size       int64          `json:"size"`
	PageCount  int            `json:"page_count"`
	WordCount  int            `json:"word_count"`
	Status     DocumentStatus `json:"status"`
	FailReason string         `json:"fail_reason,omitempty"`
	Metadata   Metadata       `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewDocument creates a pending document for the given upload.
// The RID is assigned here so chunks can reference the document
// before it is stored.
func NewDocument(filename string, size int64) *Document {
	return &Document{
		RID:      uuid.New(),
		Filename: filename,
		Size:     size,
		Status:   DocumentStatusPending,
		Metadata: Metadata{},
	}
}
