package types

import "time"

// Attachment represents a file uploaded in association with a grievance.
type Attachment struct {
	ID          string    `db:"id" json:"id"`
	GrievanceID string    `db:"grievance_id" json:"grievance_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	StorageKey  string    `db:"storage_key" json:"-"`
	Description *string   `db:"description" json:"description,omitempty"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// Upload constraints enforced at the API boundary.
const (
	MaxUploadFiles    = 5
	MaxUploadFileSize = 10 << 20 // 10MB per file
)
