package store

import (
	"context"

	"redress/pkg/types"
)

// GrievanceStore holds grievance records. The postgres implementation
// backs production; the memory implementation backs tests and db-less
// development runs. Grievances are never deleted.
type GrievanceStore interface {
	CreateGrievance(ctx context.Context, grievance *types.Grievance) error
	Grievances(ctx context.Context, filter types.GrievanceFilter) ([]*types.Grievance, error)
	Grievance(ctx context.Context, grievanceID string) (*types.Grievance, error)
	UpdateGrievanceStatus(ctx context.Context, grievanceID string, status types.GrievanceStatus) (*types.Grievance, error)
}

// AttachmentStore holds attachment metadata. The bytes themselves live
// in a storage.Storage backend keyed by StorageKey.
type AttachmentStore interface {
	CreateAttachment(ctx context.Context, attachment *types.Attachment) error
	Attachment(ctx context.Context, attachmentID string) (*types.Attachment, error)
	AttachmentsByGrievance(ctx context.Context, grievanceID string) ([]types.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
	DeleteAttachmentsByGrievance(ctx context.Context, grievanceID string) error
}
