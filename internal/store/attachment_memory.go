package store

import (
	"context"
	"sync"
	"time"

	"redress/internal/utils"
	"redress/pkg/types"
)

type MemoryAttachmentStore struct {
	mu          sync.RWMutex
	attachments []types.Attachment
}

func NewMemoryAttachmentStore() *MemoryAttachmentStore {
	return &MemoryAttachmentStore{}
}

var _ AttachmentStore = (*MemoryAttachmentStore)(nil)

func (s *MemoryAttachmentStore) CreateAttachment(_ context.Context, attachment *types.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if attachment.ID == "" {
		attachment.ID = utils.NanoID()
	}
	if attachment.UploadedAt.IsZero() {
		attachment.UploadedAt = time.Now()
	}

	s.attachments = append(s.attachments, *attachment)
	return nil
}

func (s *MemoryAttachmentStore) Attachment(_ context.Context, attachmentID string) (*types.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.attachments {
		if a.ID == attachmentID {
			copied := a
			return &copied, nil
		}
	}

	return nil, types.ErrAttachmentNotFound
}

func (s *MemoryAttachmentStore) AttachmentsByGrievance(_ context.Context, grievanceID string) ([]types.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Attachment, 0)
	for _, a := range s.attachments {
		if a.GrievanceID == grievanceID {
			out = append(out, a)
		}
	}

	return out, nil
}

func (s *MemoryAttachmentStore) DeleteAttachment(_ context.Context, attachmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.attachments {
		if a.ID == attachmentID {
			s.attachments = append(s.attachments[:i], s.attachments[i+1:]...)
			return nil
		}
	}

	return types.ErrAttachmentNotFound
}

func (s *MemoryAttachmentStore) DeleteAttachmentsByGrievance(_ context.Context, grievanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.attachments[:0]
	for _, a := range s.attachments {
		if a.GrievanceID != grievanceID {
			kept = append(kept, a)
		}
	}
	s.attachments = kept

	return nil
}
