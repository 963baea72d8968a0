package store

import (
	"context"
	"sync"
	"time"

	"redress/internal/utils"
	"redress/pkg/types"
)

// MemoryGrievanceStore keeps grievances in an insertion-ordered slice.
// Handlers run concurrently, so access is guarded by a RWMutex.
type MemoryGrievanceStore struct {
	mu         sync.RWMutex
	grievances []*types.Grievance
	byID       map[string]*types.Grievance
}

func NewMemoryGrievanceStore() *MemoryGrievanceStore {
	return &MemoryGrievanceStore{
		byID: make(map[string]*types.Grievance),
	}
}

var _ GrievanceStore = (*MemoryGrievanceStore)(nil)

func (s *MemoryGrievanceStore) CreateGrievance(_ context.Context, grievance *types.Grievance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if grievance.ID == "" {
		grievance.ID = utils.NanoID()
	}
	grievance.CreatedAt = now
	grievance.UpdatedAt = now

	stored := *grievance
	s.grievances = append(s.grievances, &stored)
	s.byID[stored.ID] = &stored

	return nil
}

func (s *MemoryGrievanceStore) Grievances(_ context.Context, filter types.GrievanceFilter) ([]*types.Grievance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Grievance, 0, len(s.grievances))
	for _, g := range s.grievances {
		if !matchesFilter(g, filter) {
			continue
		}
		copied := *g
		out = append(out, &copied)
	}

	return out, nil
}

func (s *MemoryGrievanceStore) Grievance(_ context.Context, grievanceID string) (*types.Grievance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.byID[grievanceID]
	if !ok {
		return nil, types.ErrGrievanceNotFound
	}

	copied := *g
	return &copied, nil
}

func (s *MemoryGrievanceStore) UpdateGrievanceStatus(_ context.Context, grievanceID string, status types.GrievanceStatus) (*types.Grievance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.byID[grievanceID]
	if !ok {
		return nil, types.ErrGrievanceNotFound
	}

	g.Status = status
	g.UpdatedAt = time.Now()

	copied := *g
	return &copied, nil
}

func matchesFilter(g *types.Grievance, filter types.GrievanceFilter) bool {
	if filter.Status != "" && string(g.Status) != filter.Status {
		return false
	}
	if filter.Category != "" && g.Category != filter.Category {
		return false
	}
	if filter.UserID != "" && utils.PtrString(g.UserID) != filter.UserID {
		return false
	}
	return true
}
