package repository

import (
	"context"
	"sync"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/domain"
)

// MemoryRequestStore keeps emergency requests in process memory, in
// insertion order.
type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests []domain.EmergencyRequest
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{}
}

func (s *MemoryRequestStore) Create(_ context.Context, req *domain.EmergencyRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, *req)
	return nil
}

func (s *MemoryRequestStore) GetByID(_ context.Context, id string) (*domain.EmergencyRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.requests {
		if s.requests[i].ID == id {
			cp := s.requests[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (s *MemoryRequestStore) List(_ context.Context, filter domain.Filter) ([]domain.EmergencyRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.EmergencyRequest
	for i := range s.requests {
		if filter.Matches(&s.requests[i]) {
			out = append(out, s.requests[i])
		}
	}
	return out, nil
}

func (s *MemoryRequestStore) Update(_ context.Context, req *domain.EmergencyRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID == req.ID {
			s.requests[i] = *req
			return nil
		}
	}
	return domain.ErrRequestNotFound
}

func (s *MemoryRequestStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
