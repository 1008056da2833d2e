package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
)

// MemoryUserStore keeps users in process memory, in insertion order.
// A single mutex makes every operation atomic per call.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) GetByCredentialName(_ context.Context, usernameOrEmail string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.ToLower(usernameOrEmail)
	for i := range s.users {
		u := &s.users[i]
		if strings.ToLower(u.Username) == name || strings.ToLower(u.Email) == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID == id {
			cp := s.users[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *MemoryUserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.ToLower(user.Username)
	email := strings.ToLower(user.Email)
	for i := range s.users {
		if strings.ToLower(s.users[i].Username) == username || strings.ToLower(s.users[i].Email) == email {
			return domain.ErrDuplicateUser
		}
	}

	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
