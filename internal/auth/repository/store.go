package repository

import (
	"context"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
)

// UserStore is the system of record for accounts. Each call is atomic with
// respect to every other call on the same store.
type UserStore interface {
	// GetByCredentialName matches username or email case-insensitively and
	// returns the first match in insertion order.
	GetByCredentialName(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Delete reports whether a record was removed. It never cascades into
	// emergency requests; dangling references are resolved to null
	// sub-objects at read time.
	Delete(ctx context.Context, id string) (bool, error)
}
