package repository

import (
	"context"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/domain"
)

// RequestStore is the system of record for emergency requests. Each call is
// atomic with respect to every other call on the same store; List returns
// records in insertion order.
type RequestStore interface {
	Create(ctx context.Context, req *domain.EmergencyRequest) error
	GetByID(ctx context.Context, id string) (*domain.EmergencyRequest, error)
	List(ctx context.Context, filter domain.Filter) ([]domain.EmergencyRequest, error)
	// Update replaces the stored record with the given one. The service
	// layer performs the field merge and updated_at refresh.
	Update(ctx context.Context, req *domain.EmergencyRequest) error
	Delete(ctx context.Context, id string) (bool, error)
}
