package domain

import (
	"time"

	"github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
)

// Emergency type constants
const (
	TypeFire    = "Fire"
	TypePolice  = "Police"
	TypeMedical = "Medical"
)

// Priority constants
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Status constants
const (
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusDeclined  = "Declined"
	StatusCompleted = "Completed"
)

// transitions is the status state machine. The original app accepted any
// status from any status; that was a bug, not a feature. Completed is
// terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusAccepted, StatusDeclined},
	StatusDeclined:  {StatusPending},
	StatusAccepted:  {StatusCompleted},
	StatusCompleted: {},
}

// CanTransition reports whether a status change is legal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsValidType(t string) bool {
	return t == TypeFire || t == TypePolice || t == TypeMedical
}

func IsValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

func IsValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// EmergencyRequest is a reported incident. Client and Responder are
// denormalized joins filled in at response time; only the id strings are
// stored.
type EmergencyRequest struct {
	ID          string             `json:"id"`
	ClientID    string             `json:"client_id"`
	ResponderID string             `json:"responder_id,omitempty"`
	Type        string             `json:"type"`
	Priority    string             `json:"priority"`
	Description string             `json:"description"`
	LocationLat float64            `json:"location_lat"`
	LocationLng float64            `json:"location_lng"`
	City        string             `json:"city"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Client      *domain.PublicUser `json:"client,omitempty"`
	Responder   *domain.PublicUser `json:"responder,omitempty"`
}

// Filter narrows List results. Empty fields match everything; set fields
// are combined with AND semantics and compared by exact equality.
type Filter struct {
	ClientID    string
	ResponderID string
	Status      string
}

// Matches reports whether the request satisfies every set filter field.
func (f Filter) Matches(r *EmergencyRequest) bool {
	if f.ClientID != "" && r.ClientID != f.ClientID {
		return false
	}
	if f.ResponderID != "" && r.ResponderID != f.ResponderID {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

// UpdateRequest carries a partial update. Nil pointers mean "leave alone".
type UpdateRequest struct {
	Status      *string `json:"status,omitempty"`
	ResponderID *string `json:"responder_id,omitempty"`
	Type        *string `json:"type,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Description *string `json:"description,omitempty"`
	City        *string `json:"city,omitempty"`
}
