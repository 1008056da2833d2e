// Package events carries store mutations to connected dashboards. Every
// create/update/delete on the emergency request store publishes an Event;
// the SSE stream handler subscribes and forwards them.
package events

import (
	"context"
	"time"
)

// Event types
const (
	TypeRequestCreated = "request.created"
	TypeRequestUpdated = "request.updated"
	TypeRequestDeleted = "request.deleted"
)

// Event describes one emergency request mutation.
type Event struct {
	Type          string    `json:"type"`
	RequestID     string    `json:"request_id"`
	Status        string    `json:"status,omitempty"`
	City          string    `json:"city,omitempty"`
	EmergencyType string    `json:"emergency_type,omitempty"`
	At            time.Time `json:"at"`
}

// Bus fans events out to subscribers. Publish never blocks on slow
// subscribers; delivery is best-effort.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe returns a channel of events and a cancel function that
	// releases the subscription. The channel is closed on cancel.
	Subscribe(ctx context.Context) (<-chan Event, func())
}
