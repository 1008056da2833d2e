package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
	authrepo "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/repository"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/domain"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/repository"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/events"
)

// Caller is the authenticated identity performing an operation.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) isAdmin() bool     { return c.Role == authdomain.RoleAdmin }
func (c Caller) isResponder() bool { return c.Role == authdomain.RoleResponder }
func (c Caller) isClient() bool    { return c.Role == authdomain.RoleClient }

// DispatchService owns the emergency request lifecycle: creation, role-scoped
// listing with denormalized user joins, state-machine-checked updates, and
// deletion. Every mutation publishes an event on the bus.
type DispatchService struct {
	requests repository.RequestStore
	users    authrepo.UserStore
	bus      events.Bus
}

func NewDispatchService(requests repository.RequestStore, users authrepo.UserStore, bus events.Bus) *DispatchService {
	return &DispatchService{requests: requests, users: users, bus: bus}
}

// Create validates and stores a new incident with status Pending. Clients
// may only file for themselves; admins may file on a client's behalf.
func (s *DispatchService) Create(ctx context.Context, caller Caller, req *domain.CreateRequest) (*domain.EmergencyRequest, error) {
	if req.ClientID == "" && caller.isClient() {
		req.ClientID = caller.ID
	}
	if req.ClientID == "" || req.Type == "" || req.Priority == "" ||
		strings.TrimSpace(req.Description) == "" || req.City == "" ||
		req.LocationLat == nil || req.LocationLng == nil {
		return nil, domain.ErrMissingFields
	}
	if !domain.IsValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	if !domain.IsValidPriority(req.Priority) {
		return nil, domain.ErrInvalidPriority
	}
	if caller.isClient() && req.ClientID != caller.ID {
		return nil, domain.ErrForbidden
	}
	if caller.isResponder() {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	r := &domain.EmergencyRequest{
		ID:          uuid.New().String(),
		ClientID:    req.ClientID,
		Type:        req.Type,
		Priority:    req.Priority,
		Description: req.Description,
		LocationLat: float64(*req.LocationLat),
		LocationLng: float64(*req.LocationLng),
		City:        req.City,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeRequestCreated, r)
	s.enrich(ctx, r)
	return r, nil
}

// List returns requests matching the filter, narrowed to what the caller is
// allowed to see: clients their own, responders the pending pool plus their
// assignments, admins everything.
func (s *DispatchService) List(ctx context.Context, caller Caller, filter domain.Filter) ([]domain.EmergencyRequest, error) {
	if caller.isClient() {
		filter.ClientID = caller.ID
	}

	all, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]domain.EmergencyRequest, 0, len(all))
	for i := range all {
		r := all[i]
		if caller.isResponder() && r.Status != domain.StatusPending && r.ResponderID != caller.ID {
			continue
		}
		s.enrich(ctx, &r)
		out = append(out, r)
	}
	return out, nil
}

// Get returns one request, subject to the same visibility rules as List.
func (s *DispatchService) Get(ctx context.Context, caller Caller, id string) (*domain.EmergencyRequest, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.visible(caller, r) {
		return nil, domain.ErrRequestNotFound
	}
	s.enrich(ctx, r)
	return r, nil
}

// Update merges the provided fields onto the stored record. Status changes
// go through the transition table; accepting stamps the responder.
func (s *DispatchService) Update(ctx context.Context, caller Caller, id string, upd *domain.UpdateRequest) (*domain.EmergencyRequest, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeUpdate(caller, r, upd); err != nil {
		return nil, err
	}

	if upd.Status != nil && *upd.Status != r.Status {
		if !domain.IsValidStatus(*upd.Status) {
			return nil, domain.ErrInvalidStatus
		}
		if !domain.CanTransition(r.Status, *upd.Status) {
			return nil, domain.ErrInvalidTransition
		}

		switch *upd.Status {
		case domain.StatusAccepted:
			responder := r.ResponderID
			if upd.ResponderID != nil {
				responder = *upd.ResponderID
			}
			if responder == "" && caller.isResponder() {
				responder = caller.ID
			}
			if responder == "" {
				return nil, domain.ErrResponderRequired
			}
			r.ResponderID = responder
		case domain.StatusPending:
			// client resend of a declined request starts over
			r.ResponderID = ""
		}
		r.Status = *upd.Status
	} else if upd.ResponderID != nil && *upd.ResponderID != r.ResponderID {
		// responder assignment only changes through the Accepted move
		return nil, domain.ErrForbidden
	}

	if upd.Type != nil {
		if !domain.IsValidType(*upd.Type) {
			return nil, domain.ErrInvalidType
		}
		r.Type = *upd.Type
	}
	if upd.Priority != nil {
		if !domain.IsValidPriority(*upd.Priority) {
			return nil, domain.ErrInvalidPriority
		}
		r.Priority = *upd.Priority
	}
	if upd.Description != nil {
		if strings.TrimSpace(*upd.Description) == "" {
			return nil, domain.ErrMissingFields
		}
		r.Description = *upd.Description
	}
	if upd.City != nil {
		r.City = *upd.City
	}

	r.UpdatedAt = time.Now().UTC()
	if err := s.requests.Update(ctx, r); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeRequestUpdated, r)
	s.enrich(ctx, r)
	return r, nil
}

// Delete removes a request. Admin only; the handler enforces the role, the
// service publishes the removal.
func (s *DispatchService) Delete(ctx context.Context, caller Caller, id string) (bool, error) {
	if !caller.isAdmin() {
		return false, domain.ErrForbidden
	}

	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.requests.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.publish(ctx, events.TypeRequestDeleted, r)
	return true, nil
}

// EscalateStale bumps Pending requests older than the given age to High
// priority. Returns the ids that were escalated.
func (s *DispatchService) EscalateStale(ctx context.Context, olderThan time.Duration) ([]string, error) {
	pending, err := s.requests.List(ctx, domain.Filter{Status: domain.StatusPending})
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-olderThan)
	var escalated []string
	for i := range pending {
		r := pending[i]
		if r.Priority == domain.PriorityHigh || r.CreatedAt.After(cutoff) {
			continue
		}
		r.Priority = domain.PriorityHigh
		r.UpdatedAt = time.Now().UTC()
		if err := s.requests.Update(ctx, &r); err != nil {
			log.Printf("escalate %s: %v", r.ID, err)
			continue
		}
		s.publish(ctx, events.TypeRequestUpdated, &r)
		escalated = append(escalated, r.ID)
	}
	return escalated, nil
}

func (s *DispatchService) authorizeUpdate(caller Caller, r *domain.EmergencyRequest, upd *domain.UpdateRequest) error {
	switch {
	case caller.isAdmin():
		return nil
	case caller.isResponder():
		// responders act on the pending pool and on their own assignments
		if r.Status == domain.StatusPending || r.ResponderID == caller.ID {
			return nil
		}
		return domain.ErrForbidden
	case caller.isClient():
		if r.ClientID != caller.ID {
			return domain.ErrForbidden
		}
		// the only status move clients own is resending a declined request;
		// accepting and declining belong to responders
		if upd.Status != nil && *upd.Status != r.Status {
			if r.Status == domain.StatusDeclined && *upd.Status == domain.StatusPending {
				return nil
			}
			return domain.ErrForbidden
		}
		// field edits on their own pending or declined requests
		if r.Status == domain.StatusPending || r.Status == domain.StatusDeclined {
			return nil
		}
		return domain.ErrForbidden
	default:
		return domain.ErrForbidden
	}
}

func (s *DispatchService) visible(caller Caller, r *domain.EmergencyRequest) bool {
	switch {
	case caller.isAdmin():
		return true
	case caller.isClient():
		return r.ClientID == caller.ID
	case caller.isResponder():
		return r.Status == domain.StatusPending || r.ResponderID == caller.ID
	default:
		return false
	}
}

// enrich fills the denormalized client/responder sub-objects. Dangling ids
// (deleted users) resolve to nil.
func (s *DispatchService) enrich(ctx context.Context, r *domain.EmergencyRequest) {
	if u, err := s.users.GetByID(ctx, r.ClientID); err == nil {
		pub := u.Public()
		r.Client = &pub
	}
	if r.ResponderID != "" {
		if u, err := s.users.GetByID(ctx, r.ResponderID); err == nil {
			pub := u.Public()
			r.Responder = &pub
		}
	}
}

func (s *DispatchService) publish(ctx context.Context, eventType string, r *domain.EmergencyRequest) {
	ev := events.Event{
		Type:          eventType,
		RequestID:     r.ID,
		Status:        r.Status,
		City:          r.City,
		EmergencyType: r.Type,
		At:            time.Now().UTC(),
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		log.Printf("publish %s for %s: %v", eventType, r.ID, err)
	}
}
