package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
	authrepo "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/repository"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/domain"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/emergency/repository"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/events"
)

type fixture struct {
	svc       *DispatchService
	users     *authrepo.MemoryUserStore
	requests  *repository.MemoryRequestStore
	bus       *events.MemoryBus
	client    Caller
	responder Caller
	admin     Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := authrepo.NewMemoryUserStore()
	requests := repository.NewMemoryRequestStore()
	bus := events.NewMemoryBus()

	now := time.Now().UTC()
	seed := []authdomain.User{
		{ID: "1", Username: "PeterNjiru", Email: "peter@example.com", Role: authdomain.RoleClient, Phone: "+254700000001", CreatedAt: now, UpdatedAt: now},
		{ID: "2", Username: "SashaMunene", Email: "sasha@example.com", Role: authdomain.RoleResponder, Phone: "+254700000002", CreatedAt: now, UpdatedAt: now},
		{ID: "3", Username: "Admin", Email: "admin@example.com", Role: authdomain.RoleAdmin, CreatedAt: now, UpdatedAt: now},
	}
	for i := range seed {
		require.NoError(t, users.Create(ctx, &seed[i]))
	}

	return &fixture{
		svc:       NewDispatchService(requests, users, bus),
		users:     users,
		requests:  requests,
		bus:       bus,
		client:    Caller{ID: "1", Role: authdomain.RoleClient},
		responder: Caller{ID: "2", Role: authdomain.RoleResponder},
		admin:     Caller{ID: "3", Role: authdomain.RoleAdmin},
	}
}

func coord(v float64) *domain.Coordinate {
	c := domain.Coordinate(v)
	return &c
}

func createReq(clientID string) *domain.CreateRequest {
	return &domain.CreateRequest{
		ClientID:    clientID,
		Type:        domain.TypeFire,
		Priority:    domain.PriorityHigh,
		Description: "building fire on Moi Avenue",
		LocationLat: coord(-1.29),
		LocationLng: coord(36.82),
		City:        "Nairobi",
	}
}

func TestCreate_SetsPendingAndUniqueID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, -1.29, first.LocationLat)
	assert.Equal(t, 36.82, first.LocationLng)

	second, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_RequiresAllFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := createReq("1")
	req.Description = "   "
	_, err := f.svc.Create(ctx, f.client, req)
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	req = createReq("1")
	req.LocationLat = nil
	_, err = f.svc.Create(ctx, f.client, req)
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	req = createReq("1")
	req.Type = "Flood"
	_, err = f.svc.Create(ctx, f.client, req)
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	req = createReq("1")
	req.Priority = "Urgent"
	_, err = f.svc.Create(ctx, f.client, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestCreate_ClientCannotImpersonate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, f.client, createReq("someone-else"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// admins may file on a client's behalf
	r, err := f.svc.Create(ctx, f.admin, createReq("1"))
	require.NoError(t, err)
	assert.Equal(t, "1", r.ClientID)

	// responders do not file requests
	_, err = f.svc.Create(ctx, f.responder, createReq("1"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_AcceptStampsResponder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	before := r.UpdatedAt
	status := domain.StatusAccepted
	updated, err := f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
	assert.Equal(t, "2", updated.ResponderID, "accepting responder is stamped")
	assert.False(t, updated.UpdatedAt.Before(before))
	require.NotNil(t, updated.Responder)
	assert.Equal(t, "SashaMunene", updated.Responder.Username)
}

func TestUpdate_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	decline := domain.StatusDeclined
	_, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &decline})
	require.NoError(t, err)

	// client resends: Declined -> Pending, responder cleared
	resend := domain.StatusPending
	updated, err := f.svc.Update(ctx, f.client, r.ID, &domain.UpdateRequest{Status: &resend})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
	assert.Empty(t, updated.ResponderID)

	accept := domain.StatusAccepted
	_, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &accept})
	require.NoError(t, err)

	complete := domain.StatusCompleted
	updated, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &complete})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
}

func TestUpdate_RejectsIllegalTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	// Pending -> Completed skips Accepted
	complete := domain.StatusCompleted
	_, err = f.svc.Update(ctx, f.admin, r.ID, &domain.UpdateRequest{Status: &complete})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	accept := domain.StatusAccepted
	_, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &accept})
	require.NoError(t, err)

	// Accepted -> Declined is not a legal move
	decline := domain.StatusDeclined
	_, err = f.svc.Update(ctx, f.admin, r.ID, &domain.UpdateRequest{Status: &decline})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &complete})
	require.NoError(t, err)

	// Completed is terminal
	pending := domain.StatusPending
	_, err = f.svc.Update(ctx, f.admin, r.ID, &domain.UpdateRequest{Status: &pending})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	bogus := "OnFire"
	_, err = f.svc.Update(ctx, f.admin, r.ID, &domain.UpdateRequest{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdate_Authorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	otherClient := Caller{ID: "99", Role: authdomain.RoleClient}
	desc := "edited"
	_, err = f.svc.Update(ctx, otherClient, r.ID, &domain.UpdateRequest{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	accept := domain.StatusAccepted
	_, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &accept})
	require.NoError(t, err)

	// a different responder may not touch an assigned request
	otherResponder := Caller{ID: "98", Role: authdomain.RoleResponder}
	complete := domain.StatusCompleted
	_, err = f.svc.Update(ctx, otherResponder, r.ID, &domain.UpdateRequest{Status: &complete})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// the owning client may not edit once accepted
	_, err = f.svc.Update(ctx, f.client, r.ID, &domain.UpdateRequest{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_ClientCannotMoveBeyondResend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	// a client may not claim their own request for a responder who never
	// agreed to take it
	accept := domain.StatusAccepted
	responderID := "2"
	_, err = f.svc.Update(ctx, f.client, r.ID, &domain.UpdateRequest{Status: &accept, ResponderID: &responderID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// nor decline it on the responder's behalf
	decline := domain.StatusDeclined
	_, err = f.svc.Update(ctx, f.client, r.ID, &domain.UpdateRequest{Status: &decline})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := f.requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Empty(t, stored.ResponderID)

	// field edits on their own pending request still work
	desc := "fire spread to the next building"
	updated, err := f.svc.Update(ctx, f.client, r.ID, &domain.UpdateRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
}

func TestUpdate_ResponderChangeOnlyViaAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	accept := domain.StatusAccepted
	_, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &accept})
	require.NoError(t, err)

	// handing the request to someone else without a status move is rejected
	other := "98"
	_, err = f.svc.Update(ctx, f.admin, r.ID, &domain.UpdateRequest{ResponderID: &other})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// restating the current assignee is a no-op, not an error
	same := f.responder.ID
	updated, err := f.svc.Update(ctx, f.admin, r.ID, &domain.UpdateRequest{ResponderID: &same})
	require.NoError(t, err)
	assert.Equal(t, f.responder.ID, updated.ResponderID)
}

func TestList_RoleScopingAndEnrichment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	mine, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	other := createReq("4")
	_, err = f.svc.Create(ctx, f.admin, other)
	require.NoError(t, err)

	// clients only see their own
	got, err := f.svc.List(ctx, f.client, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
	require.NotNil(t, got[0].Client)
	assert.Equal(t, "PeterNjiru", got[0].Client.Username)
	assert.Nil(t, got[0].Responder)

	// admins see everything; the unknown client resolves to nil
	got, err = f.svc.List(ctx, f.admin, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[1].Client, "dangling client_id resolves to null")

	// responders see the pending pool
	got, err = f.svc.List(ctx, f.responder, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	accept := domain.StatusAccepted
	_, err = f.svc.Update(ctx, f.responder, mine.ID, &domain.UpdateRequest{Status: &accept})
	require.NoError(t, err)

	otherResponder := Caller{ID: "98", Role: authdomain.RoleResponder}
	got, err = f.svc.List(ctx, otherResponder, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1, "accepted requests vanish from other responders' pool")
}

func TestDelete_AdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, f.client, r.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	deleted, err := f.svc.Delete(ctx, f.admin, r.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.svc.Delete(ctx, f.admin, r.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// failingRequestStore wraps a real store but fails every read.
type failingRequestStore struct {
	repository.RequestStore
	err error
}

func (f *failingRequestStore) GetByID(ctx context.Context, id string) (*domain.EmergencyRequest, error) {
	return nil, f.err
}

func TestDelete_SurfacesStoreErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	boom := errors.New("connection reset")
	svc := NewDispatchService(&failingRequestStore{RequestStore: f.requests, err: boom}, f.users, f.bus)

	deleted, err := svc.Delete(ctx, f.admin, "some-id")
	assert.False(t, deleted)
	assert.ErrorIs(t, err, boom)
}

func TestMutationsPublishEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ch, cancel := f.bus.Subscribe(ctx)
	defer cancel()

	r, err := f.svc.Create(ctx, f.client, createReq("1"))
	require.NoError(t, err)

	accept := domain.StatusAccepted
	_, err = f.svc.Update(ctx, f.responder, r.ID, &domain.UpdateRequest{Status: &accept})
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, f.admin, r.ID)
	require.NoError(t, err)

	want := []string{events.TypeRequestCreated, events.TypeRequestUpdated, events.TypeRequestDeleted}
	for _, typ := range want {
		select {
		case ev := <-ch:
			assert.Equal(t, typ, ev.Type)
			assert.Equal(t, r.ID, ev.RequestID)
		case <-time.After(time.Second):
			t.Fatalf("no %s event received", typ)
		}
	}
}

func TestEscalateStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := createReq("1")
	req.Priority = domain.PriorityLow
	r, err := f.svc.Create(ctx, f.client, req)
	require.NoError(t, err)

	// fresh requests are untouched
	escalated, err := f.svc.EscalateStale(ctx, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, escalated)

	// age the record past the threshold
	stored, err := f.requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	stored.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	require.NoError(t, f.requests.Update(ctx, stored))

	escalated, err = f.svc.EscalateStale(ctx, time.Hour)
	require.NoError(t, err)
	require.Len(t, escalated, 1)

	got, err := f.requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, got.Priority)

	// already-High requests are not escalated again
	escalated, err = f.svc.EscalateStale(ctx, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, escalated)
}
