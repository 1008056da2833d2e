package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBus_PublishSubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewRedisBus(setupTestRedis(t))

	ch, cancel := bus.Subscribe(ctx)
	defer cancel()

	// give the subscription a moment to register
	time.Sleep(50 * time.Millisecond)

	ev := Event{
		Type:          TypeRequestCreated,
		RequestID:     "r1",
		Status:        "Pending",
		City:          "Nairobi",
		EmergencyType: "Fire",
		At:            time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, bus.Publish(ctx, ev))

	select {
	case got := <-ch:
		assert.Equal(t, ev.Type, got.Type)
		assert.Equal(t, ev.RequestID, got.RequestID)
		assert.Equal(t, ev.City, got.City)
		assert.Equal(t, ev.EmergencyType, got.EmergencyType)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not receive event")
	}
}

func TestRedisBus_CancelClosesChannel(t *testing.T) {
	ctx := context.Background()
	bus := NewRedisBus(setupTestRedis(t))

	ch, cancel := bus.Subscribe(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open, "channel closes after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}
