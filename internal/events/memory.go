package events

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// MemoryBus is the in-process event bus used in demo mode. Events published
// while a subscriber's buffer is full are dropped for that subscriber.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]chan Event)}
}

func (b *MemoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// subscriber is not keeping up, drop
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}
