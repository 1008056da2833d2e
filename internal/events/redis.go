package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// eventChannel is the pub/sub channel all API instances share.
const eventChannel = "huduma:events"

// RedisBus publishes events over Redis pub/sub so that several API
// instances can feed the same dashboard streams.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, eventChannel, data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context) (<-chan Event, func()) {
	sub := b.client.Subscribe(ctx, eventChannel)
	out := make(chan Event, subscriberBuffer)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("events: dropping malformed payload: %v", err)
				continue
			}
			select {
			case out <- ev:
			default:
				// subscriber is not keeping up, drop
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}
	return out, cancel
}
