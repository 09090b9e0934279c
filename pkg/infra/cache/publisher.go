package cache

import (
	"context"
	"encoding/json"

	"github.com/TroHub/ListingGuard/pkg/infra/cache/channel"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/event"
)

// RedisMessage is the envelope carried on every pub/sub channel.
type RedisMessage struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev event.Event) error
}

type redisEventPublisher struct {
	client  Client
	channel channel.Channel
}

func NewRedisEventPublisher(client Client, ch channel.Channel) EventPublisher {
	return &redisEventPublisher{client: client, channel: ch}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	data, err := encodeMessage(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, string(p.channel), data)
}

func encodeMessage(ev event.Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(RedisMessage{Type: ev.Type(), Event: b})
}
