package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TroHub/ListingGuard/pkg/infra/cache/channel"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type EventSubscriber[T event.Event] interface {
	OnEvent(ctx context.Context, ev T) error
}

type EventListener interface {
	Listen(ctx context.Context, channels ...channel.Channel)
	Dispatch(ctx context.Context, payload string) error
	register(eventType string, handler handlerFunc)
}

type handlerFunc func(ctx context.Context, raw json.RawMessage) error

type redisEventListener struct {
	logger   *logrus.Logger
	client   Client
	mu       sync.RWMutex
	handlers map[string][]handlerFunc
}

func NewRedisEventListener(logger *logrus.Logger, client Client) EventListener {
	return &redisEventListener{
		logger:   logger,
		client:   client,
		handlers: make(map[string][]handlerFunc),
	}
}

// RegisterEventSubscriber routes every message of T's type to the subscriber.
func RegisterEventSubscriber[T event.Event](l EventListener, subscriber EventSubscriber[T]) {
	var zero T
	l.register(zero.Type(), func(ctx context.Context, raw json.RawMessage) error {
		var ev T
		if err := json.Unmarshal(raw, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", zero.Type(), err)
		}
		return subscriber.OnEvent(ctx, ev)
	})
}

func (r *redisEventListener) register(eventType string, handler handlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
}

func (r *redisEventListener) Listen(ctx context.Context, channels ...channel.Channel) {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, string(ch))
	}

	for {
		r.listenOnce(ctx, names)
		if ctx.Err() != nil {
			r.logger.Info("redis pubsub listener shutting down")
			return
		}
		r.logger.Warn("redis pubsub disconnected, reconnecting in 1s...")
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (r *redisEventListener) listenOnce(ctx context.Context, names []string) {
	pubSub := r.client.RedisClient().Subscribe(ctx, names...)
	defer func() { _ = pubSub.Close() }()

	r.logger.WithField("channels", names).Debug("redis pubsub connected")

	msgs := pubSub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			if err := r.Dispatch(ctx, msg.Payload); err != nil {
				r.logger.WithError(err).WithField("channel", msg.Channel).Error("error handling redis message")
			}
		}
	}
}

// Dispatch decodes one envelope and hands it to the subscribers of its type.
func (r *redisEventListener) Dispatch(ctx context.Context, payload string) error {
	var envelope RedisMessage
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return fmt.Errorf("error decoding redis message: %w", err)
	}

	r.mu.RLock()
	handlers := r.handlers[envelope.Type]
	r.mu.RUnlock()
	if len(handlers) == 0 {
		return fmt.Errorf("unknown event type: %s", envelope.Type)
	}

	for _, h := range handlers {
		if err := h(ctx, envelope.Event); err != nil {
			return err
		}
	}
	return nil
}
