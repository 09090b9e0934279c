package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/go-redis/redis/v8"
)

var ErrThresholdsNotFound = errors.New("no thresholds stored")

// ThresholdStore persists the shared decision thresholds so every replica starts from the same pair.
type ThresholdStore interface {
	Load(ctx context.Context) (moderation.Thresholds, error)
	Save(ctx context.Context, th moderation.Thresholds) error
}

type redisThresholdStore struct {
	client Client
}

func NewThresholdStore(client Client) ThresholdStore {
	return &redisThresholdStore{client: client}
}

func (s *redisThresholdStore) Load(ctx context.Context) (moderation.Thresholds, error) {
	raw, err := s.client.Get(ctx, ThresholdsKey)
	if errors.Is(err, redis.Nil) {
		return moderation.Thresholds{}, ErrThresholdsNotFound
	}
	if err != nil {
		return moderation.Thresholds{}, fmt.Errorf("failed to read thresholds: %w", err)
	}
	var th moderation.Thresholds
	if err := json.Unmarshal([]byte(raw), &th); err != nil {
		return moderation.Thresholds{}, fmt.Errorf("failed to decode thresholds: %w", err)
	}
	return th, nil
}

func (s *redisThresholdStore) Save(ctx context.Context, th moderation.Thresholds) error {
	b, err := json.Marshal(th)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, ThresholdsKey, string(b), 0); err != nil {
		return fmt.Errorf("failed to store thresholds: %w", err)
	}
	return nil
}
