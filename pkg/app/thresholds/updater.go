package thresholds

import (
	"context"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	infraCache "github.com/TroHub/ListingGuard/pkg/infra/cache"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

// Setter is satisfied by *moderation.Engine.
type Setter interface {
	SetThresholds(autoApprove, reject *float64) (moderation.Thresholds, error)
}

type Updater interface {
	Update(ctx context.Context, autoApprove, reject *float64) (moderation.Thresholds, error)
}

type updater struct {
	logger    *logrus.Logger
	setter    Setter
	store     infraCache.ThresholdStore
	publisher infraCache.EventPublisher
	origin    string
}

// NewUpdater builds the admin threshold updater. store and publisher may be nil on a single replica without redis.
func NewUpdater(
	logger *logrus.Logger,
	setter Setter,
	store infraCache.ThresholdStore,
	publisher infraCache.EventPublisher,
	origin string,
) Updater {
	return &updater{
		logger:    logger,
		setter:    setter,
		store:     store,
		publisher: publisher,
		origin:    origin,
	}
}

// Update applies the pair locally first. Store and publish failures are logged; the local change stands.
func (u *updater) Update(ctx context.Context, autoApprove, reject *float64) (moderation.Thresholds, error) {
	th, err := u.setter.SetThresholds(autoApprove, reject)
	if err != nil {
		return th, err
	}

	if u.store != nil {
		if err := u.store.Save(ctx, th); err != nil {
			u.logger.WithError(err).Error("failed to persist thresholds")
		}
	}
	if u.publisher != nil {
		ev := event.ThresholdsUpdatedEvent{
			AutoApprove: th.AutoApprove,
			Reject:      th.Reject,
			Origin:      u.origin,
			UpdatedAt:   time.Now().UTC(),
		}
		if err := u.publisher.Publish(ctx, ev); err != nil {
			u.logger.WithError(err).Error("failed to publish thresholds update")
		}
	}
	return th, nil
}
