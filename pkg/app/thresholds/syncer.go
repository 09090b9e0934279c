package thresholds

import (
	"context"
	"errors"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	infraCache "github.com/TroHub/ListingGuard/pkg/infra/cache"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/channel"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/subscriber"
	"github.com/sirupsen/logrus"
)

// Store is satisfied by *decision.Thresholds.
type Store interface {
	Get() moderation.Thresholds
	Set(next moderation.Thresholds) error
}

type Syncer interface {
	// Start loads the shared pair and keeps listening for updates until ctx is done.
	Start(ctx context.Context) error
}

type syncer struct {
	logger     *logrus.Logger
	thresholds Store
	store      infraCache.ThresholdStore
	listener   infraCache.EventListener
}

func NewSyncer(
	logger *logrus.Logger,
	thresholds Store,
	store infraCache.ThresholdStore,
	listener infraCache.EventListener,
) Syncer {
	return &syncer{
		logger:     logger,
		thresholds: thresholds,
		store:      store,
		listener:   listener,
	}
}

func (s *syncer) Start(ctx context.Context) error {
	if err := s.load(ctx); err != nil {
		return err
	}
	infraCache.RegisterEventSubscriber(s.listener, subscriber.NewThresholdsUpdatedEventSubscriber(s.logger, s.thresholds))
	go s.listener.Listen(ctx, channel.ThresholdsChannel)
	return nil
}

// load adopts the stored pair, or seeds the store with the configured one when nothing is stored yet.
func (s *syncer) load(ctx context.Context) error {
	stored, err := s.store.Load(ctx)
	if errors.Is(err, infraCache.ErrThresholdsNotFound) {
		current := s.thresholds.Get()
		s.logger.WithFields(logrus.Fields{
			"auto_approve": current.AutoApprove,
			"reject":       current.Reject,
		}).Info("seeding shared thresholds")
		return s.store.Save(ctx, current)
	}
	if err != nil {
		return err
	}
	if err := s.thresholds.Set(stored); err != nil {
		s.logger.WithError(err).Warn("stored thresholds are invalid, keeping configured ones")
		return nil
	}
	s.logger.WithFields(logrus.Fields{
		"auto_approve": stored.AutoApprove,
		"reject":       stored.Reject,
	}).Info("loaded shared thresholds")
	return nil
}
