package subscriber

import (
	"context"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	infraCache "github.com/TroHub/ListingGuard/pkg/infra/cache"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

// ThresholdsSetter is satisfied by *decision.Thresholds.
type ThresholdsSetter interface {
	Set(next moderation.Thresholds) error
}

type ThresholdsUpdatedEventSubscriber struct {
	logger     *logrus.Logger
	thresholds ThresholdsSetter
}

func NewThresholdsUpdatedEventSubscriber(
	logger *logrus.Logger,
	thresholds ThresholdsSetter,
) infraCache.EventSubscriber[event.ThresholdsUpdatedEvent] {
	return &ThresholdsUpdatedEventSubscriber{
		logger:     logger,
		thresholds: thresholds,
	}
}

func (s ThresholdsUpdatedEventSubscriber) OnEvent(_ context.Context, evt event.ThresholdsUpdatedEvent) error {
	s.logger.WithFields(logrus.Fields{
		"auto_approve": evt.AutoApprove,
		"reject":       evt.Reject,
		"origin":       evt.Origin,
	}).Debug("applying thresholds from pubsub")

	next := moderation.Thresholds{AutoApprove: evt.AutoApprove, Reject: evt.Reject}
	if err := s.thresholds.Set(next); err != nil {
		s.logger.WithError(err).Warn("ignoring invalid thresholds event")
		return err
	}
	return nil
}
