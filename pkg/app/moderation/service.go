package moderation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	domainModeration "github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/infra/metrics"
	"github.com/sirupsen/logrus"
)

// Moderator is satisfied by *moderation.Engine.
type Moderator interface {
	Moderate(ctx context.Context, l *listing.Listing) (*domainModeration.Result, error)
	BatchModerate(ctx context.Context, items []json.RawMessage) []domainModeration.BatchItem
}

// Service moderates listings and hands every successful result to the async worker.
type Service interface {
	Moderate(ctx context.Context, l *listing.Listing) (*domainModeration.Result, error)
	BatchModerate(ctx context.Context, items []json.RawMessage) BatchSummary
}

type BatchSummary struct {
	Results    []domainModeration.BatchItem `json:"results"`
	Total      int                          `json:"total"`
	Successful int                          `json:"successful"`
	Failed     int                          `json:"failed"`
}

type service struct {
	logger    *logrus.Logger
	moderator Moderator
	worker    metrics.Worker
	now       func() time.Time
}

func NewService(logger *logrus.Logger, moderator Moderator, worker metrics.Worker) Service {
	return &service{
		logger:    logger,
		moderator: moderator,
		worker:    worker,
		now:       time.Now,
	}
}

func (s *service) Moderate(ctx context.Context, l *listing.Listing) (*domainModeration.Result, error) {
	start := s.now()
	res, err := s.moderator.Moderate(ctx, l)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"listing_id":    res.ListingID,
		"decision":      res.Decision,
		"overall_score": res.OverallScore,
	}).Debug("listing moderated")

	if s.worker != nil {
		s.worker.Process([]*domainModeration.Result{res}, metrics.ModeSingle, s.now().Sub(start))
	}
	return res, nil
}

func (s *service) BatchModerate(ctx context.Context, items []json.RawMessage) BatchSummary {
	start := s.now()
	results := s.moderator.BatchModerate(ctx, items)

	summary := BatchSummary{Results: results, Total: len(results)}
	succeeded := make([]*domainModeration.Result, 0, len(results))
	for _, item := range results {
		if item.Success {
			summary.Successful++
			succeeded = append(succeeded, item.Result)
			continue
		}
		summary.Failed++
	}

	s.logger.WithFields(logrus.Fields{
		"total":      summary.Total,
		"successful": summary.Successful,
		"failed":     summary.Failed,
	}).Info("batch moderated")

	if s.worker != nil && len(succeeded) > 0 {
		s.worker.Process(succeeded, metrics.ModeBatch, s.now().Sub(start))
	}
	return summary
}
