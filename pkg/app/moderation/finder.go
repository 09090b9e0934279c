package moderation

import (
	"context"
	"errors"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain"
	domainModeration "github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

const (
	finderCacheSize = 1024
	finderCacheTTL  = time.Minute
)

var ErrHistoryDisabled = errors.New("moderation history is disabled")

type Finder interface {
	FindLatest(ctx context.Context, listingID string) (*domainModeration.Record, error)
}

type finder struct {
	repo   domainModeration.Repository
	cache  *expirable.LRU[string, *domainModeration.Record]
	logger *logrus.Logger
}

// NewFinder reads decision history through a small in-memory cache. repo may be nil when persistence is off.
func NewFinder(repo domainModeration.Repository, logger *logrus.Logger) Finder {
	return &finder{
		repo:   repo,
		cache:  expirable.NewLRU[string, *domainModeration.Record](finderCacheSize, nil, finderCacheTTL),
		logger: logger,
	}
}

func (f *finder) FindLatest(ctx context.Context, listingID string) (*domainModeration.Record, error) {
	if f.repo == nil {
		return nil, ErrHistoryDisabled
	}
	if record, ok := f.cache.Get(listingID); ok {
		return record, nil
	}

	record, err := f.repo.FindLatestByListingID(ctx, listingID)
	if err != nil {
		if !domain.IsNotFoundError(err) {
			f.logger.WithError(err).WithField("listing_id", listingID).Error("failed to fetch moderation result")
		}
		return nil, err
	}
	f.cache.Add(listingID, record)
	return record, nil
}
