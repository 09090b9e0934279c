package repository

import (
	"context"
	"errors"

	"github.com/TroHub/ListingGuard/pkg/domain"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) moderation.Repository {
	return &moderationRepository{
		db: db,
	}
}

func (r *moderationRepository) Save(ctx context.Context, record *moderation.Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *moderationRepository) FindLatestByListingID(ctx context.Context, listingID string) (*moderation.Record, error) {
	var record moderation.Record
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(domain.EntityModerationResult, listingID)
		}
		return nil, err
	}
	return &record, nil
}
