package mocks

import (
	"context"
	"fmt"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, record *moderation.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *Repository) FindLatestByListingID(ctx context.Context, listingID string) (*moderation.Record, error) {
	args := m.Called(ctx, listingID)
	record, ok := args.Get(0).(*moderation.Record)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *moderation.Record, got %T", args.Get(0))
	}
	return record, args.Error(1)
}
