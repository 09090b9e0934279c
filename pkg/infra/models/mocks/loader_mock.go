package mocks

import (
	"context"
	"fmt"

	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/stretchr/testify/mock"
)

type Loader struct {
	mock.Mock
}

func (m *Loader) Load(ctx context.Context) (*predictor.ModelSet, error) {
	args := m.Called(ctx)
	set, ok := args.Get(0).(*predictor.ModelSet)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *predictor.ModelSet, got %T", args.Get(0))
	}
	return set, args.Error(1)
}

func (m *Loader) Dir() string {
	args := m.Called()
	return args.String(0)
}
