package mocks

import (
	"context"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type EventExporter struct {
	mock.Mock
}

func (m *EventExporter) Handle(ctx context.Context, evt *moderation.DecisionEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *EventExporter) Close() {
	m.Called()
}
