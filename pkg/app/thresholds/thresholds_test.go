package thresholds

import (
	"context"
	"errors"
	"testing"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	infraCache "github.com/TroHub/ListingGuard/pkg/infra/cache"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/event"
	"github.com/TroHub/ListingGuard/pkg/infra/cache/subscriber"
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSetter struct {
	th *decision.Thresholds
}

func (m *mockSetter) SetThresholds(autoApprove, reject *float64) (moderation.Thresholds, error) {
	return m.th.Update(autoApprove, reject)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context) (moderation.Thresholds, error) {
	args := m.Called(ctx)
	return args.Get(0).(moderation.Thresholds), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, th moderation.Thresholds) error {
	args := m.Called(ctx, th)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, ev event.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func ptr(v float64) *float64 { return &v }

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func newThresholds(t *testing.T) *decision.Thresholds {
	th, err := decision.NewThresholds(moderation.DefaultThresholds)
	require.NoError(t, err)
	return th
}

func TestUpdater_Update(t *testing.T) {
	th := newThresholds(t)
	store := new(mockStore)
	pub := new(mockPublisher)
	u := NewUpdater(newLogger(), &mockSetter{th: th}, store, pub, "replica-a")

	want := moderation.Thresholds{AutoApprove: 0.9, Reject: 0.6}
	store.On("Save", mock.Anything, want).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(ev event.Event) bool {
		e, ok := ev.(event.ThresholdsUpdatedEvent)
		return ok && e.AutoApprove == 0.9 && e.Reject == 0.6 && e.Origin == "replica-a"
	})).Return(nil).Once()

	got, err := u.Update(context.Background(), ptr(0.9), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, th.Get())
	store.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestUpdater_InvalidPairIsNotShared(t *testing.T) {
	th := newThresholds(t)
	store := new(mockStore)
	pub := new(mockPublisher)
	u := NewUpdater(newLogger(), &mockSetter{th: th}, store, pub, "replica-a")

	_, err := u.Update(context.Background(), ptr(0.5), ptr(0.7))
	require.Error(t, err)
	assert.True(t, decision.IsThresholdError(err))
	assert.Equal(t, moderation.DefaultThresholds, th.Get())
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdater_StoreFailureKeepsLocalChange(t *testing.T) {
	th := newThresholds(t)
	store := new(mockStore)
	pub := new(mockPublisher)
	u := NewUpdater(newLogger(), &mockSetter{th: th}, store, pub, "replica-a")

	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	got, err := u.Update(context.Background(), nil, ptr(0.5))
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Reject)
	assert.Equal(t, 0.5, th.Get().Reject)
}

func TestUpdater_WithoutRedis(t *testing.T) {
	th := newThresholds(t)
	u := NewUpdater(newLogger(), &mockSetter{th: th}, nil, nil, "solo")

	got, err := u.Update(context.Background(), ptr(0.95), ptr(0.1))
	require.NoError(t, err)
	assert.Equal(t, moderation.Thresholds{AutoApprove: 0.95, Reject: 0.1}, got)
}

func TestSyncer_LoadAdoptsStoredPair(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	client := infraCache.NewClientFromRedis(db)
	th := newThresholds(t)
	s := &syncer{
		logger:     newLogger(),
		thresholds: th,
		store:      infraCache.NewThresholdStore(client),
		listener:   infraCache.NewRedisEventListener(newLogger(), client),
	}

	rmock.ExpectGet(infraCache.ThresholdsKey).SetVal(`{"auto_approve":0.8,"reject":0.4}`)
	require.NoError(t, s.load(context.Background()))
	assert.Equal(t, moderation.Thresholds{AutoApprove: 0.8, Reject: 0.4}, th.Get())
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestSyncer_LoadSeedsEmptyStore(t *testing.T) {
	db, rmock := redismock.NewClientMock()
	client := infraCache.NewClientFromRedis(db)
	th := newThresholds(t)
	s := &syncer{logger: newLogger(), thresholds: th, store: infraCache.NewThresholdStore(client)}

	rmock.ExpectGet(infraCache.ThresholdsKey).RedisNil()
	rmock.ExpectSet(infraCache.ThresholdsKey, `{"auto_approve":0.85,"reject":0.6}`, 0).SetVal("OK")
	require.NoError(t, s.load(context.Background()))
	assert.Equal(t, moderation.DefaultThresholds, th.Get())
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestSyncer_LoadIgnoresInvalidStoredPair(t *testing.T) {
	store := new(mockStore)
	th := newThresholds(t)
	s := &syncer{logger: newLogger(), thresholds: th, store: store}

	store.On("Load", mock.Anything).Return(moderation.Thresholds{AutoApprove: 0.2, Reject: 0.9}, nil).Once()
	require.NoError(t, s.load(context.Background()))
	assert.Equal(t, moderation.DefaultThresholds, th.Get())

	store.On("Load", mock.Anything).Return(moderation.Thresholds{}, errors.New("timeout")).Once()
	assert.Error(t, s.load(context.Background()))
}

func TestSyncer_SubscriberAppliesRemoteUpdate(t *testing.T) {
	db, _ := redismock.NewClientMock()
	client := infraCache.NewClientFromRedis(db)
	th := newThresholds(t)
	listener := infraCache.NewRedisEventListener(newLogger(), client)

	infraCache.RegisterEventSubscriber(listener, subscriber.NewThresholdsUpdatedEventSubscriber(newLogger(), th))

	payload := `{"type":"ThresholdsUpdatedEvent","event":{"auto_approve":0.75,"reject":0.3,"origin":"replica-b"}}`
	require.NoError(t, listener.Dispatch(context.Background(), payload))
	assert.Equal(t, moderation.Thresholds{AutoApprove: 0.75, Reject: 0.3}, th.Get())
}
