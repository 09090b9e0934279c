package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/TroHub/ListingGuard/pkg/moderation/features"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	th, err := decision.NewThresholds(moderation.DefaultThresholds)
	require.NoError(t, err)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewEngine(logger, predictor.New(logger, predictor.Config{}), th, opts...)
}

// a complete 25 m² studio priced at 3M VND
func studioListing() *listing.Listing {
	return &listing.Listing{
		ID:           "studio-1",
		Title:        "Phòng trọ quận 1 đẹp",
		Description:  strings.Repeat("Phòng sạch sẽ, thoáng mát. ", 3),
		Price:        3_000_000,
		Area:         listing.Float(25),
		Bedrooms:     listing.Int(0),
		Bathrooms:    listing.Int(1),
		PropertyType: listing.PhongTro,
		Address: &listing.Address{
			Street:   "12 Lê Lợi",
			Ward:     "Bến Nghé",
			District: "Quận 1",
			City:     "TP. Hồ Chí Minh",
		},
		Location: &listing.Location{Type: "Point", Coordinates: []float64{106.70, 10.77}},
		Amenities: map[string]bool{
			"wifi": true, "ac": true, "parking": true, "kitchen": true,
			"water": true, "laundry": true, "balcony": true, "security": true,
		},
		Images: listing.Images{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"},
	}
}

func TestModerate_AutoApprovesCompleteListing(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Moderate(context.Background(), studioListing())
	require.NoError(t, err)

	assert.Equal(t, "studio-1", res.ListingID)
	assert.Equal(t, 0.97, res.Details.RuleScore)
	assert.Equal(t, 0.8, res.Details.PriceScore)
	assert.Equal(t, 0.902, res.OverallScore)
	assert.Equal(t, moderation.AutoApproved, res.Decision)
	assert.Equal(t, "Auto-approved", res.DecisionText)
	assert.Equal(t, 4_100_000.0, res.PriceAnalysis.PredictedPrice)
	assert.False(t, res.PriceAnalysis.IsAnomaly)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, moderation.DefaultThresholds, res.Thresholds)
	assert.Equal(t, fixedNow, res.ModeratedAt)
}

func TestModerate_RejectsSpamListing(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Moderate(context.Background(), &listing.Listing{
		Title:        "ab",
		Description:  "x",
		Price:        50_000_000,
		Area:         listing.Float(15),
		PropertyType: listing.PhongTro,
		Images:       listing.Images{},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.3, res.Details.RuleScore)
	assert.Equal(t, 0.0, res.Details.ImageScore)
	assert.True(t, res.PriceAnalysis.IsAnomaly)
	assert.Equal(t, 0.28, res.Details.PriceScore)
	assert.Equal(t, 0.292, res.OverallScore)
	assert.Equal(t, moderation.Rejected, res.Decision)
	require.NotEmpty(t, res.Suggestions)
	assert.Contains(t, res.Suggestions[3], "2,000,000 VND")
	assert.Contains(t, res.Suggestions[len(res.Suggestions)-1], "minimum requirements")
}

func TestModerate_OverallIsWeightedSum(t *testing.T) {
	e := newTestEngine(t)
	for price := 200_000.0; price <= 20_000_000; price += 700_000 {
		l := studioListing()
		l.Price = price
		res, err := e.Moderate(context.Background(), l)
		require.NoError(t, err)
		assert.InDelta(t, 0.6*res.Details.RuleScore+0.4*res.Details.PriceScore, res.OverallScore, 1e-3, "price %v", price)
	}
}

func TestModerate_InvalidInput(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Moderate(context.Background(), nil)
	assert.True(t, listing.IsMalformed(err))

	l := studioListing()
	l.Price = math.NaN()
	_, err = e.Moderate(context.Background(), l)
	assert.ErrorIs(t, err, features.ErrNonFinite)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Moderate(ctx, studioListing())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetThresholds(t *testing.T) {
	e := newTestEngine(t)

	auto := 0.95
	th, err := e.SetThresholds(&auto, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.95, th.AutoApprove)

	res, err := e.Moderate(context.Background(), studioListing())
	require.NoError(t, err)
	assert.Equal(t, moderation.PendingReview, res.Decision)

	inverted := 0.1
	_, err = e.SetThresholds(&inverted, nil)
	assert.True(t, decision.IsThresholdError(err))
	assert.Equal(t, 0.95, e.Thresholds().AutoApprove)
}

func TestBatchModerate_MalformedItemIsIsolated(t *testing.T) {
	e := newTestEngine(t, WithWorkers(3))

	good, err := json.Marshal(studioListing())
	require.NoError(t, err)

	items := make([]json.RawMessage, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, json.RawMessage(strings.Replace(string(good), "studio-1", fmt.Sprintf("item-%d", i), 1)))
	}
	items[5] = json.RawMessage(`{"_id":"item-5","price":"three million"}`)

	out := e.BatchModerate(context.Background(), items)

	require.Len(t, out, 8)
	for i, item := range out {
		if i == 5 {
			assert.False(t, item.Success)
			assert.Equal(t, "item-5", item.PropertyID)
			assert.Contains(t, item.Error, "malformed listing")
			assert.Nil(t, item.Result)
			continue
		}
		require.True(t, item.Success, "item %d: %s", i, item.Error)
		assert.Equal(t, fmt.Sprintf("item-%d", i), item.Result.ListingID)
		assert.Equal(t, moderation.AutoApproved, item.Result.Decision)
	}
}

func TestBatchModerate_UnparseableItems(t *testing.T) {
	e := newTestEngine(t)

	out := e.BatchModerate(context.Background(), []json.RawMessage{
		json.RawMessage(`not json`),
		json.RawMessage(`[1,2]`),
		json.RawMessage(`{"id":42,"title":5}`),
		json.RawMessage(`null`),
	})

	require.Len(t, out, 4)
	assert.Equal(t, moderation.UnknownListingID, out[0].PropertyID)
	assert.Equal(t, moderation.UnknownListingID, out[1].PropertyID)
	assert.Equal(t, "42", out[2].PropertyID)
	assert.Equal(t, moderation.UnknownListingID, out[3].PropertyID)
	for _, item := range out {
		assert.False(t, item.Success)
		assert.NotEmpty(t, item.Error)
	}
}

func TestBatchModerate_CancelledContext(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	good, err := json.Marshal(studioListing())
	require.NoError(t, err)

	out := e.BatchModerate(ctx, []json.RawMessage{good, good})

	require.Len(t, out, 2)
	for _, item := range out {
		assert.False(t, item.Success)
		assert.Equal(t, "studio-1", item.PropertyID)
		assert.Equal(t, context.Canceled.Error(), item.Error)
	}
}

func TestBatchModerate_Empty(t *testing.T) {
	out := newTestEngine(t).BatchModerate(context.Background(), nil)
	assert.Empty(t, out)
}

func TestPeekID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"_id":"abc"}`, "abc"},
		{`{"id":"xyz"}`, "xyz"},
		{`{"_id":"","id":"fallback"}`, "fallback"},
		{`{"_id":1234}`, "1234"},
		{`{"_id":{"$oid":"x"}}`, moderation.UnknownListingID},
		{`{}`, moderation.UnknownListingID},
		{`{`, moderation.UnknownListingID},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, peekID([]byte(tt.raw)), tt.raw)
	}
}
