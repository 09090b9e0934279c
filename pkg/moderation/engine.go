package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/TroHub/ListingGuard/pkg/moderation/pricing"
	"github.com/TroHub/ListingGuard/pkg/moderation/rules"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
	"golang.org/x/sync/errgroup"
)

var ErrNilListing = errors.New("listing is nil")

type Option func(*Engine)

func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine runs the full moderation pipeline: rules, price model, aggregation.
type Engine struct {
	logger     *logrus.Logger
	rules      *rules.Evaluator
	predictor  *predictor.Predictor
	pricing    *pricing.Evaluator
	aggregator *decision.Aggregator
	workers    int
	now        func() time.Time
}

func NewEngine(
	logger *logrus.Logger,
	p *predictor.Predictor,
	thresholds *decision.Thresholds,
	opts ...Option,
) *Engine {
	e := &Engine{
		logger:     logger,
		rules:      rules.NewEvaluator(),
		predictor:  p,
		pricing:    pricing.NewEvaluator(p),
		aggregator: decision.NewAggregator(thresholds),
		workers:    runtime.NumCPU(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Predictor() *predictor.Predictor {
	return e.predictor
}

func (e *Engine) Thresholds() moderation.Thresholds {
	return e.aggregator.Thresholds().Get()
}

func (e *Engine) SetThresholds(autoApprove, reject *float64) (moderation.Thresholds, error) {
	th, err := e.aggregator.Thresholds().Update(autoApprove, reject)
	if err != nil {
		return th, err
	}
	e.logger.WithFields(logrus.Fields{
		"auto_approve": th.AutoApprove,
		"reject":       th.Reject,
	}).Info("thresholds updated")
	return th, nil
}

// Moderate scores a single listing. It fails only for input that cannot be featurized.
func (e *Engine) Moderate(ctx context.Context, l *listing.Listing) (*moderation.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, listing.NewMalformedError(ErrNilListing.Error(), ErrNilListing)
	}
	if _, err := e.predictor.Extractor().Extract(l); err != nil {
		return nil, err
	}

	ruleResult := e.rules.Evaluate(l)
	priceResult := e.pricing.Evaluate(l)

	res := e.aggregator.Aggregate(ruleResult, priceResult)
	res.ListingID = l.ID
	res.ModeratedAt = e.now().UTC()
	return res, nil
}

// BatchModerate moderates every raw listing in parallel and returns one item per input, in input order.
func (e *Engine) BatchModerate(ctx context.Context, items []json.RawMessage) []moderation.BatchItem {
	out := make([]moderation.BatchItem, len(items))

	g := &errgroup.Group{}
	g.SetLimit(e.workers)
	for i, raw := range items {
		i, raw := i, raw
		g.Go(func() error {
			out[i] = e.moderateItem(ctx, raw)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Engine) moderateItem(ctx context.Context, raw json.RawMessage) (item moderation.BatchItem) {
	id := peekID(raw)
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("listing_id", id).Errorf("panic while moderating listing: %v", r)
			item = failedItem(id, fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return failedItem(id, err)
	}
	l, err := listing.Parse(raw)
	if err != nil {
		e.logger.WithField("listing_id", id).WithError(err).Warn("skipping malformed batch item")
		return failedItem(id, err)
	}
	if l.ID == "" && id != moderation.UnknownListingID {
		l.ID = id
	}
	res, err := e.Moderate(ctx, l)
	if err != nil {
		e.logger.WithField("listing_id", id).WithError(err).Warn("batch item could not be moderated")
		return failedItem(id, err)
	}
	return moderation.BatchItem{Success: true, Result: res}
}

func failedItem(id string, err error) moderation.BatchItem {
	return moderation.BatchItem{Success: false, Error: err.Error(), PropertyID: id}
}

// peekID reads the listing identifier without decoding the whole payload, so broken items can still be reported.
func peekID(raw []byte) string {
	var p fastjson.Parser
	v, err := p.ParseBytes(raw)
	if err != nil {
		return moderation.UnknownListingID
	}
	for _, key := range []string{"_id", "id"} {
		field := v.Get(key)
		if field == nil {
			continue
		}
		switch field.Type() {
		case fastjson.TypeString:
			if s := string(field.GetStringBytes()); s != "" {
				return s
			}
		case fastjson.TypeNumber:
			return field.String()
		}
	}
	return moderation.UnknownListingID
}
