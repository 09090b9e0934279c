package predictor

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/infra/breaker"
	"github.com/TroHub/ListingGuard/pkg/moderation/features"
	"github.com/sirupsen/logrus"
)

const (
	PriceModelName   = "price_model"
	AnomalyModelName = "anomaly_model"

	HeuristicConfidence = 0.5
	ModelConfidence     = 0.8
	FallbackConfidence  = 0.3

	anomalyDeviationPct = 50.0
	anomalyLabel        = -1
)

type SlotState int

const (
	Absent SlotState = iota
	Loaded
	Failing
)

func (s SlotState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failing:
		return "failing"
	default:
		return "absent"
	}
}

func (s SlotState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Config struct {
	BreakerTimeout     time.Duration
	BreakerMaxFailures uint32
	// OnFallback is called whenever a model slot could not answer and the heuristic path was taken.
	OnFallback func(model, reason string)
}

type Status struct {
	PriceModel    SlotState `json:"price_model"`
	AnomalyModel  SlotState `json:"anomaly_model"`
	Scaler        bool      `json:"scaler"`
	SchemaVersion string    `json:"schema_version"`
	ModelVersion  string    `json:"model_version,omitempty"`
	Features      []string  `json:"features"`
}

type slot struct {
	present bool
	breaker breaker.CircuitBreaker
}

func (s slot) state() SlotState {
	if !s.present {
		return Absent
	}
	if !s.breaker.Healthy() {
		return Failing
	}
	return Loaded
}

type activeSet struct {
	models    ModelSet
	extractor *features.Extractor
	regressor slot
	detector  slot
}

// Predictor answers price and anomaly questions for one listing at a time. The active ModelSet is swapped atomically.
type Predictor struct {
	logger *logrus.Logger
	cfg    Config
	active atomic.Pointer[activeSet]
}

func New(logger *logrus.Logger, cfg Config) *Predictor {
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 3
	}
	p := &Predictor{logger: logger, cfg: cfg}
	p.active.Store(p.build(ModelSet{}))
	return p
}

// Swap installs a new model set. An invalid set is rejected and the current one stays active.
func (p *Predictor) Swap(set *ModelSet) error {
	if set == nil {
		set = &ModelSet{}
	}
	if err := set.Validate(); err != nil {
		return err
	}
	p.active.Store(p.build(*set))
	p.logger.WithFields(logrus.Fields{
		"price_model":   set.Regressor != nil,
		"anomaly_model": set.Detector != nil,
		"scaler":        set.Scaler != nil,
		"version":       set.Version,
	}).Info("model set activated")
	return nil
}

func (p *Predictor) build(set ModelSet) *activeSet {
	return &activeSet{
		models:    set,
		extractor: features.NewExtractor(set.Schema),
		regressor: slot{present: set.Regressor != nil, breaker: breaker.NewCircuitBreaker(PriceModelName, p.cfg.BreakerTimeout, p.cfg.BreakerMaxFailures)},
		detector:  slot{present: set.Detector != nil, breaker: breaker.NewCircuitBreaker(AnomalyModelName, p.cfg.BreakerTimeout, p.cfg.BreakerMaxFailures)},
	}
}

func (p *Predictor) Extractor() *features.Extractor {
	return p.active.Load().extractor
}

func (p *Predictor) Status() Status {
	set := p.active.Load()
	version := features.FallbackSchemaVersion
	if set.models.Schema != nil {
		version = set.models.Schema.Version
	}
	return Status{
		PriceModel:    set.regressor.state(),
		AnomalyModel:  set.detector.state(),
		Scaler:        set.models.Scaler != nil,
		SchemaVersion: version,
		ModelVersion:  set.models.Version,
		Features:      set.extractor.Names(),
	}
}

func (p *Predictor) PredictPrice(l *listing.Listing) moderation.PricePrediction {
	return p.predict(p.active.Load(), l)
}

func (p *Predictor) DetectAnomaly(l *listing.Listing) moderation.AnomalyReport {
	set := p.active.Load()
	return p.detect(set, l, p.predict(set, l).Price)
}

// Assess runs one prediction and reuses it for the anomaly check, both against the same model set.
func (p *Predictor) Assess(l *listing.Listing) (moderation.PricePrediction, moderation.AnomalyReport) {
	set := p.active.Load()
	prediction := p.predict(set, l)
	return prediction, p.detect(set, l, prediction.Price)
}

func (p *Predictor) predict(set *activeSet, l *listing.Listing) moderation.PricePrediction {
	if !set.regressor.present {
		return moderation.PricePrediction{
			Price:      HeuristicPrice(l),
			Confidence: HeuristicConfidence,
			Reasons:    []string{"heuristic estimate (model not trained)"},
		}
	}

	var price float64
	x, err := set.input(l)
	if err == nil {
		err = set.regressor.breaker.Execute(func() error {
			v, err := set.models.Regressor.Predict(x)
			if err != nil {
				return err
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New("model returned a non-finite price")
			}
			price = v
			return nil
		})
	}
	if err != nil {
		p.fallback(PriceModelName, l, err)
		return moderation.PricePrediction{
			Price:      HeuristicPrice(l),
			Confidence: FallbackConfidence,
			Reasons:    []string{"prediction failed, using heuristic: " + err.Error()},
		}
	}
	return moderation.PricePrediction{
		Price:      price,
		Confidence: ModelConfidence,
		Reasons:    []string{"predicted by ML model"},
	}
}

func (p *Predictor) detect(set *activeSet, l *listing.Listing, predicted float64) moderation.AnomalyReport {
	var reasons []string

	deviation := 0.0
	if predicted > 0 {
		deviation = (l.Price - predicted) / predicted * 100
	}

	modelFlag := false
	if set.detector.present {
		x, err := set.input(l)
		if err == nil {
			err = set.detector.breaker.Execute(func() error {
				label, err := set.models.Detector.Predict(x)
				if err != nil {
					return err
				}
				modelFlag = label == anomalyLabel
				return nil
			})
		}
		if err != nil {
			modelFlag = false
			p.fallback(AnomalyModelName, l, err)
		} else if modelFlag {
			reasons = append(reasons, "model flagged the price as abnormal")
		}
	}

	ruleFlag := math.Abs(deviation) > anomalyDeviationPct
	if ruleFlag {
		if deviation > 0 {
			reasons = append(reasons, fmt.Sprintf("price %.1f%% higher than predicted", deviation))
		} else {
			reasons = append(reasons, fmt.Sprintf("price %.1f%% lower than predicted", math.Abs(deviation)))
		}
	}

	isAnomaly := modelFlag || ruleFlag
	if !isAnomaly {
		reasons = append(reasons, fmt.Sprintf("price within expected range (±%.1f%% from prediction)", math.Abs(deviation)))
	}

	return moderation.AnomalyReport{
		IsAnomaly:    isAnomaly,
		AnomalyScore: math.Min(math.Abs(deviation)/100, 1.0),
		DeviationPct: deviation,
		Reasons:      reasons,
	}
}

func (s *activeSet) input(l *listing.Listing) ([]float64, error) {
	x, err := s.extractor.Extract(l)
	if err != nil {
		return nil, err
	}
	if s.models.Scaler == nil {
		return x, nil
	}
	return s.models.Scaler.Transform(x)
}

func (p *Predictor) fallback(model string, l *listing.Listing, err error) {
	reason := "inference_error"
	if errors.Is(err, breaker.ErrOpen) {
		reason = "breaker_open"
	}
	p.logger.WithFields(logrus.Fields{
		"model":      model,
		"listing_id": l.ID,
		"reason":     reason,
	}).WithError(err).Warn("model unavailable, falling back to heuristic")
	if p.cfg.OnFallback != nil {
		p.cfg.OnFallback(model, reason)
	}
}
