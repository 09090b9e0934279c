package pricing

import (
	"math"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/utils"
)

const AnomalyPenalty = 0.7

// PriceModel is the part of the predictor the evaluator needs.
type PriceModel interface {
	Assess(l *listing.Listing) (moderation.PricePrediction, moderation.AnomalyReport)
}

type band struct {
	maxDeviation float64
	score        float64
}

var bands = []band{
	{maxDeviation: 10, score: 1.0},
	{maxDeviation: 20, score: 0.9},
	{maxDeviation: 30, score: 0.8},
	{maxDeviation: 50, score: 0.6},
}

const outOfBandScore = 0.4

type Evaluator struct {
	model PriceModel
}

func NewEvaluator(model PriceModel) *Evaluator {
	return &Evaluator{model: model}
}

func (e *Evaluator) Evaluate(l *listing.Listing) moderation.PriceAssessment {
	prediction, anomaly := e.model.Assess(l)
	return Combine(l.Price, prediction, anomaly)
}

// Combine turns a prediction and its anomaly report into the price score.
func Combine(actual float64, prediction moderation.PricePrediction, anomaly moderation.AnomalyReport) moderation.PriceAssessment {
	deviation := 100.0
	if prediction.Price > 0 {
		deviation = math.Abs(actual-prediction.Price) / prediction.Price * 100
	}

	score := ScoreDeviation(deviation)
	if anomaly.IsAnomaly {
		score *= AnomalyPenalty
	}

	reasons := make([]string, 0, len(prediction.Reasons)+len(anomaly.Reasons))
	reasons = append(reasons, prediction.Reasons...)
	reasons = append(reasons, anomaly.Reasons...)

	return moderation.PriceAssessment{
		Score:          utils.Round(score, 3),
		PredictedPrice: utils.Round(prediction.Price, 2),
		ActualPrice:    actual,
		DeviationPct:   utils.Round(anomaly.DeviationPct, 2),
		IsAnomaly:      anomaly.IsAnomaly,
		AnomalyScore:   utils.Round(anomaly.AnomalyScore, 3),
		Confidence:     prediction.Confidence,
		Reasons:        reasons,
	}
}

// ScoreDeviation maps an absolute deviation percentage onto the discrete score bands.
func ScoreDeviation(deviation float64) float64 {
	for _, b := range bands {
		if deviation <= b.maxDeviation {
			return b.score
		}
	}
	return outOfBandScore
}
