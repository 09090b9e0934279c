package decision

import (
	"fmt"
	"math"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/utils"
)

const (
	RuleWeight  = 0.6
	PriceWeight = 0.4

	// categories scoring below this get a suggestion
	suggestionCutoff = 0.8
)

const (
	textSuggestion         = "Improve the title and description: write clearly and with more detail"
	completenessSuggestion = "Fill in the missing details: address, area, rooms and amenities"
	imageSuggestion        = "Upload more photos (at least 5 good quality images)"
	rejectSuggestion       = "The listing does not meet minimum requirements. Please follow the suggestions above."
	reviewSuggestion       = "The listing will be reviewed manually. Improving it raises the chance of automatic approval."
)

type Aggregator struct {
	thresholds *Thresholds
}

func NewAggregator(thresholds *Thresholds) *Aggregator {
	return &Aggregator{thresholds: thresholds}
}

func (a *Aggregator) Thresholds() *Thresholds {
	return a.thresholds
}

// Aggregate joins the rule and price signals into a result. ListingID and ModeratedAt are left to the caller.
func (a *Aggregator) Aggregate(rules moderation.RuleResult, price moderation.PriceAssessment) *moderation.Result {
	th := a.thresholds.Get()

	overall := RuleWeight*rules.Score + PriceWeight*price.Score
	decision := Decide(overall, th)

	reasons := rules.Reasons()
	reasons = append(reasons, price.Reasons...)

	return &moderation.Result{
		OverallScore: utils.Round(overall, 3),
		Decision:     decision,
		DecisionText: decision.Text(),
		Details: moderation.Details{
			RuleScore:         utils.Round(rules.Score, 3),
			MLScore:           utils.Round(price.Score, 3),
			TextScore:         utils.Round(rules.Text.Score, 3),
			CompletenessScore: utils.Round(rules.Completeness.Score, 3),
			ImageScore:        utils.Round(rules.Image.Score, 3),
			PriceScore:        price.Score,
		},
		Reasons:     reasons,
		Suggestions: Suggest(rules, price, overall, th),
		PriceAnalysis: moderation.PriceAnalysis{
			PredictedPrice: price.PredictedPrice,
			ActualPrice:    price.ActualPrice,
			DeviationPct:   price.DeviationPct,
			IsAnomaly:      price.IsAnomaly,
			AnomalyScore:   price.AnomalyScore,
			Confidence:     price.Confidence,
		},
		Thresholds: th,
	}
}

func Decide(overall float64, th moderation.Thresholds) moderation.Decision {
	switch {
	case overall >= th.AutoApprove:
		return moderation.AutoApproved
	case overall >= th.Reject:
		return moderation.PendingReview
	default:
		return moderation.Rejected
	}
}

// Suggest lists improvement hints per deficient category followed by one hint for the overall band.
func Suggest(rules moderation.RuleResult, price moderation.PriceAssessment, overall float64, th moderation.Thresholds) []string {
	suggestions := []string{}

	if rules.Text.Score < suggestionCutoff {
		suggestions = append(suggestions, textSuggestion)
	}
	if rules.Completeness.Score < suggestionCutoff {
		suggestions = append(suggestions, completenessSuggestion)
	}
	if rules.Image.Score < suggestionCutoff {
		suggestions = append(suggestions, imageSuggestion)
	}
	if price.IsAnomaly {
		suggestions = append(suggestions, priceSuggestion(price))
	}

	switch {
	case overall < th.Reject:
		suggestions = append(suggestions, rejectSuggestion)
	case overall < th.AutoApprove:
		suggestions = append(suggestions, reviewSuggestion)
	}
	return suggestions
}

func priceSuggestion(price moderation.PriceAssessment) string {
	reference := utils.FormatThousands(price.PredictedPrice)
	if price.DeviationPct > 0 {
		return fmt.Sprintf("Price is %.1f%% above the market. Reference price: %s VND. If the price is correct, explain it in the description.",
			price.DeviationPct, reference)
	}
	return fmt.Sprintf("Price is %.1f%% below the market. Reference price: %s VND. Please double-check the price.",
		math.Abs(price.DeviationPct), reference)
}
