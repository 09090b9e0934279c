package rules

import (
	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/utils"
)

const (
	TextWeight         = 0.25
	CompletenessWeight = 0.30
	ImageWeight        = 0.20
	PriceRangeWeight   = 0.25
)

// Validator scores one aspect of a listing. Implementations must be pure.
type Validator interface {
	Name() string
	Validate(l *listing.Listing) moderation.ValidatorResult
}

type Evaluator struct {
	text         Validator
	completeness Validator
	image        Validator
	priceRange   Validator
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		text:         NewTextValidator(),
		completeness: NewCompletenessValidator(),
		image:        NewImageValidator(),
		priceRange:   NewPriceRangeValidator(),
	}
}

// Evaluate runs the four validators independently and weights their scores.
func (e *Evaluator) Evaluate(l *listing.Listing) moderation.RuleResult {
	res := moderation.RuleResult{
		Text:         e.text.Validate(l),
		Completeness: e.completeness.Validate(l),
		Image:        e.image.Validate(l),
		PriceRange:   e.priceRange.Validate(l),
	}
	res.Score = utils.Round(
		res.Text.Score*TextWeight+
			res.Completeness.Score*CompletenessWeight+
			res.Image.Score*ImageWeight+
			res.PriceRange.Score*PriceRangeWeight,
		3,
	)
	return res
}
