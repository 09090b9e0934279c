package rules

import (
	"fmt"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/utils"
)

// PriceBand is the accepted monthly rent range for a property type, in VND.
type PriceBand struct {
	Min float64
	Max float64
}

var priceBands = map[listing.PropertyType]PriceBand{
	listing.PhongTro:     {Min: 500_000, Max: 10_000_000},
	listing.NhaNguyenCan: {Min: 3_000_000, Max: 50_000_000},
	listing.CanHo:        {Min: 2_000_000, Max: 100_000_000},
	listing.ChungCuMini:  {Min: 1_500_000, Max: 20_000_000},
	listing.Homestay:     {Min: 1_000_000, Max: 30_000_000},
}

var defaultPriceBand = PriceBand{Min: 500_000, Max: 100_000_000}

const (
	minPricePerSqm = 20_000
	maxPricePerSqm = 400_000
)

func BandFor(t listing.PropertyType) PriceBand {
	if band, ok := priceBands[t]; ok {
		return band
	}
	return defaultPriceBand
}

type priceRangeValidator struct{}

func NewPriceRangeValidator() Validator {
	return &priceRangeValidator{}
}

func (v *priceRangeValidator) Name() string {
	return "price_range"
}

func (v *priceRangeValidator) Validate(l *listing.Listing) moderation.ValidatorResult {
	if l.Price <= 0 {
		return moderation.ValidatorResult{Score: 0, Reasons: []string{"invalid price (<= 0)"}}
	}

	score := 1.0
	var reasons []string

	band := BandFor(l.PropertyType)
	switch {
	case l.Price < band.Min:
		score -= 0.3
		reasons = append(reasons, fmt.Sprintf("price too low (< %s VND)", utils.FormatThousands(band.Min)))
	case l.Price > band.Max:
		score -= 0.3
		reasons = append(reasons, fmt.Sprintf("price too high (> %s VND)", utils.FormatThousands(band.Max)))
	default:
		reasons = append(reasons, "price within a reasonable range")
	}

	if l.PropertyType == listing.PhongTro {
		if area := l.AreaOr(0); area > 0 {
			perSqm := l.Price / area
			if perSqm < minPricePerSqm {
				score -= 0.15
				reasons = append(reasons, "price per m² too low")
			} else if perSqm > maxPricePerSqm {
				score -= 0.15
				reasons = append(reasons, "price per m² too high")
			}
		}
	}

	return moderation.ValidatorResult{Score: max(0.0, score), Reasons: reasons}
}
