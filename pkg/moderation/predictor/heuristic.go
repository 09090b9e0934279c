package predictor

import "github.com/TroHub/ListingGuard/pkg/domain/listing"

const (
	heuristicDefaultArea     = 20.0
	heuristicDefaultBedrooms = 1
	bedroomBonus             = 500_000
	amenityBonus             = 200_000
	defaultBaseRate          = 100_000
)

// base monthly rent per m², VND
var baseRates = map[listing.PropertyType]float64{
	listing.PhongTro:     100_000,
	listing.NhaNguyenCan: 150_000,
	listing.CanHo:        200_000,
	listing.ChungCuMini:  120_000,
	listing.Homestay:     130_000,
}

// HeuristicPrice is the closed-form estimate used whenever no regression model can answer.
func HeuristicPrice(l *listing.Listing) float64 {
	rate, ok := baseRates[l.EffectiveType()]
	if !ok {
		rate = defaultBaseRate
	}
	area := l.AreaOr(heuristicDefaultArea)
	bedrooms := l.BedroomsOr(heuristicDefaultBedrooms)
	return area*rate + float64(bedrooms)*bedroomBonus + float64(l.TrueAmenities())*amenityBonus
}
