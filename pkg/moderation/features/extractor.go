package features

import (
	"errors"
	"fmt"
	"math"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
)

const (
	DefaultLongitude = 106.7
	DefaultLatitude  = 10.8
	DefaultArea      = 20.0
	DefaultBedrooms  = 1
	DefaultBathrooms = 1
)

var (
	ErrNonFinite      = errors.New("listing has a non-finite numeric field")
	ErrSchemaMismatch = errors.New("feature schema does not match model input")
)

var AmenityKeys = []string{"wifi", "ac", "parking", "kitchen", "water", "laundry", "balcony", "security"}

// FallbackOrder is the column order used when no schema ships with the models.
var FallbackOrder = []string{
	"longitude",
	"latitude",
	"district_encoded",
	"city_encoded",
	"area",
	"bedrooms",
	"bathrooms",
	"propertyType_encoded",
	"amenity_wifi",
	"amenity_ac",
	"amenity_parking",
	"amenity_kitchen",
	"amenity_water",
	"amenity_laundry",
	"amenity_balcony",
	"amenity_security",
	"amenity_count",
	"price_per_sqm",
}

type Vector []float64

type Extractor struct {
	schema *Schema
}

// NewExtractor builds an extractor. A nil schema selects FallbackOrder.
func NewExtractor(schema *Schema) *Extractor {
	return &Extractor{schema: schema}
}

func (e *Extractor) Schema() *Schema {
	return e.schema
}

func (e *Extractor) Names() []string {
	if e.schema == nil {
		return FallbackOrder
	}
	return e.schema.Names
}

func (e *Extractor) Width() int {
	return len(e.Names())
}

// CheckWidth fails when a model expects a different number of inputs than the extractor emits.
func (e *Extractor) CheckWidth(modelWidth int) error {
	if modelWidth > 0 && modelWidth != e.Width() {
		return fmt.Errorf("%w: extractor emits %d features, model expects %d", ErrSchemaMismatch, e.Width(), modelWidth)
	}
	return nil
}

func (e *Extractor) Extract(l *listing.Listing) (Vector, error) {
	named, err := e.Named(l)
	if err != nil {
		return nil, err
	}
	names := e.Names()
	vec := make(Vector, len(names))
	for i, name := range names {
		vec[i] = named[name]
	}
	return vec, nil
}

// Named returns every known feature keyed by name.
func (e *Extractor) Named(l *listing.Listing) (map[string]float64, error) {
	if l == nil {
		return nil, listing.NewMalformedError("listing is nil", nil)
	}

	lon, lat, ok := l.Location.Pair()
	if !ok {
		lon, lat = DefaultLongitude, DefaultLatitude
	}
	area := l.AreaOr(DefaultArea)
	if !finite(l.Price, area, lon, lat) {
		return nil, ErrNonFinite
	}

	var district, city string
	if l.Address != nil {
		district, city = l.Address.District, l.Address.City
	}

	named := map[string]float64{
		"longitude":            lon,
		"latitude":             lat,
		"district_encoded":     float64(EncodeDistrict(district)),
		"city_encoded":         float64(EncodeCity(city)),
		"area":                 area,
		"bedrooms":             float64(l.BedroomsOr(DefaultBedrooms)),
		"bathrooms":            float64(l.BathroomsOr(DefaultBathrooms)),
		"propertyType_encoded": float64(EncodePropertyType(l.EffectiveType())),
	}

	count := 0.0
	for _, key := range AmenityKeys {
		flag := 0.0
		if l.HasAmenity(key) {
			flag = 1
		}
		named["amenity_"+key] = flag
		count += flag
	}
	named["amenity_count"] = count

	if area > 0 {
		named["price_per_sqm"] = l.Price / area
	} else {
		named["price_per_sqm"] = 0
	}
	return named, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
