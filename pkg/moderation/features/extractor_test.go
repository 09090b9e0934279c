package features

import (
	"math"
	"testing"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullListing() *listing.Listing {
	return &listing.Listing{
		Title:        "Phòng trọ giá rẻ",
		Price:        3000000,
		Area:         listing.Float(25),
		Bedrooms:     listing.Int(2),
		Bathrooms:    listing.Int(1),
		PropertyType: listing.CanHo,
		Address: &listing.Address{
			Street:   "12 Nguyễn Trãi",
			Ward:     "Phường 2",
			District: "Bình Thạnh",
			City:     "Hà Nội",
		},
		Location:  &listing.Location{Coordinates: []float64{106.71, 10.80}},
		Amenities: map[string]bool{"wifi": true, "ac": true, "parking": false, "pool": true},
	}
}

func TestExtractor_FallbackOrder(t *testing.T) {
	vec, err := NewExtractor(nil).Extract(fullListing())
	require.NoError(t, err)
	require.Len(t, vec, len(FallbackOrder))

	want := Vector{
		106.71, 10.80, // coordinates
		14, 2, // district, city
		25, 2, 1, // area, bedrooms, bathrooms
		3,                      // can-ho
		1, 1, 0, 0, 0, 0, 0, 0, // amenity flags
		2,      // amenity_count ignores keys outside the fixed set
		120000, // price per m²
	}
	assert.Equal(t, want, vec)
}

func TestExtractor_Defaults(t *testing.T) {
	named, err := NewExtractor(nil).Named(&listing.Listing{Price: 2000000})
	require.NoError(t, err)

	assert.Equal(t, DefaultLongitude, named["longitude"])
	assert.Equal(t, DefaultLatitude, named["latitude"])
	assert.Equal(t, DefaultArea, named["area"])
	assert.Equal(t, 1.0, named["bedrooms"])
	assert.Equal(t, 1.0, named["bathrooms"])
	assert.Equal(t, 1.0, named["propertyType_encoded"])
	assert.Equal(t, 0.0, named["district_encoded"])
	assert.Equal(t, 0.0, named["city_encoded"])
	assert.Equal(t, 100000.0, named["price_per_sqm"])
}

func TestExtractor_UnknownCategoriesAndZeroArea(t *testing.T) {
	l := &listing.Listing{
		Price:        2000000,
		Area:         listing.Float(0),
		PropertyType: "villa",
		Address:      &listing.Address{District: "Huyện Nhà Bè", City: "Cần Thơ"},
		Location:     &listing.Location{Coordinates: []float64{106.7}},
	}
	named, err := NewExtractor(nil).Named(l)
	require.NoError(t, err)

	assert.Equal(t, 0.0, named["district_encoded"])
	assert.Equal(t, 0.0, named["city_encoded"])
	assert.Equal(t, 0.0, named["propertyType_encoded"])
	assert.Equal(t, 0.0, named["area"])
	assert.Equal(t, 0.0, named["price_per_sqm"])
	assert.Equal(t, DefaultLongitude, named["longitude"])
}

func TestExtractor_SchemaOrder(t *testing.T) {
	schema, err := NewSchema("v2", []string{"price_per_sqm", "area", "floor_level", "amenity_count"})
	require.NoError(t, err)

	vec, err := NewExtractor(schema).Extract(fullListing())
	require.NoError(t, err)
	assert.Equal(t, Vector{120000, 25, 0, 2}, vec)
	assert.Equal(t, []string{"floor_level"}, schema.Unknown())
}

func TestExtractor_NonFinite(t *testing.T) {
	l := fullListing()
	l.Price = math.NaN()
	_, err := NewExtractor(nil).Extract(l)
	assert.ErrorIs(t, err, ErrNonFinite)

	l = fullListing()
	l.Location.Coordinates = []float64{math.Inf(1), 10.8}
	_, err = NewExtractor(nil).Extract(l)
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestExtractor_NilListing(t *testing.T) {
	_, err := NewExtractor(nil).Extract(nil)
	assert.True(t, listing.IsMalformed(err))
}

func TestExtractor_CheckWidth(t *testing.T) {
	e := NewExtractor(nil)
	assert.NoError(t, e.CheckWidth(len(FallbackOrder)))
	assert.NoError(t, e.CheckWidth(0))
	assert.ErrorIs(t, e.CheckWidth(10), ErrSchemaMismatch)
}

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{name: "valid", names: []string{"area", " bedrooms "}},
		{name: "empty", names: nil, wantErr: true},
		{name: "blank name", names: []string{"area", " "}, wantErr: true},
		{name: "duplicate", names: []string{"area", "area"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema("v1", tt.names)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"area", "bedrooms"}, s.Names)
		})
	}
}
