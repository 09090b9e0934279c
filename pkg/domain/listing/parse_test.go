package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "object", raw: `{"_id":"abc","title":"Phòng trọ","price":3000000}`},
		{name: "empty object", raw: `{}`},
		{name: "array", raw: `[1,2]`, wantErr: true},
		{name: "string", raw: `"listing"`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
		{name: "wrong price type", raw: `{"price":"cheap"}`, wantErr: true},
		{name: "broken json", raw: `{"title":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsMalformed(err))
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParse_KeepsAbsentFieldsApart(t *testing.T) {
	l, err := Parse([]byte(`{"area":0,"bedrooms":2}`))
	require.NoError(t, err)

	require.NotNil(t, l.Area)
	assert.Equal(t, 0.0, *l.Area)
	assert.Equal(t, 2, l.BedroomsOr(1))
	assert.Nil(t, l.Bathrooms)
	assert.Equal(t, 1, l.BathroomsOr(1))
	assert.Equal(t, PhongTro, l.EffectiveType())
}

func TestImages_NonStringEntriesBecomeEmpty(t *testing.T) {
	l, err := Parse([]byte(`{"images":["a.jpg",null,42,"","b.jpg"]}`))
	require.NoError(t, err)
	assert.Equal(t, Images{"a.jpg", "", "", "", "b.jpg"}, l.Images)
}

func TestAddress_MissingFields(t *testing.T) {
	var nilAddr *Address
	assert.Equal(t, []string{"street", "ward", "district", "city"}, nilAddr.MissingFields())

	addr := &Address{Street: "12 Lê Lợi", District: "Quận 1", City: "TP. Hồ Chí Minh"}
	assert.Equal(t, []string{"ward"}, addr.MissingFields())
}

func TestLocation_Pair(t *testing.T) {
	_, _, ok := (&Location{Coordinates: []float64{106.7}}).Pair()
	assert.False(t, ok)

	lon, lat, ok := (&Location{Coordinates: []float64{106.69, 10.77}}).Pair()
	assert.True(t, ok)
	assert.Equal(t, 106.69, lon)
	assert.Equal(t, 10.77, lat)
}
