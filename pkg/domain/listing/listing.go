package listing

import "strings"

type PropertyType string

const (
	PhongTro     PropertyType = "phong-tro"
	NhaNguyenCan PropertyType = "nha-nguyen-can"
	CanHo        PropertyType = "can-ho"
	ChungCuMini  PropertyType = "chung-cu-mini"
	Homestay     PropertyType = "homestay"

	DefaultPropertyType = PhongTro
)

var PropertyTypes = []PropertyType{PhongTro, NhaNguyenCan, CanHo, ChungCuMini, Homestay}

type Address struct {
	Street   string `json:"street,omitempty"`
	Ward     string `json:"ward,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city,omitempty"`
}

// MissingFields returns the address parts left blank, in street, ward, district, city order.
func (a *Address) MissingFields() []string {
	if a == nil {
		return []string{"street", "ward", "district", "city"}
	}
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"street", a.Street},
		{"ward", a.Ward},
		{"district", a.District},
		{"city", a.City},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type Location struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// Pair returns the [longitude, latitude] pair when the location carries exactly two coordinates.
func (l *Location) Pair() (lon, lat float64, ok bool) {
	if l == nil || len(l.Coordinates) != 2 {
		return 0, 0, false
	}
	return l.Coordinates[0], l.Coordinates[1], true
}

// Listing is a rental-property submission. Pointer fields distinguish an absent value from an explicit zero.
type Listing struct {
	ID           string          `json:"_id,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Area         *float64        `json:"area,omitempty"`
	Bedrooms     *int            `json:"bedrooms,omitempty"`
	Bathrooms    *int            `json:"bathrooms,omitempty"`
	PropertyType PropertyType    `json:"propertyType,omitempty"`
	Address      *Address        `json:"address,omitempty"`
	Location     *Location       `json:"location,omitempty"`
	Amenities    map[string]bool `json:"amenities,omitempty"`
	Images       Images          `json:"images"`
}

func (l *Listing) EffectiveType() PropertyType {
	if l.PropertyType == "" {
		return DefaultPropertyType
	}
	return l.PropertyType
}

func (l *Listing) AreaOr(def float64) float64 {
	if l.Area == nil {
		return def
	}
	return *l.Area
}

func (l *Listing) BedroomsOr(def int) int {
	if l.Bedrooms == nil {
		return def
	}
	return *l.Bedrooms
}

func (l *Listing) BathroomsOr(def int) int {
	if l.Bathrooms == nil {
		return def
	}
	return *l.Bathrooms
}

// TrueAmenities counts every amenity flagged true, whatever its key.
func (l *Listing) TrueAmenities() int {
	n := 0
	for _, v := range l.Amenities {
		if v {
			n++
		}
	}
	return n
}

func (l *Listing) HasAmenity(key string) bool {
	return l.Amenities[key]
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }
