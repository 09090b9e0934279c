package features

import (
	"strings"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
)

// UnknownCode is emitted for any categorical value outside the lookup tables.
const UnknownCode = 0

var districtCodes = map[string]int{
	"Quận 1":            1,
	"Quận 2":            2,
	"Quận 3":            3,
	"Quận 4":            4,
	"Quận 5":            5,
	"Quận 6":            6,
	"Quận 7":            7,
	"Quận 8":            8,
	"Quận 9":            9,
	"Quận 10":           10,
	"Quận 11":           11,
	"Quận 12":           12,
	"Bình Tân":          13,
	"Bình Thạnh":        14,
	"Gò Vấp":            15,
	"Phú Nhuận":         16,
	"Tân Bình":          17,
	"Tân Phú":           18,
	"Thành phố Thủ Đức": 19,
}

var cityCodes = map[string]int{
	"TP. Hồ Chí Minh":       1,
	"Thành phố Hồ Chí Minh": 1,
	"Hà Nội":                2,
	"Đà Nẵng":               3,
}

var propertyTypeCodes = map[listing.PropertyType]int{
	listing.PhongTro:     1,
	listing.NhaNguyenCan: 2,
	listing.CanHo:        3,
	listing.ChungCuMini:  4,
	listing.Homestay:     5,
}

func EncodeDistrict(district string) int {
	return lookup(districtCodes, strings.TrimSpace(district))
}

func EncodeCity(city string) int {
	return lookup(cityCodes, strings.TrimSpace(city))
}

func EncodePropertyType(t listing.PropertyType) int {
	return lookup(propertyTypeCodes, t)
}

func lookup[K comparable](table map[K]int, key K) int {
	if code, ok := table[key]; ok {
		return code
	}
	return UnknownCode
}
