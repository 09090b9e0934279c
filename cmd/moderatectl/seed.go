package main

import (
	"fmt"
	"time"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/moderation/features"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/urfave/cli/v2"
)

var seedCmd = &cli.Command{
	Name:  "seed",
	Usage: "print fake listings for load testing",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of listings",
			Value: 10,
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed; the current time when 0",
		},
	},
	Action: runSeed,
}

var (
	seedDistricts = []string{"Quận 1", "Quận 3", "Quận 7", "Bình Thạnh", "Gò Vấp", "Phú Nhuận", "Tân Bình", "Thành phố Thủ Đức"}
	seedCities    = []string{"TP. Hồ Chí Minh", "Hà Nội", "Đà Nẵng"}
)

func runSeed(cctx *cli.Context) error {
	count := cctx.Int("count")
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}
	seed := cctx.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return writeJSON(cctx, fakeListings(seed, count))
}

func fakeListings(seed int64, count int) []*listing.Listing {
	f := gofakeit.New(seed)
	out := make([]*listing.Listing, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, fakeListing(f))
	}
	return out
}

func fakeListing(f *gofakeit.Faker) *listing.Listing {
	propertyType := listing.PropertyTypes[f.IntRange(0, len(listing.PropertyTypes)-1)]

	amenities := make(map[string]bool, len(features.AmenityKeys))
	for _, key := range features.AmenityKeys {
		amenities[key] = f.Bool()
	}

	images := make(listing.Images, f.IntRange(0, 6))
	for i := range images {
		images[i] = f.URL() + ".jpg"
	}

	return &listing.Listing{
		ID:           f.UUID(),
		Title:        f.Sentence(f.IntRange(3, 12)),
		Description:  f.Paragraph(1, f.IntRange(2, 6), 12, " "),
		Price:        float64(f.IntRange(15, 400)) * 100_000,
		Area:         listing.Float(float64(f.IntRange(12, 150))),
		Bedrooms:     listing.Int(f.IntRange(0, 4)),
		Bathrooms:    listing.Int(f.IntRange(1, 3)),
		PropertyType: propertyType,
		Address: &listing.Address{
			Street:   f.Street(),
			Ward:     fmt.Sprintf("Phường %d", f.IntRange(1, 15)),
			District: f.RandomString(seedDistricts),
			City:     f.RandomString(seedCities),
		},
		Location: &listing.Location{
			Type:        "Point",
			Coordinates: []float64{f.Float64Range(106.6, 106.8), f.Float64Range(10.7, 10.9)},
		},
		Amenities: amenities,
		Images:    images,
	}
}
