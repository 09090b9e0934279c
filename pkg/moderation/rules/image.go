package rules

import (
	"fmt"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
)

type imageValidator struct{}

func NewImageValidator() Validator {
	return &imageValidator{}
}

func (v *imageValidator) Name() string {
	return "image"
}

func (v *imageValidator) Validate(l *listing.Listing) moderation.ValidatorResult {
	images := l.Images
	if len(images) == 0 {
		return moderation.ValidatorResult{Score: 0, Reasons: []string{"no images"}}
	}

	score := 1.0
	var reasons []string

	if len(images) < 3 {
		score -= 0.2
		reasons = append(reasons, "few images (< 3)")
	} else if len(images) >= 5 {
		reasons = append(reasons, "enough images")
	}

	unique := make(map[string]struct{}, len(images))
	invalid := 0
	for _, img := range images {
		unique[img] = struct{}{}
		if img == "" {
			invalid++
		}
	}
	if duplicates := len(images) - len(unique); duplicates > 0 {
		score -= 0.1
		reasons = append(reasons, fmt.Sprintf("%d duplicate images", duplicates))
	}
	if invalid > 0 {
		score -= 0.15
		reasons = append(reasons, fmt.Sprintf("%d invalid image URLs", invalid))
	}

	return moderation.ValidatorResult{Score: max(0.0, score), Reasons: reasons}
}
