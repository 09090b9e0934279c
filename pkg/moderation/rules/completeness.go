package rules

import (
	"strings"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
)

type completenessValidator struct{}

func NewCompletenessValidator() Validator {
	return &completenessValidator{}
}

func (v *completenessValidator) Name() string {
	return "completeness"
}

func (v *completenessValidator) Validate(l *listing.Listing) moderation.ValidatorResult {
	score := 1.0
	var reasons []string

	missingRequired := missingRequiredFields(l)
	if len(missingRequired) > 0 {
		score -= 0.4
		reasons = append(reasons, "missing required fields: "+strings.Join(missingRequired, ", "))
	}

	missingImportant := missingImportantFields(l)
	if len(missingImportant) > 0 {
		score -= 0.1 * float64(len(missingImportant))
		reasons = append(reasons, "missing important fields: "+strings.Join(missingImportant, ", "))
	}

	if missing := l.Address.MissingFields(); len(missing) > 0 {
		score -= 0.15
		reasons = append(reasons, "incomplete address, missing "+strings.Join(missing, ", "))
	}

	if _, _, ok := l.Location.Pair(); !ok {
		score -= 0.1
		reasons = append(reasons, "missing location coordinates")
	}

	images := len(l.Images)
	switch {
	case images == 0:
		score -= 0.3
		reasons = append(reasons, "no images uploaded")
	case images < 3:
		score -= 0.1
		reasons = append(reasons, "add more images (at least 3)")
	case images >= 5:
		reasons = append(reasons, "enough images")
	}

	if l.TrueAmenities() == 0 {
		score -= 0.1
		reasons = append(reasons, "no amenities provided")
	}

	if len(missingRequired) == 0 && len(missingImportant) == 0 && images >= 5 {
		score = min(1.0, score+0.05)
		reasons = append(reasons, "complete and detailed information")
	}

	return moderation.ValidatorResult{Score: max(0.0, score), Reasons: reasons}
}

func missingRequiredFields(l *listing.Listing) []string {
	var missing []string
	if strings.TrimSpace(l.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(l.Description) == "" {
		missing = append(missing, "description")
	}
	if l.Price == 0 {
		missing = append(missing, "price")
	}
	if l.Area == nil || *l.Area == 0 {
		missing = append(missing, "area")
	}
	if l.PropertyType == "" {
		missing = append(missing, "propertyType")
	}
	if l.Address == nil || len(l.Address.MissingFields()) == 4 {
		missing = append(missing, "address")
	}
	return missing
}

func missingImportantFields(l *listing.Listing) []string {
	var missing []string
	if l.Bedrooms == nil || *l.Bedrooms == 0 {
		missing = append(missing, "bedrooms")
	}
	if l.Bathrooms == nil || *l.Bathrooms == 0 {
		missing = append(missing, "bathrooms")
	}
	if len(l.Images) == 0 {
		missing = append(missing, "images")
	}
	if len(l.Amenities) == 0 {
		missing = append(missing, "amenities")
	}
	return missing
}
