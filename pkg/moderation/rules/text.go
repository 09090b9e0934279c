package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/TroHub/ListingGuard/pkg/domain/listing"
	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
)

var spamKeywords = []string{
	"liên hệ ngay",
	"gọi ngay",
	"inbox",
	"zalo",
	"viber",
	"đảm bảo",
	"100%",
	"cực rẻ",
	"giá sốc",
	"hot hot",
	"siêu rẻ",
	"không mất phí",
	"miễn phí 100%",
}

var forbiddenWords = []string{"lừa đảo", "scam", "hack", "cờ bạc", "casino", "ma túy", "đồ cấm"}

var phonePattern = regexp.MustCompile(`\b0\d{9,10}\b`)

const (
	minTitleLen       = 10
	maxTitleLen       = 200
	minDescriptionLen = 50
	maxDescriptionLen = 5000
	detailedDescLen   = 200
	repeatRunLen      = 5
)

type textValidator struct{}

func NewTextValidator() Validator {
	return &textValidator{}
}

func (v *textValidator) Name() string {
	return "text"
}

func (v *textValidator) Validate(l *listing.Listing) moderation.ValidatorResult {
	score := 1.0
	var reasons []string

	titleLen := utf8.RuneCountInString(l.Title)
	if titleLen < minTitleLen {
		score -= 0.15
		reasons = append(reasons, fmt.Sprintf("title too short (< %d characters)", minTitleLen))
	} else if titleLen > maxTitleLen {
		score -= 0.1
		reasons = append(reasons, fmt.Sprintf("title too long (> %d characters)", maxTitleLen))
	}

	descLen := utf8.RuneCountInString(l.Description)
	if descLen < minDescriptionLen {
		score -= 0.2
		reasons = append(reasons, fmt.Sprintf("description too short (< %d characters)", minDescriptionLen))
	} else if descLen > maxDescriptionLen {
		score -= 0.1
		reasons = append(reasons, fmt.Sprintf("description too long (> %d characters)", maxDescriptionLen))
	}

	text := strings.ToLower(l.Title + " " + l.Description)

	spam := countMatches(text, spamKeywords)
	if spam > 3 {
		score -= 0.3
		reasons = append(reasons, fmt.Sprintf("%d spam keywords detected", spam))
	} else if spam > 0 {
		score -= 0.1 * float64(spam)
		reasons = append(reasons, fmt.Sprintf("%d suspicious spam keywords detected", spam))
	}

	if found := matchedWords(text, forbiddenWords); len(found) > 0 {
		score -= 0.5
		reasons = append(reasons, "contains forbidden words: "+strings.Join(found, ", "))
	}

	if upperRatio(l.Title) > 0.5 {
		score -= 0.15
		reasons = append(reasons, "too many uppercase letters in the title")
	}

	if phonePattern.MatchString(l.Title) {
		score -= 0.1
		reasons = append(reasons, "phone numbers do not belong in the title")
	}

	if hasRepeatedRun(text, repeatRunLen) {
		score -= 0.15
		reasons = append(reasons, "repeated characters detected")
	}

	if descLen >= detailedDescLen && spam == 0 {
		score = min(1.0, score+0.05)
		reasons = append(reasons, "detailed, clear description")
	}

	return moderation.ValidatorResult{Score: max(0.0, score), Reasons: reasons}
}

func countMatches(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func matchedWords(text string, words []string) []string {
	var found []string
	for _, w := range words {
		if strings.Contains(text, w) {
			found = append(found, w)
		}
	}
	return found
}

func upperRatio(s string) float64 {
	total, upper := 0, 0
	for _, r := range s {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(max(total, 1))
}

// hasRepeatedRun reports whether any rune occurs n or more times in a row.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for i, r := range []rune(s) {
		if r == '\n' {
			run = 0
			prev = r
			continue
		}
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= n {
			return true
		}
		prev = r
	}
	return false
}
