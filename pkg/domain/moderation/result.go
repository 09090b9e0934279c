package moderation

import "time"

type Decision string

const (
	AutoApproved  Decision = "auto_approved"
	PendingReview Decision = "pending_review"
	Rejected      Decision = "rejected"
)

func (d Decision) Text() string {
	switch d {
	case AutoApproved:
		return "Auto-approved"
	case PendingReview:
		return "Pending manual review"
	case Rejected:
		return "Rejected"
	default:
		return string(d)
	}
}

type ValidatorResult struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

type RuleResult struct {
	Score        float64         `json:"score"`
	Text         ValidatorResult `json:"text"`
	Completeness ValidatorResult `json:"completeness"`
	Image        ValidatorResult `json:"image"`
	PriceRange   ValidatorResult `json:"price_range"`
}

// Reasons concatenates the validator reasons in text, completeness, image, price order.
func (r RuleResult) Reasons() []string {
	out := make([]string, 0, len(r.Text.Reasons)+len(r.Completeness.Reasons)+len(r.Image.Reasons)+len(r.PriceRange.Reasons))
	out = append(out, r.Text.Reasons...)
	out = append(out, r.Completeness.Reasons...)
	out = append(out, r.Image.Reasons...)
	out = append(out, r.PriceRange.Reasons...)
	return out
}

type PricePrediction struct {
	Price      float64  `json:"predicted_price"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

type AnomalyReport struct {
	IsAnomaly    bool     `json:"is_anomaly"`
	AnomalyScore float64  `json:"anomaly_score"`
	DeviationPct float64  `json:"deviation_pct"`
	Reasons      []string `json:"reasons"`
}

// PriceAssessment joins a price prediction with its anomaly report. DeviationPct keeps its sign.
type PriceAssessment struct {
	Score          float64  `json:"score"`
	PredictedPrice float64  `json:"predicted_price"`
	ActualPrice    float64  `json:"actual_price"`
	DeviationPct   float64  `json:"deviation_pct"`
	IsAnomaly      bool     `json:"is_anomaly"`
	AnomalyScore   float64  `json:"anomaly_score"`
	Confidence     float64  `json:"confidence"`
	Reasons        []string `json:"reasons"`
}

type Thresholds struct {
	AutoApprove float64 `json:"auto_approve"`
	Reject      float64 `json:"reject"`
}

var DefaultThresholds = Thresholds{AutoApprove: 0.85, Reject: 0.60}

type Details struct {
	RuleScore         float64 `json:"rule_score"`
	MLScore           float64 `json:"ml_score"`
	TextScore         float64 `json:"text_score"`
	CompletenessScore float64 `json:"completeness_score"`
	ImageScore        float64 `json:"image_score"`
	PriceScore        float64 `json:"price_score"`
}

type PriceAnalysis struct {
	PredictedPrice float64 `json:"predicted_price"`
	ActualPrice    float64 `json:"actual_price"`
	DeviationPct   float64 `json:"deviation_pct"`
	IsAnomaly      bool    `json:"is_anomaly"`
	AnomalyScore   float64 `json:"anomaly_score"`
	Confidence     float64 `json:"confidence"`
}

type Result struct {
	ListingID     string        `json:"listing_id,omitempty"`
	OverallScore  float64       `json:"overall_score"`
	Decision      Decision      `json:"decision"`
	DecisionText  string        `json:"decision_text"`
	Details       Details       `json:"details"`
	Reasons       []string      `json:"reasons"`
	Suggestions   []string      `json:"suggestions"`
	PriceAnalysis PriceAnalysis `json:"price_analysis"`
	Thresholds    Thresholds    `json:"thresholds"`
	ModeratedAt   time.Time     `json:"moderated_at"`
}

// BatchItem is one entry of a batch response. Failed items carry the error and the submitted ID only.
type BatchItem struct {
	Success    bool    `json:"success"`
	Result     *Result `json:"result,omitempty"`
	Error      string  `json:"error,omitempty"`
	PropertyID string  `json:"property_id,omitempty"`
}

const UnknownListingID = "unknown"
