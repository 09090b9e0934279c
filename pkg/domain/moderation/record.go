package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Record is the persisted trace of one moderation decision.
type Record struct {
	ID                   uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ListingID            string         `json:"listing_id" gorm:"index"`
	Decision             Decision       `json:"decision"`
	OverallScore         float64        `json:"overall_score"`
	RuleScore            float64        `json:"rule_score"`
	PriceScore           float64        `json:"price_score"`
	PredictedPrice       float64        `json:"predicted_price"`
	ActualPrice          float64        `json:"actual_price"`
	DeviationPct         float64        `json:"deviation_pct"`
	IsAnomaly            bool           `json:"is_anomaly"`
	Reasons              pq.StringArray `json:"reasons" gorm:"type:text[]"`
	Suggestions          pq.StringArray `json:"suggestions" gorm:"type:text[]"`
	AutoApproveThreshold float64        `json:"auto_approve_threshold"`
	RejectThreshold      float64        `json:"reject_threshold"`
	CreatedAt            time.Time      `json:"created_at"`
}

func (Record) TableName() string {
	return "moderation_results"
}

func NewRecord(result *Result) *Record {
	return &Record{
		ID:                   uuid.New(),
		ListingID:            result.ListingID,
		Decision:             result.Decision,
		OverallScore:         result.OverallScore,
		RuleScore:            result.Details.RuleScore,
		PriceScore:           result.Details.MLScore,
		PredictedPrice:       result.PriceAnalysis.PredictedPrice,
		ActualPrice:          result.PriceAnalysis.ActualPrice,
		DeviationPct:         result.PriceAnalysis.DeviationPct,
		IsAnomaly:            result.PriceAnalysis.IsAnomaly,
		Reasons:              pq.StringArray(result.Reasons),
		Suggestions:          pq.StringArray(result.Suggestions),
		AutoApproveThreshold: result.Thresholds.AutoApprove,
		RejectThreshold:      result.Thresholds.Reject,
		CreatedAt:            result.ModeratedAt,
	}
}

type Repository interface {
	Save(ctx context.Context, record *Record) error
	FindLatestByListingID(ctx context.Context, listingID string) (*Record, error)
}
