package moderation

import (
	"context"
	"time"
)

const DecisionEventType = "listing.moderated"

// DecisionEvent is what downstream consumers (notifications, search indexing) receive per decision.
type DecisionEvent struct {
	Type         string    `json:"type"`
	RecordID     string    `json:"record_id"`
	ListingID    string    `json:"listing_id"`
	Decision     Decision  `json:"decision"`
	OverallScore float64   `json:"overall_score"`
	IsAnomaly    bool      `json:"is_anomaly"`
	Suggestions  []string  `json:"suggestions,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewDecisionEvent(record *Record) *DecisionEvent {
	return &DecisionEvent{
		Type:         DecisionEventType,
		RecordID:     record.ID.String(),
		ListingID:    record.ListingID,
		Decision:     record.Decision,
		OverallScore: record.OverallScore,
		IsAnomaly:    record.IsAnomaly,
		Suggestions:  record.Suggestions,
		Timestamp:    record.CreatedAt,
	}
}

type EventExporter interface {
	Handle(ctx context.Context, evt *DecisionEvent) error
	Close()
}
