package event

import "time"

type Event interface {
	Type() string
}

const ThresholdsUpdatedEventType = "ThresholdsUpdatedEvent"

// ThresholdsUpdatedEvent tells every replica to reload the shared decision thresholds.
type ThresholdsUpdatedEvent struct {
	AutoApprove float64   `json:"auto_approve"`
	Reject      float64   `json:"reject"`
	Origin      string    `json:"origin"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e ThresholdsUpdatedEvent) Type() string {
	return ThresholdsUpdatedEventType
}
