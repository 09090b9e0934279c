package request

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

var ErrNoThresholds = errors.New("at least one of auto_approve_threshold or reject_threshold is required")

// UpdateConfigRequest accepts numbers or numeric strings for either threshold.
type UpdateConfigRequest struct {
	AutoApproveThreshold *float64 `mapstructure:"auto_approve_threshold" json:"auto_approve_threshold,omitempty"`
	RejectThreshold      *float64 `mapstructure:"reject_threshold" json:"reject_threshold,omitempty"`
}

func DecodeUpdateConfigRequest(body map[string]interface{}) (*UpdateConfigRequest, error) {
	var req UpdateConfigRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &req,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(body); err != nil {
		return nil, fmt.Errorf("invalid threshold value: %w", err)
	}
	return &req, nil
}

func (r *UpdateConfigRequest) Validate() error {
	if r.AutoApproveThreshold == nil && r.RejectThreshold == nil {
		return ErrNoThresholds
	}
	return nil
}
