package decision

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/TroHub/ListingGuard/pkg/domain/moderation"
)

const (
	FieldAutoApprove = "auto_approve"
	FieldReject      = "reject"
)

type ThresholdError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %s=%v: %s", e.Field, e.Value, e.Reason)
}

func NewThresholdError(field string, value float64, reason string) error {
	return &ThresholdError{Field: field, Value: value, Reason: reason}
}

func IsThresholdError(err error) bool {
	var target *ThresholdError
	return errors.As(err, &target)
}

// Thresholds holds the process-wide decision thresholds. Readers always see a consistent pair.
type Thresholds struct {
	current atomic.Pointer[moderation.Thresholds]
}

func NewThresholds(initial moderation.Thresholds) (*Thresholds, error) {
	if err := validate(initial); err != nil {
		return nil, err
	}
	t := &Thresholds{}
	t.current.Store(&initial)
	return t, nil
}

func (t *Thresholds) Get() moderation.Thresholds {
	return *t.current.Load()
}

// Update applies the non-nil values on top of the current pair. A rejected update leaves the pair untouched.
func (t *Thresholds) Update(autoApprove, reject *float64) (moderation.Thresholds, error) {
	for {
		old := t.current.Load()
		next := *old
		if autoApprove != nil {
			next.AutoApprove = *autoApprove
		}
		if reject != nil {
			next.Reject = *reject
		}
		if err := validate(next); err != nil {
			return *old, err
		}
		if t.current.CompareAndSwap(old, &next) {
			return next, nil
		}
	}
}

// Set replaces the whole pair, used when thresholds arrive from the shared store.
func (t *Thresholds) Set(next moderation.Thresholds) error {
	if err := validate(next); err != nil {
		return err
	}
	t.current.Store(&next)
	return nil
}

func validate(t moderation.Thresholds) error {
	if err := checkRange(FieldAutoApprove, t.AutoApprove); err != nil {
		return err
	}
	if err := checkRange(FieldReject, t.Reject); err != nil {
		return err
	}
	if t.AutoApprove < t.Reject {
		return NewThresholdError(FieldAutoApprove, t.AutoApprove, fmt.Sprintf("must not be below reject (%v)", t.Reject))
	}
	return nil
}

func checkRange(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return NewThresholdError(field, v, "must be within [0, 1]")
	}
	return nil
}
