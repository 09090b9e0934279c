package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCircuitBreaker(t *testing.T) {
	tests := []struct {
		name        string
		breakerName string
		timeout     time.Duration
		maxFailures uint32
	}{
		{name: "valid circuit breaker", breakerName: "price_model", timeout: 30 * time.Second, maxFailures: 3},
		{name: "zero timeout", breakerName: "anomaly_model", timeout: 0, maxFailures: 1},
		{name: "zero max failures", breakerName: "zero-failures", timeout: 10 * time.Second, maxFailures: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreaker(tt.breakerName, tt.timeout, tt.maxFailures)

			wrapper, ok := cb.(*circuitBreakerWrapper)
			assert.True(t, ok)
			assert.Equal(t, tt.breakerName, wrapper.breaker.Name())
			assert.True(t, cb.Healthy())
			assert.Equal(t, "closed", cb.State())
		})
	}
}

func TestCircuitBreaker_ExecuteSuccess(t *testing.T) {
	cb := NewCircuitBreaker("success-test", 30*time.Second, 3)

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.True(t, cb.Healthy())
}

func TestCircuitBreaker_ExecuteFailure(t *testing.T) {
	cb := NewCircuitBreaker("failure-test", 30*time.Second, 3)
	testError := errors.New("inference failed")

	err := cb.Execute(func() error { return testError })

	assert.ErrorIs(t, err, testError)
	assert.Contains(t, err.Error(), "failure-test")
	assert.False(t, cb.Healthy())
	assert.Equal(t, "closed", cb.State())
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("open-test", time.Minute, 2)
	fail := func() error { return errors.New("boom") }

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 0, calls)
	assert.Equal(t, "open", cb.State())
}

func TestCircuitBreaker_RecoversAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker("recover-test", 20*time.Millisecond, 1)

	_ = cb.Execute(func() error { return errors.New("boom") })
	assert.Equal(t, "open", cb.State())

	time.Sleep(40 * time.Millisecond)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.True(t, cb.Healthy())
}

func TestCircuitBreaker_PanicIsAFailure(t *testing.T) {
	cb := NewCircuitBreaker("panic-test", time.Minute, 3)

	err := cb.Execute(func() error { panic("bad tree") })

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad tree")
}
