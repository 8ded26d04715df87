package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errRelay = errors.New("relay down")

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb := New("sms", Settings{MinRequests: 3, HalfOpenRequests: 1, Interval: time.Minute, Timeout: 10 * time.Second, FailureRatio: 0.5})
	cb.now = func() time.Time { return clock }

	fail := func(context.Context) error { return errRelay }
	ok := func(context.Context) error { return nil }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errRelay)
	}
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, ok), ErrOpen)

	clock = clock.Add(11 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cb := New("sms", Settings{MinRequests: 1, HalfOpenRequests: 1, Timeout: time.Second, FailureRatio: 1})
	cb.now = func() time.Time { return clock }
	ctx := context.Background()

	assert.Error(t, cb.Execute(ctx, func(context.Context) error { return errRelay }))
	assert.Equal(t, StateOpen, cb.State())

	clock = clock.Add(2 * time.Second)
	assert.Error(t, cb.Execute(ctx, func(context.Context) error { return errRelay }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_StaysClosedBelowMinimum(t *testing.T) {
	cb := New("sms", DefaultSettings())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, func(context.Context) error { return errRelay }), errRelay)
	}
	assert.Equal(t, StateClosed, cb.State())
}
