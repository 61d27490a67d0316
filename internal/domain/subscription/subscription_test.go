package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "subtrack/internal/domain/subscription/valueobjects"
)

func newActiveSubscription(t *testing.T) *Subscription {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sub, err := NewSubscription(1, 2, start, start.AddDate(0, 0, 30))
	require.NoError(t, err)
	return sub
}

func TestNewSubscription(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	sub, err := NewSubscription(1, 2, start, start.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, uint(1), sub.UserID())
	assert.Equal(t, uint(2), sub.PlanID())
	assert.Equal(t, start, sub.StartDate())
	assert.Equal(t, start.AddDate(0, 0, 30), sub.EndDate())
	assert.True(t, sub.IsActive())
}

func TestNewSubscription_Validation(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewSubscription(0, 2, start, start.AddDate(0, 0, 30))
	assert.Error(t, err)

	_, err = NewSubscription(1, 0, start, start.AddDate(0, 0, 30))
	assert.Error(t, err)

	_, err = NewSubscription(1, 2, start, start)
	assert.Error(t, err, "zero-length period is invalid")
}

func TestSubscription_Cancel(t *testing.T) {
	sub := newActiveSubscription(t)

	require.NoError(t, sub.Cancel())
	assert.Equal(t, vo.StatusCancelled, sub.Status())

	// Terminal states are immutable.
	assert.ErrorIs(t, sub.Cancel(), ErrInvalidStatusTransition)
	assert.ErrorIs(t, sub.MarkAsExpired(), ErrInvalidStatusTransition)
}

func TestSubscription_MarkAsExpired(t *testing.T) {
	sub := newActiveSubscription(t)

	require.NoError(t, sub.MarkAsExpired())
	assert.Equal(t, vo.StatusExpired, sub.Status())
	assert.False(t, sub.IsActive())

	assert.ErrorIs(t, sub.MarkAsExpired(), ErrInvalidStatusTransition)
	assert.ErrorIs(t, sub.Cancel(), ErrInvalidStatusTransition)
}

func TestSubscription_ChangePlan(t *testing.T) {
	sub := newActiveSubscription(t)
	newEnd := sub.StartDate().AddDate(0, 0, 60)

	require.NoError(t, sub.ChangePlan(7, newEnd))
	assert.Equal(t, uint(7), sub.PlanID())
	assert.Equal(t, newEnd, sub.EndDate())
	// Start date is preserved across a plan change.
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), sub.StartDate())
}

func TestSubscription_ChangePlan_NotActive(t *testing.T) {
	sub := newActiveSubscription(t)
	require.NoError(t, sub.Cancel())

	err := sub.ChangePlan(7, sub.StartDate().AddDate(0, 0, 60))
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestReconstructSubscription_InvalidStatus(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructSubscription(1, 1, 1, "paused", now, now.AddDate(0, 0, 1), now, now)
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, vo.StatusActive.CanTransitionTo(vo.StatusCancelled))
	assert.True(t, vo.StatusActive.CanTransitionTo(vo.StatusExpired))
	assert.False(t, vo.StatusActive.CanTransitionTo(vo.StatusInactive))
	assert.False(t, vo.StatusInactive.CanTransitionTo(vo.StatusActive), "inactive is unreachable and dead-ended")
	assert.False(t, vo.StatusCancelled.CanTransitionTo(vo.StatusExpired))
	assert.False(t, vo.StatusExpired.CanTransitionTo(vo.StatusActive))
	assert.True(t, vo.StatusCancelled.IsTerminal())
	assert.True(t, vo.StatusExpired.IsTerminal())
	assert.False(t, vo.StatusActive.IsTerminal())
}
