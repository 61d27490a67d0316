package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan("Basic Plan", 999, 30, []string{"Basic Support", "1 User"})
	require.NoError(t, err)
	assert.Equal(t, "Basic Plan", plan.Name())
	assert.Equal(t, uint64(999), plan.Price())
	assert.Equal(t, 30, plan.DurationDays())
	assert.Len(t, plan.Features(), 2)
}

func TestNewPlan_Validation(t *testing.T) {
	_, err := NewPlan("", 999, 30, nil)
	assert.Error(t, err)

	_, err = NewPlan("Basic Plan", 999, 0, nil)
	assert.Error(t, err)

	_, err = NewPlan("Basic Plan", 999, -1, nil)
	assert.Error(t, err)
}

func TestPlan_ExpiryFrom(t *testing.T) {
	plan, err := NewPlan("Basic Plan", 999, 30, nil)
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 31, 12, 30, 0, 0, time.UTC), plan.ExpiryFrom(start))

	// Calendar-day arithmetic, not 24h multiples: crosses month boundaries cleanly.
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), plan.ExpiryFrom(feb))
}
