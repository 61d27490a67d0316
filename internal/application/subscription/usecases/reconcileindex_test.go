package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"subtrack/internal/domain/subscription"
)

func TestReconcileIndex_RepairsMissingAndStrayEntries(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	indexed := newActiveSubscription(t, 1, 10, 2)
	missing := newActiveSubscription(t, 2, 11, 2)

	subRepo.On("FindActive", mock.Anything).
		Return([]*subscription.Subscription{indexed, missing}, nil)
	index.On("Entries", mock.Anything).Return(map[uint]time.Time{
		1: indexed.EndDate(),
		3: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	index.On("Upsert", mock.Anything, uint(2), missing.EndDate()).Return(nil)
	index.On("Remove", mock.Anything, uint(3)).Return(nil)

	uc := NewReconcileExpirationIndexUseCase(subRepo, index, nopLogger{})

	repairs, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repairs)

	// The entry whose score already matches is left untouched.
	index.AssertNotCalled(t, "Upsert", mock.Anything, uint(1), mock.Anything)
	index.AssertExpectations(t)
}

func TestReconcileIndex_RescoresMismatchedEntry(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	sub := newActiveSubscription(t, 1, 10, 2)
	staleScore := sub.EndDate().Add(-24 * time.Hour)

	subRepo.On("FindActive", mock.Anything).Return([]*subscription.Subscription{sub}, nil)
	index.On("Entries", mock.Anything).Return(map[uint]time.Time{1: staleScore}, nil)
	index.On("Upsert", mock.Anything, uint(1), sub.EndDate()).Return(nil)

	uc := NewReconcileExpirationIndexUseCase(subRepo, index, nopLogger{})

	repairs, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repairs)
}

func TestReconcileIndex_ConvergedIndexNeedsNoRepairs(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	sub := newActiveSubscription(t, 1, 10, 2)

	subRepo.On("FindActive", mock.Anything).Return([]*subscription.Subscription{sub}, nil)
	index.On("Entries", mock.Anything).Return(map[uint]time.Time{1: sub.EndDate()}, nil)

	uc := NewReconcileExpirationIndexUseCase(subRepo, index, nopLogger{})

	repairs, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, repairs)
	index.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	index.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestReconcileIndex_ListFailure(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	subRepo.On("FindActive", mock.Anything).Return(nil, errors.New("connection refused"))

	uc := NewReconcileExpirationIndexUseCase(subRepo, index, nopLogger{})

	repairs, err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, repairs)
	index.AssertNotCalled(t, "Entries", mock.Anything)
}
