package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireDueSubscriptions_CountsOnlyRealExpirations(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	index.On("DueBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return([]uint{1, 2}, nil)
	subRepo.On("MarkExpiredIfActive", mock.Anything, uint(1)).Return(true, nil)
	subRepo.On("MarkExpiredIfActive", mock.Anything, uint(2)).Return(false, nil)
	index.On("Remove", mock.Anything, uint(1)).Return(nil)
	index.On("Remove", mock.Anything, uint(2)).Return(nil)

	uc := NewExpireDueSubscriptionsUseCase(subRepo, index, nopLogger{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// The stale entry (id 2, already cancelled elsewhere) is dropped from the
	// index but not counted as an expiration.
	assert.Equal(t, 1, count)
	subRepo.AssertExpectations(t)
	index.AssertExpectations(t)
}

func TestExpireDueSubscriptions_EmptyIndex(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	index.On("DueBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return([]uint{}, nil)

	uc := NewExpireDueSubscriptionsUseCase(subRepo, index, nopLogger{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	subRepo.AssertNotCalled(t, "MarkExpiredIfActive", mock.Anything, mock.Anything)
}

func TestExpireDueSubscriptions_FailedCandidateStaysIndexed(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	index.On("DueBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return([]uint{1, 2}, nil)
	subRepo.On("MarkExpiredIfActive", mock.Anything, uint(1)).Return(false, errors.New("deadlock found"))
	subRepo.On("MarkExpiredIfActive", mock.Anything, uint(2)).Return(true, nil)
	index.On("Remove", mock.Anything, uint(2)).Return(nil)

	uc := NewExpireDueSubscriptionsUseCase(subRepo, index, nopLogger{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The failed candidate keeps its entry so the next tick retries it.
	index.AssertNotCalled(t, "Remove", mock.Anything, uint(1))
}

func TestExpireDueSubscriptions_ScanFailure(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	index := new(mockExpirationIndex)

	index.On("DueBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("connection refused"))

	uc := NewExpireDueSubscriptionsUseCase(subRepo, index, nopLogger{})

	count, err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, count)
}
