package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "subtrack/internal/shared/errors"
)

func TestChangePlan_RecomputesEndFromOriginalStart(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	index := new(mockExpirationIndex)

	sub := newActiveSubscription(t, 42, 7, 2)
	originalStart := sub.StartDate()
	newPlan := newTestPlan(t, 3, 60)

	subRepo.On("GetActiveByUserID", mock.Anything, uint(7)).Return(sub, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(newPlan, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	index.On("Upsert", mock.Anything, uint(42), originalStart.AddDate(0, 0, 60)).Return(nil)

	uc := NewChangePlanUseCase(subRepo, planRepo, index, stubTransactionManager{}, newTestRetrier(), nopLogger{})

	result, err := uc.Execute(context.Background(), ChangePlanCommand{UserID: 7, PlanID: 3})
	require.NoError(t, err)
	require.NotNil(t, result)

	// The billing anchor never moves: end = original start + new duration.
	assert.Equal(t, originalStart, result.Subscription.StartDate())
	assert.Equal(t, originalStart.AddDate(0, 0, 60), result.Subscription.EndDate())
	assert.Equal(t, uint(3), result.Subscription.PlanID())
	assert.True(t, result.Subscription.IsActive())

	subRepo.AssertExpectations(t)
	index.AssertExpectations(t)
}

func TestChangePlan_NoActiveSubscription(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	index := new(mockExpirationIndex)

	subRepo.On("GetActiveByUserID", mock.Anything, uint(7)).Return(nil, nil)

	uc := NewChangePlanUseCase(subRepo, planRepo, index, stubTransactionManager{}, newTestRetrier(), nopLogger{})

	result, err := uc.Execute(context.Background(), ChangePlanCommand{UserID: 7, PlanID: 3})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsNotFoundError(err))
	subRepo.AssertNumberOfCalls(t, "GetActiveByUserID", 1)
	planRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestChangePlan_PlanNotFound(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	index := new(mockExpirationIndex)

	sub := newActiveSubscription(t, 42, 7, 2)

	subRepo.On("GetActiveByUserID", mock.Anything, uint(7)).Return(sub, nil)
	planRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

	uc := NewChangePlanUseCase(subRepo, planRepo, index, stubTransactionManager{}, newTestRetrier(), nopLogger{})

	result, err := uc.Execute(context.Background(), ChangePlanCommand{UserID: 7, PlanID: 99})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsNotFoundError(err))
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangePlan_UpdateFailureRetriesThenFails(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	index := new(mockExpirationIndex)

	newPlan := newTestPlan(t, 3, 60)

	subRepo.On("GetActiveByUserID", mock.Anything, uint(7)).
		Return(newActiveSubscription(t, 42, 7, 2), nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(newPlan, nil)
	subRepo.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	uc := NewChangePlanUseCase(subRepo, planRepo, index, stubTransactionManager{}, newTestRetrier(), nopLogger{})

	result, err := uc.Execute(context.Background(), ChangePlanCommand{UserID: 7, PlanID: 3})
	require.Error(t, err)
	assert.Nil(t, result)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	subRepo.AssertNumberOfCalls(t, "Update", 3)
	index.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePlan_ReindexFailureTolerated(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	index := new(mockExpirationIndex)

	sub := newActiveSubscription(t, 42, 7, 2)
	newPlan := newTestPlan(t, 3, 60)

	subRepo.On("GetActiveByUserID", mock.Anything, uint(7)).Return(sub, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(newPlan, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	index.On("Upsert", mock.Anything, uint(42), mock.AnythingOfType("time.Time")).
		Return(errors.New("connection refused"))

	uc := NewChangePlanUseCase(subRepo, planRepo, index, stubTransactionManager{}, newTestRetrier(), nopLogger{})

	result, err := uc.Execute(context.Background(), ChangePlanCommand{UserID: 7, PlanID: 3})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), result.Subscription.EndDate())
}
