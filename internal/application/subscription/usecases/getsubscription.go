package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/retry"
)

type GetSubscriptionQuery struct {
	UserID uint
}

type GetSubscriptionResult struct {
	Subscription *subscription.Subscription
	Plan         *subscription.Plan
}

// GetSubscriptionUseCase fetches a user's active subscription with its plan.
type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	retrier          *retry.Executor
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	retrier *retry.Executor,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		retrier:          retrier,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*GetSubscriptionResult, error) {
	var result *GetSubscriptionResult

	err := uc.retrier.Do(ctx, "get subscription", func(ctx context.Context) error {
		sub, err := uc.subscriptionRepo.GetActiveByUserID(ctx, query.UserID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return apperrors.NewNotFoundError("no active subscription found")
		}

		plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}

		result = &GetSubscriptionResult{Subscription: sub, Plan: plan}
		return nil
	})
	if err != nil {
		if !apperrors.IsClientFault(err) {
			uc.logger.Errorw("failed to get subscription", "error", err, "user_id", query.UserID)
		}
		return nil, err
	}

	return result, nil
}
