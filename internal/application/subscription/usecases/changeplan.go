package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/retry"
)

type ChangePlanCommand struct {
	UserID uint
	PlanID uint
}

type ChangePlanResult struct {
	Subscription *subscription.Subscription
	Plan         *subscription.Plan
}

// ChangePlanUseCase re-plans a user's active subscription. The end date is
// recomputed from the original start date plus the new plan's duration, so
// switching plans never resets the billing anchor. The index entry is
// re-scored after the commit; re-adding a member replaces its score.
type ChangePlanUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	index            ExpirationIndex
	tm               TransactionManager
	retrier          *retry.Executor
	logger           logger.Interface
}

func NewChangePlanUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	index ExpirationIndex,
	tm TransactionManager,
	retrier *retry.Executor,
	logger logger.Interface,
) *ChangePlanUseCase {
	return &ChangePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		index:            index,
		tm:               tm,
		retrier:          retrier,
		logger:           logger,
	}
}

func (uc *ChangePlanUseCase) Execute(ctx context.Context, cmd ChangePlanCommand) (*ChangePlanResult, error) {
	var sub *subscription.Subscription
	var plan *subscription.Plan

	err := uc.retrier.Do(ctx, "update subscription", func(ctx context.Context) error {
		sub = nil
		plan = nil

		return uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			sub, err = uc.subscriptionRepo.GetActiveByUserID(txCtx, cmd.UserID)
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}
			if sub == nil {
				return apperrors.NewNotFoundError("no active subscription found")
			}

			plan, err = uc.planRepo.GetByID(txCtx, cmd.PlanID)
			if err != nil {
				return fmt.Errorf("failed to get plan: %w", err)
			}
			if plan == nil {
				return apperrors.NewNotFoundError("plan not found")
			}

			endDate := plan.ExpiryFrom(sub.StartDate())
			if err := sub.ChangePlan(cmd.PlanID, endDate); err != nil {
				return fmt.Errorf("failed to change plan: %w", err)
			}

			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to update subscription: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		if !apperrors.IsClientFault(err) {
			uc.logger.Errorw("failed to update subscription", "error", err, "user_id", cmd.UserID, "plan_id", cmd.PlanID)
		}
		return nil, err
	}

	if err := uc.index.Upsert(ctx, sub.ID(), sub.EndDate()); err != nil {
		uc.logger.Warnw("failed to re-score expiration index entry",
			"subscription_id", sub.ID(),
			"end_date", sub.EndDate(),
			"error", err,
		)
	}

	uc.logger.Infow("subscription plan changed",
		"subscription_id", sub.ID(),
		"user_id", cmd.UserID,
		"plan_id", cmd.PlanID,
		"end_date", sub.EndDate(),
	)

	return &ChangePlanResult{Subscription: sub, Plan: plan}, nil
}
