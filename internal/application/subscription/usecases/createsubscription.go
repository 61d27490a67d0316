package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/shared/biztime"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/retry"
)

type CreateSubscriptionCommand struct {
	UserID uint
	PlanID uint
}

type CreateSubscriptionResult struct {
	Subscription *subscription.Subscription
	Plan         *subscription.Plan
}

// CreateSubscriptionUseCase opens a new active subscription for a user.
// The duplicate-active check, plan lookup and insert run in one transaction;
// the expiration index entry is written only after the commit.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	index            ExpirationIndex
	tm               TransactionManager
	retrier          *retry.Executor
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	index ExpirationIndex,
	tm TransactionManager,
	retrier *retry.Executor,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		index:            index,
		tm:               tm,
		retrier:          retrier,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	var sub *subscription.Subscription
	var plan *subscription.Plan

	err := uc.retrier.Do(ctx, "create subscription", func(ctx context.Context) error {
		sub = nil
		plan = nil

		return uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			existing, err := uc.subscriptionRepo.GetActiveByUserID(txCtx, cmd.UserID)
			if err != nil {
				return fmt.Errorf("failed to check existing subscription: %w", err)
			}
			if existing != nil {
				return apperrors.NewValidationError("user already has an active subscription")
			}

			plan, err = uc.planRepo.GetByID(txCtx, cmd.PlanID)
			if err != nil {
				return fmt.Errorf("failed to get plan: %w", err)
			}
			if plan == nil {
				return apperrors.NewNotFoundError("plan not found")
			}

			startDate := biztime.NowUTC()
			endDate := plan.ExpiryFrom(startDate)

			sub, err = subscription.NewSubscription(cmd.UserID, cmd.PlanID, startDate, endDate)
			if err != nil {
				return fmt.Errorf("failed to create subscription aggregate: %w", err)
			}

			if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
				// The unique constraint on the active-user column closes the
				// race between two concurrent creates for the same user.
				if apperrors.IsDuplicateError(err) {
					return apperrors.NewValidationError("user already has an active subscription")
				}
				return fmt.Errorf("failed to create subscription: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		if !apperrors.IsClientFault(err) {
			uc.logger.Errorw("failed to create subscription", "error", err, "user_id", cmd.UserID, "plan_id", cmd.PlanID)
		}
		return nil, err
	}

	// Write-through after commit, best effort: a missed entry is repaired by
	// the reconciliation job, never retried against the transaction.
	if err := uc.index.Upsert(ctx, sub.ID(), sub.EndDate()); err != nil {
		uc.logger.Warnw("failed to write expiration index entry",
			"subscription_id", sub.ID(),
			"end_date", sub.EndDate(),
			"error", err,
		)
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"user_id", cmd.UserID,
		"plan_id", cmd.PlanID,
		"end_date", sub.EndDate(),
	)

	return &CreateSubscriptionResult{Subscription: sub, Plan: plan}, nil
}
