package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/subscription"
	apperrors "subtrack/internal/shared/errors"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/retry"
)

type CancelSubscriptionCommand struct {
	UserID uint
}

// CancelSubscriptionUseCase terminates a user's active subscription.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	index            ExpirationIndex
	tm               TransactionManager
	retrier          *retry.Executor
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	index ExpirationIndex,
	tm TransactionManager,
	retrier *retry.Executor,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		index:            index,
		tm:               tm,
		retrier:          retrier,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) error {
	var sub *subscription.Subscription

	err := uc.retrier.Do(ctx, "cancel subscription", func(ctx context.Context) error {
		sub = nil

		return uc.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			sub, err = uc.subscriptionRepo.GetActiveByUserID(txCtx, cmd.UserID)
			if err != nil {
				return fmt.Errorf("failed to get subscription: %w", err)
			}
			if sub == nil {
				return apperrors.NewNotFoundError("no active subscription found")
			}

			if err := sub.Cancel(); err != nil {
				return fmt.Errorf("failed to cancel subscription: %w", err)
			}

			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to update subscription: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		if !apperrors.IsClientFault(err) {
			uc.logger.Errorw("failed to cancel subscription", "error", err, "user_id", cmd.UserID)
		}
		return err
	}

	// A leftover entry is harmless: the sweep's conditional update is a no-op
	// for cancelled rows and drops the stale entry on its next pass.
	if err := uc.index.Remove(ctx, sub.ID()); err != nil {
		uc.logger.Warnw("failed to remove expiration index entry",
			"subscription_id", sub.ID(),
			"error", err,
		)
	}

	uc.logger.Infow("subscription cancelled",
		"subscription_id", sub.ID(),
		"user_id", cmd.UserID,
	)

	return nil
}
