package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/shared/logger"
)

// ReconcileExpirationIndexUseCase repairs drift between the primary store and
// the expiration index. The two systems cannot commit atomically, so an index
// write can be lost after a successful commit (entry missing) or survive a
// rollback (stray entry). This job diffs active subscriptions against index
// membership and converges the index to match.
type ReconcileExpirationIndexUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	index            ExpirationIndex
	logger           logger.Interface
}

func NewReconcileExpirationIndexUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	index ExpirationIndex,
	logger logger.Interface,
) *ReconcileExpirationIndexUseCase {
	return &ReconcileExpirationIndexUseCase{
		subscriptionRepo: subscriptionRepo,
		index:            index,
		logger:           logger,
	}
}

// Execute performs one reconciliation pass and returns the number of repairs.
func (uc *ReconcileExpirationIndexUseCase) Execute(ctx context.Context) (int, error) {
	active, err := uc.subscriptionRepo.FindActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	entries, err := uc.index.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read expiration index: %w", err)
	}

	repairs := 0

	activeByID := make(map[uint]*subscription.Subscription, len(active))
	for _, sub := range active {
		activeByID[sub.ID()] = sub

		score, ok := entries[sub.ID()]
		if ok && score.Equal(sub.EndDate()) {
			continue
		}

		if err := uc.index.Upsert(ctx, sub.ID(), sub.EndDate()); err != nil {
			uc.logger.Errorw("failed to repair missing index entry",
				"subscription_id", sub.ID(),
				"error", err,
			)
			continue
		}
		repairs++
		uc.logger.Infow("expiration index entry repaired",
			"subscription_id", sub.ID(),
			"end_date", sub.EndDate(),
			"was_present", ok,
		)
	}

	for id := range entries {
		if _, ok := activeByID[id]; ok {
			continue
		}

		if err := uc.index.Remove(ctx, id); err != nil {
			uc.logger.Errorw("failed to remove stray index entry",
				"subscription_id", id,
				"error", err,
			)
			continue
		}
		repairs++
		uc.logger.Infow("stray expiration index entry removed", "subscription_id", id)
	}

	return repairs, nil
}
