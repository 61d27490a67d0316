package usecases

import (
	"context"
	"fmt"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/shared/biztime"
	"subtrack/internal/shared/logger"
)

// ExpireDueSubscriptionsUseCase is the expiration sweep. Each run scans the
// index for entries whose expiry has passed and transitions each candidate to
// expired with a conditional update, so a subscription cancelled or re-planned
// between the index read and the update is left alone. The index entry is
// removed either way: a zero-row update means the entry was stale and keeping
// it would only make every future sweep reprocess it.
type ExpireDueSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	index            ExpirationIndex
	logger           logger.Interface
}

func NewExpireDueSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	index ExpirationIndex,
	logger logger.Interface,
) *ExpireDueSubscriptionsUseCase {
	return &ExpireDueSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		index:            index,
		logger:           logger,
	}
}

// Execute processes one sweep and returns the number of subscriptions expired.
// Per-candidate failures are logged and skipped; the entry stays in the index
// for the next tick.
func (uc *ExpireDueSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()

	due, err := uc.index.DueBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to scan expiration index: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	uc.logger.Infow("found due expiration candidates", "count", len(due))

	expiredCount := 0
	for _, id := range due {
		expired, err := uc.subscriptionRepo.MarkExpiredIfActive(ctx, id)
		if err != nil {
			uc.logger.Errorw("failed to expire subscription",
				"subscription_id", id,
				"error", err,
			)
			continue
		}

		if err := uc.index.Remove(ctx, id); err != nil {
			uc.logger.Warnw("failed to remove expiration index entry",
				"subscription_id", id,
				"error", err,
			)
		}

		if expired {
			expiredCount++
			uc.logger.Debugw("subscription expired", "subscription_id", id)
		} else {
			uc.logger.Debugw("stale expiration entry dropped", "subscription_id", id)
		}
	}

	return expiredCount, nil
}
