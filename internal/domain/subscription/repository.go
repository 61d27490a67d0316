package subscription

import "context"

// SubscriptionRepository persists subscription aggregates. Implementations
// must join any transaction carried in the context so use cases can compose
// reads and writes atomically.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error

	// GetByID returns nil, nil when no subscription exists with the ID.
	GetByID(ctx context.Context, id uint) (*Subscription, error)

	// GetActiveByUserID returns the user's active subscription, or nil, nil
	// when the user has none.
	GetActiveByUserID(ctx context.Context, userID uint) (*Subscription, error)

	// MarkExpiredIfActive atomically transitions the subscription to expired
	// only if it is still active, and reports whether a row changed. A false
	// return with nil error means the subscription was already terminal (or
	// gone), which callers treat as a harmless stale-entry case.
	MarkExpiredIfActive(ctx context.Context, id uint) (bool, error)

	// FindActive returns all currently active subscriptions, used by the
	// index reconciliation job.
	FindActive(ctx context.Context) ([]*Subscription, error)
}

// PlanRepository reads plan reference data.
type PlanRepository interface {
	// GetByID returns nil, nil when no plan exists with the ID.
	GetByID(ctx context.Context, id uint) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}
