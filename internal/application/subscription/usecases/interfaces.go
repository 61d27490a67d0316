package usecases

import (
	"context"
	"time"

	"subtrack/internal/shared/db"
)

// ExpirationIndex is the score-ordered projection of active subscriptions by
// expiry time, held in a store separate from the primary database. It is
// advisory: the primary store's status column stays authoritative, and every
// write here is best-effort after a successful commit.
type ExpirationIndex interface {
	// Upsert records or re-scores the entry for a subscription. Re-adding an
	// existing member replaces its score.
	Upsert(ctx context.Context, subscriptionID uint, expiresAt time.Time) error

	// Remove deletes the entry; removing an absent member is a no-op.
	Remove(ctx context.Context, subscriptionID uint) error

	// DueBefore returns the IDs of all entries with expiry at or before t,
	// ordered by expiry.
	DueBefore(ctx context.Context, t time.Time) ([]uint, error)

	// Entries returns the full index contents for reconciliation.
	Entries(ctx context.Context) (map[uint]time.Time, error)
}

// TransactionManager runs a function inside a primary-store transaction.
// Satisfied by db.TransactionManager; declared here so use cases can be
// exercised with test doubles.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error, opts ...db.Option) error
}
