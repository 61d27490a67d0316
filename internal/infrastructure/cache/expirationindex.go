package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"subtrack/internal/shared/biztime"
	"subtrack/internal/shared/logger"
)

// expirationIndexKey is the sorted set holding one member per active
// subscription, scored by expiry time in epoch milliseconds. Ascending score
// order gives the sweep its due-first scan.
const expirationIndexKey = "subscription:expirations"

// RedisExpirationIndex implements usecases.ExpirationIndex on a Redis sorted
// set. The index is a projection: the primary store stays authoritative and
// all writes here are idempotent, so a repeated upsert or a remove of an
// absent member is harmless.
type RedisExpirationIndex struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisExpirationIndex(client *redis.Client, logger logger.Interface) *RedisExpirationIndex {
	return &RedisExpirationIndex{
		client: client,
		logger: logger,
	}
}

// Upsert records or re-scores the entry for a subscription. ZADD on an
// existing member replaces its score, so plan changes re-rank in place.
func (i *RedisExpirationIndex) Upsert(ctx context.Context, subscriptionID uint, expiresAt time.Time) error {
	err := i.client.ZAdd(ctx, expirationIndexKey, redis.Z{
		Score:  float64(biztime.EpochMillis(expiresAt)),
		Member: member(subscriptionID),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add expiration index entry: %w", err)
	}

	i.logger.Debugw("expiration index entry written",
		"subscription_id", subscriptionID,
		"expires_at", expiresAt,
	)

	return nil
}

// Remove deletes the entry; removing an absent member is a no-op.
func (i *RedisExpirationIndex) Remove(ctx context.Context, subscriptionID uint) error {
	if err := i.client.ZRem(ctx, expirationIndexKey, member(subscriptionID)).Err(); err != nil {
		return fmt.Errorf("failed to remove expiration index entry: %w", err)
	}
	return nil
}

// DueBefore returns the IDs of all entries with expiry at or before t, in
// ascending expiry order.
func (i *RedisExpirationIndex) DueBefore(ctx context.Context, t time.Time) ([]uint, error) {
	members, err := i.client.ZRangeByScore(ctx, expirationIndexKey, &redis.ZRangeBy{
		Min: "0",
		Max: strconv.FormatInt(biztime.EpochMillis(t), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range expiration index: %w", err)
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			i.logger.Warnw("skipping malformed expiration index member", "member", m)
			continue
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}

// Entries returns the full index contents for reconciliation.
func (i *RedisExpirationIndex) Entries(ctx context.Context) (map[uint]time.Time, error) {
	members, err := i.client.ZRangeWithScores(ctx, expirationIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read expiration index: %w", err)
	}

	entries := make(map[uint]time.Time, len(members))
	for _, z := range members {
		m, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			i.logger.Warnw("skipping malformed expiration index member", "member", m)
			continue
		}
		entries[uint(id)] = biztime.FromEpochMillis(int64(z.Score))
	}

	return entries, nil
}

func member(subscriptionID uint) string {
	return strconv.FormatUint(uint64(subscriptionID), 10)
}
