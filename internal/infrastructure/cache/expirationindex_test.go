package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtrack/internal/shared/logger"
)

// nopLogger is a no-op logger for testing.
type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) Fatal(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestRedisExpirationIndex_DueBeforeOrdersByExpiry(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	index := NewRedisExpirationIndex(client, newNopLogger())

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, index.Upsert(ctx, 3, now.Add(-time.Minute)))
	require.NoError(t, index.Upsert(ctx, 1, now.Add(-time.Hour)))
	require.NoError(t, index.Upsert(ctx, 2, now.Add(time.Hour)))

	due, err := index.DueBefore(ctx, now)
	require.NoError(t, err)

	// Only past-due entries, earliest expiry first.
	assert.Equal(t, []uint{1, 3}, due)
}

func TestRedisExpirationIndex_DueBeforeIncludesBoundary(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	index := NewRedisExpirationIndex(client, newNopLogger())

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, index.Upsert(ctx, 1, now))

	due, err := index.DueBefore(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, due)
}

func TestRedisExpirationIndex_UpsertReplacesScore(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	index := NewRedisExpirationIndex(client, newNopLogger())

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, index.Upsert(ctx, 1, now.Add(-time.Hour)))
	require.NoError(t, index.Upsert(ctx, 1, now.Add(time.Hour)))

	due, err := index.DueBefore(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, due)

	entries, err := index.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, now.Add(time.Hour), entries[1])
}

func TestRedisExpirationIndex_RemoveIsIdempotent(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	index := NewRedisExpirationIndex(client, newNopLogger())

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, index.Upsert(ctx, 1, now))

	require.NoError(t, index.Remove(ctx, 1))
	require.NoError(t, index.Remove(ctx, 1))
	require.NoError(t, index.Remove(ctx, 99))

	entries, err := index.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRedisExpirationIndex_EntriesRoundTripsMillis(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	index := NewRedisExpirationIndex(client, newNopLogger())

	expiresAt := time.Date(2026, 9, 15, 8, 30, 0, 0, time.UTC)
	require.NoError(t, index.Upsert(ctx, 42, expiresAt))

	entries, err := index.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, expiresAt, entries[42])
}

func TestRedisExpirationIndex_SkipsMalformedMembers(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	index := NewRedisExpirationIndex(client, newNopLogger())

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, index.Upsert(ctx, 1, now.Add(-time.Hour)))

	// A foreign member written outside the index contract.
	_, err := mr.ZAdd(expirationIndexKey, float64(now.Add(-time.Minute).UnixMilli()), "garbage")
	require.NoError(t, err)

	due, err := index.DueBefore(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, due)
}
