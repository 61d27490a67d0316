package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/shared/db"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/retry"
)

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if sub, ok := args.Get(0).(*subscription.Subscription); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if sub, ok := args.Get(0).(*subscription.Subscription); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepository) MarkExpiredIfActive(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepository) FindActive(ctx context.Context) ([]*subscription.Subscription, error) {
	args := m.Called(ctx)
	if subs, ok := args.Get(0).([]*subscription.Subscription); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPlanRepository struct {
	mock.Mock
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	args := m.Called(ctx, id)
	if plan, ok := args.Get(0).(*subscription.Plan); ok {
		return plan, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepository) List(ctx context.Context) ([]*subscription.Plan, error) {
	args := m.Called(ctx)
	if plans, ok := args.Get(0).([]*subscription.Plan); ok {
		return plans, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockExpirationIndex struct {
	mock.Mock
}

func (m *mockExpirationIndex) Upsert(ctx context.Context, subscriptionID uint, expiresAt time.Time) error {
	args := m.Called(ctx, subscriptionID, expiresAt)
	return args.Error(0)
}

func (m *mockExpirationIndex) Remove(ctx context.Context, subscriptionID uint) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

func (m *mockExpirationIndex) DueBefore(ctx context.Context, t time.Time) ([]uint, error) {
	args := m.Called(ctx, t)
	if ids, ok := args.Get(0).([]uint); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExpirationIndex) Entries(ctx context.Context) (map[uint]time.Time, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).(map[uint]time.Time); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// stubTransactionManager runs the function directly, without a real
// transaction, so mocks observe the same context the use case passed in.
type stubTransactionManager struct{}

func (stubTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error, _ ...db.Option) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)          {}
func (nopLogger) Info(string, ...any)           {}
func (nopLogger) Warn(string, ...any)           {}
func (nopLogger) Error(string, ...any)          {}
func (nopLogger) Fatal(string, ...any)          {}
func (n nopLogger) With(...any) logger.Interface  { return n }
func (n nopLogger) Named(string) logger.Interface { return n }
func (nopLogger) Debugw(string, ...interface{})   {}
func (nopLogger) Infow(string, ...interface{})    {}
func (nopLogger) Warnw(string, ...interface{})    {}
func (nopLogger) Errorw(string, ...interface{})   {}
func (nopLogger) Fatalw(string, ...interface{})   {}

func newTestRetrier() *retry.Executor {
	return retry.NewExecutor(nopLogger{}, retry.WithBaseDelay(time.Millisecond))
}

func newActiveSubscription(t *testing.T, id, userID, planID uint) *subscription.Subscription {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sub, err := subscription.ReconstructSubscription(
		id, userID, planID,
		vo.StatusActive,
		start, start.AddDate(0, 0, 30),
		start, start,
	)
	require.NoError(t, err)
	return sub
}
