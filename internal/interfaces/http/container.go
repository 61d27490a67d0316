package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/domain/subscription"
	"subtrack/internal/infrastructure/cache"
	"subtrack/internal/infrastructure/repository"
	"subtrack/internal/shared/config"
	"subtrack/internal/shared/db"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/retry"
)

// Container wires repositories, the expiration index and the use cases from
// their infrastructure dependencies. Both the HTTP server and the background
// worker build on it.
type Container struct {
	SubscriptionRepo subscription.SubscriptionRepository
	PlanRepo         subscription.PlanRepository
	ExpirationIndex  usecases.ExpirationIndex
	TxManager        *db.TransactionManager
	Retrier          *retry.Executor

	CreateSubscriptionUC *usecases.CreateSubscriptionUseCase
	GetSubscriptionUC    *usecases.GetSubscriptionUseCase
	ChangePlanUC         *usecases.ChangePlanUseCase
	CancelSubscriptionUC *usecases.CancelSubscriptionUseCase
	ExpireUC             *usecases.ExpireDueSubscriptionsUseCase
	ReconcileUC          *usecases.ReconcileExpirationIndexUseCase
}

// NewContainer builds the full dependency graph.
func NewContainer(
	gormDB *gorm.DB,
	redisClient *redis.Client,
	retryCfg *config.RetryConfig,
	log logger.Interface,
) *Container {
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log.Named("subscription-repo"))
	planRepo := repository.NewPlanRepository(gormDB, log.Named("plan-repo"))
	index := cache.NewRedisExpirationIndex(redisClient, log.Named("expiration-index"))
	txManager := db.NewTransactionManager(gormDB)

	retrier := retry.NewExecutor(log.Named("retry"),
		retry.WithMaxAttempts(retryCfg.MaxAttempts),
		retry.WithBaseDelay(retryCfg.BaseDelay()),
	)

	return &Container{
		SubscriptionRepo: subscriptionRepo,
		PlanRepo:         planRepo,
		ExpirationIndex:  index,
		TxManager:        txManager,
		Retrier:          retrier,

		CreateSubscriptionUC: usecases.NewCreateSubscriptionUseCase(subscriptionRepo, planRepo, index, txManager, retrier, log),
		GetSubscriptionUC:    usecases.NewGetSubscriptionUseCase(subscriptionRepo, planRepo, retrier, log),
		ChangePlanUC:         usecases.NewChangePlanUseCase(subscriptionRepo, planRepo, index, txManager, retrier, log),
		CancelSubscriptionUC: usecases.NewCancelSubscriptionUseCase(subscriptionRepo, index, txManager, retrier, log),
		ExpireUC:             usecases.NewExpireDueSubscriptionsUseCase(subscriptionRepo, index, log.Named("expiration-sweep")),
		ReconcileUC:          usecases.NewReconcileExpirationIndexUseCase(subscriptionRepo, index, log.Named("index-reconcile")),
	}
}
