package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"subtrack/internal/infrastructure/ratelimit"
	"subtrack/internal/interfaces/http/handlers"
	"subtrack/internal/interfaces/http/middleware"
	"subtrack/internal/interfaces/http/routes"
	"subtrack/internal/shared/config"
	"subtrack/internal/shared/logger"
)

// Router assembles the gin engine with middleware and all route groups.
type Router struct {
	engine      *gin.Engine
	gormDB      *gorm.DB
	redisClient *redis.Client
}

// NewRouter builds the engine for the given dependency container.
func NewRouter(
	container *Container,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	mode string,
	rateLimitCfg *config.RateLimitConfig,
	log logger.Interface,
) *Router {
	gin.SetMode(ginMode(mode))

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log.Named("http")))
	engine.Use(middleware.CORS([]string{"http://localhost:3000"}))

	subscriptionHandler := handlers.NewSubscriptionHandler(
		container.CreateSubscriptionUC,
		container.GetSubscriptionUC,
		container.ChangePlanUC,
		container.CancelSubscriptionUC,
	)
	planHandler := handlers.NewPlanHandler(container.PlanRepo)

	var rateLimitMW gin.HandlerFunc
	if rateLimitCfg != nil && rateLimitCfg.Requests > 0 {
		limiter := ratelimit.NewRedisRateLimiter(redisClient)
		rateLimitMW = middleware.RateLimit(limiter, ratelimit.Config{
			Limit:  rateLimitCfg.Requests,
			Window: rateLimitCfg.Window(),
		}, log.Named("ratelimit"))
	}

	routes.SetupSubscriptionRoutes(engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: subscriptionHandler,
		RateLimit:           rateLimitMW,
	})
	routes.SetupPlanRoutes(engine, &routes.PlanRouteConfig{
		PlanHandler: planHandler,
	})

	r := &Router{
		engine:      engine,
		gormDB:      gormDB,
		redisClient: redisClient,
	}
	engine.GET("/health", r.health)

	return r
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "ok"}

	if sqlDB, err := r.gormDB.DB(); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	}

	if err := r.redisClient.Ping(ctx).Err(); err != nil {
		status = http.StatusServiceUnavailable
		checks["redis"] = err.Error()
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
