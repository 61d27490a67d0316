package routes

import (
	"github.com/gin-gonic/gin"

	"subtrack/internal/interfaces/http/handlers"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	// RateLimit, when set, guards the mutation endpoints.
	RateLimit gin.HandlerFunc
}

// SetupSubscriptionRoutes configures subscription lifecycle routes.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	users := engine.Group("/users")
	users.GET("/:user_id/subscription", cfg.SubscriptionHandler.GetSubscription)

	mutations := users.Group("")
	if cfg.RateLimit != nil {
		mutations.Use(cfg.RateLimit)
	}
	{
		mutations.POST("/:user_id/subscription", cfg.SubscriptionHandler.CreateSubscription)
		mutations.PUT("/:user_id/subscription", cfg.SubscriptionHandler.ChangePlan)
		mutations.DELETE("/:user_id/subscription", cfg.SubscriptionHandler.CancelSubscription)
	}
}
