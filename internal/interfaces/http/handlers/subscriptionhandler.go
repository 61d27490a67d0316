package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "subtrack/internal/application/subscription/dto"
	"subtrack/internal/application/subscription/usecases"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC *usecases.CreateSubscriptionUseCase
	getSubscriptionUC    *usecases.GetSubscriptionUseCase
	changePlanUC         *usecases.ChangePlanUseCase
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase
	logger               logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC *usecases.CreateSubscriptionUseCase,
	getSubscriptionUC *usecases.GetSubscriptionUseCase,
	changePlanUC *usecases.ChangePlanUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC: createSubscriptionUC,
		getSubscriptionUC:    getSubscriptionUC,
		changePlanUC:         changePlanUC,
		cancelSubscriptionUC: cancelSubscriptionUC,
		logger:               logger.NewLogger(),
	}
}

type CreateSubscriptionRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type ChangePlanRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

// CreateSubscription handles POST /users/:user_id/subscription
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "plan_id is required")
		return
	}

	result, err := h.createSubscriptionUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		UserID: userID,
		PlanID: req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, subdto.ToSubscriptionDTO(result.Subscription, result.Plan), "Subscription created successfully")
}

// GetSubscription handles GET /users/:user_id/subscription
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getSubscriptionUC.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToSubscriptionDTO(result.Subscription, result.Plan))
}

// ChangePlan handles PUT /users/:user_id/subscription
func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "plan_id is required")
		return
	}

	result, err := h.changePlanUC.Execute(c.Request.Context(), usecases.ChangePlanCommand{
		UserID: userID,
		PlanID: req.PlanID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription plan changed successfully", subdto.ToSubscriptionDTO(result.Subscription, result.Plan))
}

// CancelSubscription handles DELETE /users/:user_id/subscription
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.cancelSubscriptionUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		UserID: userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", nil)
}
