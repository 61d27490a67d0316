package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "subtrack/internal/application/subscription/dto"
	"subtrack/internal/domain/subscription"
	"subtrack/internal/shared/logger"
	"subtrack/internal/shared/utils"
)

// PlanLister reads the plan catalog.
type PlanLister interface {
	List(ctx context.Context) ([]*subscription.Plan, error)
	GetByID(ctx context.Context, id uint) (*subscription.Plan, error)
}

type PlanHandler struct {
	plans  PlanLister
	logger logger.Interface
}

func NewPlanHandler(plans PlanLister) *PlanHandler {
	return &PlanHandler{
		plans:  plans,
		logger: logger.NewLogger(),
	}
}

// ListPlans handles GET /plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list plans", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToPlanDTOList(plans))
}

// GetPlan handles GET /plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plan, err := h.plans.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to get plan", "plan_id", id, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if plan == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "plan not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subdto.ToPlanDTO(plan))
}
