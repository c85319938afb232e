package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"naplink/internal/application/plan/usecases"
	"naplink/internal/interfaces/http/middleware"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
	"naplink/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC *usecases.CreatePlanUseCase
	listPlansUC  *usecases.ListPlansUseCase
	logger       logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC: createPlanUC,
		listPlansUC:  listPlansUC,
		logger:       logger.NewLogger(),
	}
}

type CreatePlanRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	DownloadMbps int    `json:"download_mbps" binding:"required,min=1"`
	UploadMbps   int    `json:"upload_mbps" binding:"required,min=1"`
	PriceCents   int64  `json:"price_cents" binding:"min=0"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:         req.Name,
		DownloadMbps: req.DownloadMbps,
		UploadMbps:   req.UploadMbps,
		PriceCents:   req.PriceCents,
		ActorID:      middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, ToPlanResponse(result.Plan))
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListPlansQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	plans := make([]PlanResponse, 0, len(result.Plans))
	for _, item := range result.Plans {
		plans = append(plans, ToPlanResponse(item))
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(plans, result.Total, result.Page, result.PageSize))
}
