package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"naplink/internal/application/connection/usecases"
	"naplink/internal/interfaces/http/middleware"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
	"naplink/internal/shared/utils"
)

type ConnectionHandler struct {
	allocatePortUC *usecases.AllocatePortUseCase
	transitionUC   *usecases.TransitionConnectionUseCase
	releasePortUC  *usecases.ReleasePortUseCase
	getConnUC      *usecases.GetConnectionUseCase
	listConnsUC    *usecases.ListConnectionsUseCase
	logger         logger.Interface
}

func NewConnectionHandler(
	allocatePortUC *usecases.AllocatePortUseCase,
	transitionUC *usecases.TransitionConnectionUseCase,
	releasePortUC *usecases.ReleasePortUseCase,
	getConnUC *usecases.GetConnectionUseCase,
	listConnsUC *usecases.ListConnectionsUseCase,
) *ConnectionHandler {
	return &ConnectionHandler{
		allocatePortUC: allocatePortUC,
		transitionUC:   transitionUC,
		releasePortUC:  releasePortUC,
		getConnUC:      getConnUC,
		listConnsUC:    listConnsUC,
		logger:         logger.NewLogger(),
	}
}

type AllocatePortRequest struct {
	PortID        uint   `json:"port_id" binding:"required"`
	PlanID        uint   `json:"plan_id" binding:"required"`
	InitialStatus string `json:"initial_status" binding:"omitempty,oneof=active suspended"`
	StartDate     string `json:"start_date" binding:"omitempty"`
	Note          string `json:"note" binding:"max=255"`

	DocumentNumber string `json:"document_number" binding:"required,max=32"`
	ClientName     string `json:"client_name" binding:"required,max=100"`
	ClientEmail    string `json:"client_email" binding:"omitempty,email"`
	ClientPhone    string `json:"client_phone" binding:"max=32"`
	ClientAddress  string `json:"client_address" binding:"max=255"`
}

func (h *ConnectionHandler) Allocate(c *gin.Context) {
	var req AllocatePortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for allocate", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("start_date must be RFC3339"))
			return
		}
		startDate = parsed
	}

	result, err := h.allocatePortUC.Execute(c.Request.Context(), usecases.AllocatePortCommand{
		PortID:         req.PortID,
		PlanID:         req.PlanID,
		InitialStatus:  req.InitialStatus,
		StartDate:      startDate,
		Note:           req.Note,
		ActorID:        middleware.ActorID(c),
		DocumentNumber: req.DocumentNumber,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		ClientAddress:  req.ClientAddress,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"connection":    ToConnectionResponse(result.Connection),
		"client":        ToClientResponse(result.Client),
		"port":          ToPortResponse(result.Port),
		"nap_saturated": result.NAPSaturated,
	})
}

type TransitionRequest struct {
	Status string  `json:"status" binding:"required,oneof=active suspended finalized"`
	PlanID uint    `json:"plan_id"`
	Note   *string `json:"note" binding:"omitempty,max=255"`
}

func (h *ConnectionHandler) Transition(c *gin.Context) {
	connID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.transitionUC.Execute(c.Request.Context(), usecases.TransitionConnectionCommand{
		ConnectionID: connID,
		TargetStatus: req.Status,
		PlanID:       req.PlanID,
		Note:         req.Note,
		ActorID:      middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "connection transitioned", gin.H{
		"connection": ToConnectionResponse(result.Connection),
		"port_freed": result.PortFreed,
	})
}

func (h *ConnectionHandler) ReleasePort(c *gin.Context) {
	portID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.releasePortUC.Execute(c.Request.Context(), usecases.ReleasePortCommand{
		PortID:  portID,
		ActorID: middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payload := gin.H{"port": ToPortResponse(result.Port)}
	if result.Finalized != nil {
		payload["finalized_connection"] = ToConnectionResponse(result.Finalized)
	}
	utils.SuccessResponse(c, http.StatusOK, "port released", payload)
}

func (h *ConnectionHandler) GetConnection(c *gin.Context) {
	connID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getConnUC.Execute(c.Request.Context(), usecases.GetConnectionQuery{ConnectionID: connID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payload := gin.H{"connection": ToConnectionResponse(result.Connection)}
	if result.Client != nil {
		payload["client"] = ToClientResponse(result.Client)
	}
	if result.Plan != nil {
		payload["plan"] = ToPlanResponse(result.Plan)
	}
	if result.Port != nil {
		payload["port"] = ToPortResponse(result.Port)
	}
	utils.SuccessResponse(c, http.StatusOK, "", payload)
}

func (h *ConnectionHandler) ListConnections(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListConnectionsQuery{
		Status:   c.Query("status"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
	if id, err := parseQueryID(c, "port_id"); err == nil {
		query.PortID = id
	}
	if id, err := parseQueryID(c, "client_id"); err == nil {
		query.ClientID = id
	}
	if id, err := parseQueryID(c, "nap_id"); err == nil {
		query.NAPID = id
	}

	result, err := h.listConnsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(ToConnectionResponses(result.Connections), result.Total, result.Page, result.PageSize))
}
