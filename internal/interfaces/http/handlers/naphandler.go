package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"naplink/internal/application/network/usecases"
	"naplink/internal/interfaces/http/middleware"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
	"naplink/internal/shared/utils"
)

type NAPHandler struct {
	createNAPUC         *usecases.CreateNAPUseCase
	getNAPUC            *usecases.GetNAPUseCase
	listNAPsUC          *usecases.ListNAPsUseCase
	setNAPMaintenanceUC *usecases.SetNAPMaintenanceUseCase
	backfillPortsUC     *usecases.BackfillPortsUseCase
	scanCapacityUC      *usecases.ScanCapacityUseCase
	logger              logger.Interface
}

func NewNAPHandler(
	createNAPUC *usecases.CreateNAPUseCase,
	getNAPUC *usecases.GetNAPUseCase,
	listNAPsUC *usecases.ListNAPsUseCase,
	setNAPMaintenanceUC *usecases.SetNAPMaintenanceUseCase,
	backfillPortsUC *usecases.BackfillPortsUseCase,
	scanCapacityUC *usecases.ScanCapacityUseCase,
) *NAPHandler {
	return &NAPHandler{
		createNAPUC:         createNAPUC,
		getNAPUC:            getNAPUC,
		listNAPsUC:          listNAPsUC,
		setNAPMaintenanceUC: setNAPMaintenanceUC,
		backfillPortsUC:     backfillPortsUC,
		scanCapacityUC:      scanCapacityUC,
		logger:              logger.NewLogger(),
	}
}

type CreateNAPRequest struct {
	Code       string  `json:"code" binding:"required,max=50"`
	Name       string  `json:"name" binding:"required,max=100"`
	TotalPorts int     `json:"total_ports" binding:"required,min=1,max=1000"`
	Latitude   float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude  float64 `json:"longitude" binding:"min=-180,max=180"`
	Address    string  `json:"address" binding:"max=255"`
}

func (h *NAPHandler) CreateNAP(c *gin.Context) {
	var req CreateNAPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create nap", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.createNAPUC.Execute(c.Request.Context(), usecases.CreateNAPCommand{
		Code:       req.Code,
		Name:       req.Name,
		TotalPorts: req.TotalPorts,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Address:    req.Address,
		ActorID:    middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"nap":           ToNAPResponse(result.NAP),
		"ports_created": result.PortsCreated,
	})
}

func (h *NAPHandler) GetNAP(c *gin.Context) {
	napID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getNAPUC.Execute(c.Request.Context(), usecases.GetNAPQuery{NAPID: napID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"nap":      ToNAPResponse(result.NAP),
		"capacity": ToCapacityResponse(result.Capacity),
	})
}

func (h *NAPHandler) ListNAPs(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listNAPsUC.Execute(c.Request.Context(), usecases.ListNAPsQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]gin.H, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, gin.H{
			"nap":      ToNAPResponse(item.NAP),
			"capacity": ToCapacityResponse(item.Capacity),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(items, result.Total, result.Page, result.PageSize))
}

// ListPorts returns the full port map of a NAP.
func (h *NAPHandler) ListPorts(c *gin.Context) {
	napID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getNAPUC.Execute(c.Request.Context(), usecases.GetNAPQuery{NAPID: napID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ports := make([]PortResponse, 0, len(result.Ports))
	for _, port := range result.Ports {
		ports = append(ports, ToPortResponse(port))
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"ports":    ports,
		"capacity": ToCapacityResponse(result.Capacity),
	})
}

type SetMaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" binding:"required"`
}

func (h *NAPHandler) SetMaintenance(c *gin.Context) {
	napID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.setNAPMaintenanceUC.Execute(c.Request.Context(), usecases.SetNAPMaintenanceCommand{
		NAPID:       napID,
		Maintenance: *req.Maintenance,
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "nap maintenance updated", ToNAPResponse(result.NAP))
}

func (h *NAPHandler) BackfillPorts(c *gin.Context) {
	napID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.backfillPortsUC.Execute(c.Request.Context(), usecases.BackfillPortsCommand{
		NAPID:   napID,
		ActorID: middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ports backfilled", gin.H{
		"nap_id":        result.NAP.ID(),
		"ports_created": result.PortsCreated,
	})
}

func (h *NAPHandler) ScanCapacity(c *gin.Context) {
	result, err := h.scanCapacityUC.Execute(c.Request.Context(), usecases.ScanCapacityCommand{
		ActorID: middleware.ActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	saturated := make([]gin.H, 0, len(result.Saturated))
	for _, r := range result.Saturated {
		saturated = append(saturated, gin.H{"nap_id": r.NAPID, "code": r.Code, "percent": r.Percent})
	}
	cleared := make([]gin.H, 0, len(result.Cleared))
	for _, r := range result.Cleared {
		cleared = append(cleared, gin.H{"nap_id": r.NAPID, "code": r.Code, "percent": r.Percent})
	}
	nearSaturation := make([]gin.H, 0, len(result.NearSaturation))
	for _, r := range result.NearSaturation {
		nearSaturation = append(nearSaturation, gin.H{"nap_id": r.NAPID, "code": r.Code, "percent": r.Percent})
	}

	utils.SuccessResponse(c, http.StatusOK, "capacity scan completed", gin.H{
		"scanned":         result.Scanned,
		"saturated":       saturated,
		"cleared":         cleared,
		"near_saturation": nearSaturation,
	})
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return uint(id), nil
}

func parseQueryID(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, errors.NewValidationError(name + " is not set")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return uint(id), nil
}
