package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"naplink/internal/application/audit/usecases"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
	"naplink/internal/shared/utils"
)

type AuditHandler struct {
	queryAuditLogUC     *usecases.QueryAuditLogUseCase
	auditStatsUC        *usecases.AuditStatsUseCase
	listTrackedTablesUC *usecases.ListTrackedTablesUseCase
	logger              logger.Interface
}

func NewAuditHandler(
	queryAuditLogUC *usecases.QueryAuditLogUseCase,
	auditStatsUC *usecases.AuditStatsUseCase,
	listTrackedTablesUC *usecases.ListTrackedTablesUseCase,
) *AuditHandler {
	return &AuditHandler{
		queryAuditLogUC:     queryAuditLogUC,
		auditStatsUC:        auditStatsUC,
		listTrackedTablesUC: listTrackedTablesUC,
		logger:              logger.NewLogger(),
	}
}

func (h *AuditHandler) QueryRecords(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.QueryAuditLogQuery{
		TableName: c.Query("table"),
		Action:    c.Query("action"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	}
	if id, err := parseQueryID(c, "record_id"); err == nil {
		query.RecordID = id
	}
	if id, err := parseQueryID(c, "actor_id"); err == nil {
		query.ActorID = id
	}

	from, to, err := parseTimeRange(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	query.From = from
	query.To = to

	result, err := h.queryAuditLogUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	records := make([]AuditRecordResponse, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, ToAuditRecordResponse(record))
	}

	utils.SuccessResponse(c, http.StatusOK, "",
		utils.NewListResponse(records, result.Total, result.Page, result.PageSize))
}

func (h *AuditHandler) Stats(c *gin.Context) {
	query := usecases.AuditStatsQuery{
		TableName: c.Query("table"),
	}
	if id, err := parseQueryID(c, "actor_id"); err == nil {
		query.ActorID = id
	}

	from, to, err := parseTimeRange(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	query.From = from
	query.To = to

	result, err := h.auditStatsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	byAction := make(map[string]int64, len(result.Stats.ByAction))
	for action, count := range result.Stats.ByAction {
		byAction[action.String()] = count
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"total":     result.Stats.Total,
		"by_action": byAction,
		"by_table":  result.Stats.ByTable,
	})
}

func (h *AuditHandler) TrackedTables(c *gin.Context) {
	result := h.listTrackedTablesUC.Execute(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"tables": result.Tables})
}

func parseTimeRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, errors.NewValidationError("from must be RFC3339")
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, errors.NewValidationError("to must be RFC3339")
		}
		to = &t
	}
	return from, to, nil
}
