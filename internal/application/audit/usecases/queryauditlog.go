package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/audit"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type QueryAuditLogQuery struct {
	TableName string
	RecordID  uint
	Action    string
	ActorID   uint
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

type QueryAuditLogResult struct {
	Records  []*audit.Record
	Total    int64
	Page     int
	PageSize int
}

// QueryAuditLogUseCase reads the ledger, newest first.
type QueryAuditLogUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewQueryAuditLogUseCase(auditRepo audit.Repository, logger logger.Interface) *QueryAuditLogUseCase {
	return &QueryAuditLogUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *QueryAuditLogUseCase) Execute(ctx context.Context, query QueryAuditLogQuery) (*QueryAuditLogResult, error) {
	filter := audit.Filter{
		TableName: query.TableName,
		RecordID:  query.RecordID,
		ActorID:   query.ActorID,
		From:      query.From,
		To:        query.To,
	}
	if query.Action != "" {
		action := audit.Action(query.Action)
		if !audit.ValidActions[action] {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid action filter: %s", query.Action))
		}
		filter.Action = action
	}

	records, total, err := uc.auditRepo.List(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to query audit log", "error", err)
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}

	return &QueryAuditLogResult{
		Records:  records,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
