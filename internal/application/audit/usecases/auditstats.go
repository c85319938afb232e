package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/audit"
	"naplink/internal/shared/logger"
)

type AuditStatsQuery struct {
	TableName string
	ActorID   uint
	From      *time.Time
	To        *time.Time
}

type AuditStatsResult struct {
	Stats *audit.Stats
}

// AuditStatsUseCase aggregates ledger counts by action and by table.
type AuditStatsUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewAuditStatsUseCase(auditRepo audit.Repository, logger logger.Interface) *AuditStatsUseCase {
	return &AuditStatsUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *AuditStatsUseCase) Execute(ctx context.Context, query AuditStatsQuery) (*AuditStatsResult, error) {
	stats, err := uc.auditRepo.Stats(ctx, audit.Filter{
		TableName: query.TableName,
		ActorID:   query.ActorID,
		From:      query.From,
		To:        query.To,
	})
	if err != nil {
		uc.logger.Errorw("failed to aggregate audit stats", "error", err)
		return nil, fmt.Errorf("failed to aggregate audit stats: %w", err)
	}

	return &AuditStatsResult{Stats: stats}, nil
}
