package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/plan"
	"naplink/internal/shared/logger"
)

type ListPlansQuery struct {
	Page     int
	PageSize int
}

type ListPlansResult struct {
	Plans    []*plan.Plan
	Total    int64
	Page     int
	PageSize int
}

type ListPlansUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo plan.Repository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*ListPlansResult, error) {
	plans, total, err := uc.planRepo.List(ctx, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return &ListPlansResult{
		Plans:    plans,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
