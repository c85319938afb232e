package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/connection"
	vo "naplink/internal/domain/connection/valueobjects"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type ListConnectionsQuery struct {
	PortID   uint
	ClientID uint
	NAPID    uint
	Status   string
	Page     int
	PageSize int
}

type ListConnectionsResult struct {
	Connections []*connection.Connection
	Total       int64
	Page        int
	PageSize    int
}

type ListConnectionsUseCase struct {
	connRepo connection.Repository
	logger   logger.Interface
}

func NewListConnectionsUseCase(connRepo connection.Repository, logger logger.Interface) *ListConnectionsUseCase {
	return &ListConnectionsUseCase{
		connRepo: connRepo,
		logger:   logger,
	}
}

func (uc *ListConnectionsUseCase) Execute(ctx context.Context, query ListConnectionsQuery) (*ListConnectionsResult, error) {
	filter := connection.ListFilter{
		PortID:   query.PortID,
		ClientID: query.ClientID,
		NAPID:    query.NAPID,
	}
	if query.Status != "" {
		status, ok := vo.ParseStatus(query.Status)
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid status filter: %s", query.Status))
		}
		filter.Status = status
	}

	connections, total, err := uc.connRepo.List(ctx, filter, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list connections", "error", err)
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	return &ListConnectionsResult{
		Connections: connections,
		Total:       total,
		Page:        query.Page,
		PageSize:    query.PageSize,
	}, nil
}
