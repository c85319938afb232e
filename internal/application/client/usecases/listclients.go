package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/client"
	"naplink/internal/shared/logger"
)

type ListClientsQuery struct {
	Page     int
	PageSize int
}

type ListClientsResult struct {
	Clients  []*client.Client
	Total    int64
	Page     int
	PageSize int
}

type ListClientsUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewListClientsUseCase(clientRepo client.Repository, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, query ListClientsQuery) (*ListClientsResult, error) {
	clients, total, err := uc.clientRepo.List(ctx, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list clients", "error", err)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return &ListClientsResult{
		Clients:  clients,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
