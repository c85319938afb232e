package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/client"
	"naplink/internal/domain/connection"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type GetClientQuery struct {
	ClientID uint
}

type GetClientResult struct {
	Client *client.Client
	// LiveConnections are the client's currently active or suspended
	// connections.
	LiveConnections []*connection.Connection
}

type GetClientUseCase struct {
	clientRepo client.Repository
	connRepo   connection.Repository
	logger     logger.Interface
}

func NewGetClientUseCase(clientRepo client.Repository, connRepo connection.Repository, logger logger.Interface) *GetClientUseCase {
	return &GetClientUseCase{
		clientRepo: clientRepo,
		connRepo:   connRepo,
		logger:     logger,
	}
}

func (uc *GetClientUseCase) Execute(ctx context.Context, query GetClientQuery) (*GetClientResult, error) {
	target, err := uc.clientRepo.GetByID(ctx, query.ClientID)
	if err != nil {
		uc.logger.Errorw("failed to get client", "error", err, "client_id", query.ClientID)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if target == nil {
		return nil, errors.NewNotFoundError("client not found")
	}

	live, err := uc.connRepo.ListLiveByClientID(ctx, target.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list live connections: %w", err)
	}

	return &GetClientResult{
		Client:          target,
		LiveConnections: live,
	}, nil
}
