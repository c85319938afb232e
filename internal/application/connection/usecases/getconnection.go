package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/client"
	"naplink/internal/domain/connection"
	"naplink/internal/domain/network"
	"naplink/internal/domain/plan"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type GetConnectionQuery struct {
	ConnectionID uint
}

type GetConnectionResult struct {
	Connection *connection.Connection
	Client     *client.Client
	Plan       *plan.Plan
	Port       *network.Port
}

// GetConnectionUseCase loads a connection with its related rows for detail
// screens.
type GetConnectionUseCase struct {
	connRepo   connection.Repository
	clientRepo client.Repository
	planRepo   plan.Repository
	portRepo   network.PortRepository
	logger     logger.Interface
}

func NewGetConnectionUseCase(
	connRepo connection.Repository,
	clientRepo client.Repository,
	planRepo plan.Repository,
	portRepo network.PortRepository,
	logger logger.Interface,
) *GetConnectionUseCase {
	return &GetConnectionUseCase{
		connRepo:   connRepo,
		clientRepo: clientRepo,
		planRepo:   planRepo,
		portRepo:   portRepo,
		logger:     logger,
	}
}

func (uc *GetConnectionUseCase) Execute(ctx context.Context, query GetConnectionQuery) (*GetConnectionResult, error) {
	conn, err := uc.connRepo.GetByID(ctx, query.ConnectionID)
	if err != nil {
		uc.logger.Errorw("failed to get connection", "error", err, "connection_id", query.ConnectionID)
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	if conn == nil {
		return nil, errors.NewNotFoundError("connection not found")
	}

	holder, err := uc.clientRepo.GetByID(ctx, conn.ClientID())
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	connPlan, err := uc.planRepo.GetByID(ctx, conn.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	port, err := uc.portRepo.GetByID(ctx, conn.PortID())
	if err != nil {
		return nil, fmt.Errorf("failed to get port: %w", err)
	}

	return &GetConnectionResult{
		Connection: conn,
		Client:     holder,
		Plan:       connPlan,
		Port:       port,
	}, nil
}
