package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/connection"
	"naplink/internal/domain/network"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type ReleasePortCommand struct {
	PortID  uint
	ActorID uint
}

type ReleasePortResult struct {
	Port *network.Port
	// Finalized carries the connection that the release ended, nil when the
	// port was already free.
	Finalized *connection.Connection
}

// ReleasePortUseCase frees a port. When a live connection occupies it, the
// connection is finalized through the same path as an explicit transition;
// releasing an already-free port succeeds without mutating anything.
type ReleasePortUseCase struct {
	txManager *db.TransactionManager
	connRepo  connection.Repository
	portRepo  network.PortRepository
	napRepo   network.NAPRepository
	logger    logger.Interface
}

func NewReleasePortUseCase(
	txManager *db.TransactionManager,
	connRepo connection.Repository,
	portRepo network.PortRepository,
	napRepo network.NAPRepository,
	logger logger.Interface,
) *ReleasePortUseCase {
	return &ReleasePortUseCase{
		txManager: txManager,
		connRepo:  connRepo,
		portRepo:  portRepo,
		napRepo:   napRepo,
		logger:    logger,
	}
}

func (uc *ReleasePortUseCase) Execute(ctx context.Context, cmd ReleasePortCommand) (*ReleasePortResult, error) {
	var result *ReleasePortResult

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		txCtx = actor.WithActor(txCtx, actor.Actor{ID: cmd.ActorID})

		port, err := uc.portRepo.GetByIDForUpdate(txCtx, cmd.PortID)
		if err != nil {
			uc.logger.Errorw("failed to get port", "error", err, "port_id", cmd.PortID)
			return fmt.Errorf("failed to get port: %w", err)
		}
		if port == nil {
			return errors.NewNotFoundError("port not found")
		}

		live, err := uc.connRepo.GetLiveByPortID(txCtx, port.ID())
		if err != nil {
			return fmt.Errorf("failed to get live connection: %w", err)
		}
		if live == nil {
			// Already free: idempotent success.
			result = &ReleasePortResult{Port: port}
			return nil
		}

		if err := finalizeAndFreePort(txCtx, live, time.Now().UTC(), uc.connRepo, uc.portRepo, uc.napRepo); err != nil {
			return err
		}

		freed, err := uc.portRepo.GetByID(txCtx, port.ID())
		if err != nil {
			return fmt.Errorf("failed to reload port: %w", err)
		}

		result = &ReleasePortResult{
			Port:      freed,
			Finalized: live,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Finalized != nil {
		uc.logger.Infow("port released",
			"port_id", result.Port.ID(),
			"connection_id", result.Finalized.ID())
	}

	return result, nil
}
