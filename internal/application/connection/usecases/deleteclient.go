package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/client"
	"naplink/internal/domain/connection"
	"naplink/internal/domain/network"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type DeleteClientCommand struct {
	ClientID uint
	ActorID  uint
}

type DeleteClientResult struct {
	// ConnectionsFinalized is the number of live connections ended by the
	// cascade.
	ConnectionsFinalized int
}

// DeleteClientUseCase removes a client. Every live connection of the client
// is finalized first (freeing ports and clearing saturation flags), then
// the client row is deleted, all in one transaction.
type DeleteClientUseCase struct {
	txManager  *db.TransactionManager
	clientRepo client.Repository
	connRepo   connection.Repository
	portRepo   network.PortRepository
	napRepo    network.NAPRepository
	logger     logger.Interface
}

func NewDeleteClientUseCase(
	txManager *db.TransactionManager,
	clientRepo client.Repository,
	connRepo connection.Repository,
	portRepo network.PortRepository,
	napRepo network.NAPRepository,
	logger logger.Interface,
) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		txManager:  txManager,
		clientRepo: clientRepo,
		connRepo:   connRepo,
		portRepo:   portRepo,
		napRepo:    napRepo,
		logger:     logger,
	}
}

func (uc *DeleteClientUseCase) Execute(ctx context.Context, cmd DeleteClientCommand) (*DeleteClientResult, error) {
	var result *DeleteClientResult

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		txCtx = actor.WithActor(txCtx, actor.Actor{ID: cmd.ActorID})

		target, err := uc.clientRepo.GetByID(txCtx, cmd.ClientID)
		if err != nil {
			uc.logger.Errorw("failed to get client", "error", err, "client_id", cmd.ClientID)
			return fmt.Errorf("failed to get client: %w", err)
		}
		if target == nil {
			return errors.NewNotFoundError("client not found")
		}

		live, err := uc.connRepo.ListLiveByClientID(txCtx, target.ID())
		if err != nil {
			return fmt.Errorf("failed to list live connections: %w", err)
		}

		now := time.Now().UTC()
		for _, conn := range live {
			if err := finalizeAndFreePort(txCtx, conn, now, uc.connRepo, uc.portRepo, uc.napRepo); err != nil {
				return err
			}
		}

		if err := uc.clientRepo.Delete(txCtx, target.ID()); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		result = &DeleteClientResult{ConnectionsFinalized: len(live)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("client deleted",
		"client_id", cmd.ClientID,
		"connections_finalized", result.ConnectionsFinalized)

	return result, nil
}
