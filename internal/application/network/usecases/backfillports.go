package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/network"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type BackfillPortsCommand struct {
	NAPID   uint
	ActorID uint
}

type BackfillPortsResult struct {
	NAP *network.NAP
	// PortsCreated is the number of missing port numbers that were filled.
	PortsCreated int
}

// BackfillPortsUseCase creates any missing port rows in 1..totalPorts for
// an existing NAP. Useful after partial provisioning or manual row loss.
type BackfillPortsUseCase struct {
	txManager *db.TransactionManager
	napRepo   network.NAPRepository
	portRepo  network.PortRepository
	logger    logger.Interface
}

func NewBackfillPortsUseCase(
	txManager *db.TransactionManager,
	napRepo network.NAPRepository,
	portRepo network.PortRepository,
	logger logger.Interface,
) *BackfillPortsUseCase {
	return &BackfillPortsUseCase{
		txManager: txManager,
		napRepo:   napRepo,
		portRepo:  portRepo,
		logger:    logger,
	}
}

func (uc *BackfillPortsUseCase) Execute(ctx context.Context, cmd BackfillPortsCommand) (*BackfillPortsResult, error) {
	var result *BackfillPortsResult

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		txCtx = actor.WithActor(txCtx, actor.Actor{ID: cmd.ActorID})

		nap, err := uc.napRepo.GetByID(txCtx, cmd.NAPID)
		if err != nil {
			uc.logger.Errorw("failed to get nap", "error", err, "nap_id", cmd.NAPID)
			return fmt.Errorf("failed to get nap: %w", err)
		}
		if nap == nil {
			return errors.NewNotFoundError("nap not found")
		}

		existing, err := uc.portRepo.ListNumbersByNAPID(txCtx, nap.ID())
		if err != nil {
			return fmt.Errorf("failed to list port numbers: %w", err)
		}
		present := make(map[int]bool, len(existing))
		for _, number := range existing {
			present[number] = true
		}

		var missing []*network.Port
		for number := 1; number <= nap.TotalPorts(); number++ {
			if present[number] {
				continue
			}
			port, err := network.NewPort(nap.ID(), number)
			if err != nil {
				return fmt.Errorf("failed to build port %d: %w", number, err)
			}
			missing = append(missing, port)
		}

		if len(missing) > 0 {
			if err := uc.portRepo.CreateBatch(txCtx, missing); err != nil {
				uc.logger.Errorw("failed to backfill ports", "error", err, "nap_id", nap.ID())
				return fmt.Errorf("failed to backfill ports: %w", err)
			}
		}

		result = &BackfillPortsResult{
			NAP:          nap,
			PortsCreated: len(missing),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("ports backfilled",
		"nap_id", result.NAP.ID(),
		"ports_created", result.PortsCreated)

	return result, nil
}
