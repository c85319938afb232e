package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type SetNAPMaintenanceCommand struct {
	NAPID uint
	// Maintenance true takes the NAP out of service; false returns it. On
	// return, the saturated flag is recomputed from occupancy.
	Maintenance bool
	ActorID     uint
}

type SetNAPMaintenanceResult struct {
	NAP *network.NAP
}

// SetNAPMaintenanceUseCase flips a NAP between operator-set maintenance and
// capacity-derived service states.
type SetNAPMaintenanceUseCase struct {
	txManager *db.TransactionManager
	napRepo   network.NAPRepository
	portRepo  network.PortRepository
	logger    logger.Interface
}

func NewSetNAPMaintenanceUseCase(
	txManager *db.TransactionManager,
	napRepo network.NAPRepository,
	portRepo network.PortRepository,
	logger logger.Interface,
) *SetNAPMaintenanceUseCase {
	return &SetNAPMaintenanceUseCase{
		txManager: txManager,
		napRepo:   napRepo,
		portRepo:  portRepo,
		logger:    logger,
	}
}

func (uc *SetNAPMaintenanceUseCase) Execute(ctx context.Context, cmd SetNAPMaintenanceCommand) (*SetNAPMaintenanceResult, error) {
	var result *SetNAPMaintenanceResult

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

		if cmd.Maintenance {
			if err := nap.EnterMaintenance(); err != nil {
				return errors.NewConflictError(err.Error())
			}
		} else {
			if err := nap.Activate(); err != nil {
				return errors.NewConflictError(err.Error())
			}
			// Maintenance may have masked a full NAP; recompute.
			occupied, err := uc.portRepo.CountByNAPIDAndStatus(txCtx, nap.ID(), vo.PortStatusOccupied)
			if err != nil {
				return fmt.Errorf("failed to count occupied ports: %w", err)
			}
			if int(occupied) >= nap.TotalPorts() {
				if err := nap.MarkSaturated(); err != nil {
					return fmt.Errorf("failed to mark nap saturated: %w", err)
				}
			}
		}

		if err := uc.napRepo.Update(txCtx, nap); err != nil {
			return fmt.Errorf("failed to update nap: %w", err)
		}

		result = &SetNAPMaintenanceResult{NAP: nap}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("nap maintenance updated",
		"nap_id", result.NAP.ID(),
		"status", result.NAP.Status().String())

	return result, nil
}
