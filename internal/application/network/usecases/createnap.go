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

type CreateNAPCommand struct {
	Code       string
	Name       string
	TotalPorts int
	Latitude   float64
	Longitude  float64
	Address    string
	ActorID    uint
}

type CreateNAPResult struct {
	NAP          *network.NAP
	PortsCreated int
}

// CreateNAPUseCase provisions a NAP together with its full port range
// 1..totalPorts in one transaction.
type CreateNAPUseCase struct {
	txManager *db.TransactionManager
	napRepo   network.NAPRepository
	portRepo  network.PortRepository
	logger    logger.Interface
}

func NewCreateNAPUseCase(
	txManager *db.TransactionManager,
	napRepo network.NAPRepository,
	portRepo network.PortRepository,
	logger logger.Interface,
) *CreateNAPUseCase {
	return &CreateNAPUseCase{
		txManager: txManager,
		napRepo:   napRepo,
		portRepo:  portRepo,
		logger:    logger,
	}
}

func (uc *CreateNAPUseCase) Execute(ctx context.Context, cmd CreateNAPCommand) (*CreateNAPResult, error) {
	nap, err := network.NewNAP(cmd.Code, cmd.Name, cmd.TotalPorts, cmd.Latitude, cmd.Longitude, cmd.Address)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var result *CreateNAPResult

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		txCtx = actor.WithActor(txCtx, actor.Actor{ID: cmd.ActorID})

		if err := uc.napRepo.Create(txCtx, nap); err != nil {
			uc.logger.Errorw("failed to create nap", "error", err, "code", cmd.Code)
			return err
		}

		ports := make([]*network.Port, 0, nap.TotalPorts())
		for number := 1; number <= nap.TotalPorts(); number++ {
			port, err := network.NewPort(nap.ID(), number)
			if err != nil {
				return fmt.Errorf("failed to build port %d: %w", number, err)
			}
			ports = append(ports, port)
		}
		if err := uc.portRepo.CreateBatch(txCtx, ports); err != nil {
			uc.logger.Errorw("failed to create ports", "error", err, "nap_id", nap.ID())
			return fmt.Errorf("failed to create ports: %w", err)
		}

		result = &CreateNAPResult{
			NAP:          nap,
			PortsCreated: len(ports),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("nap created",
		"nap_id", result.NAP.ID(),
		"code", result.NAP.Code(),
		"ports_created", result.PortsCreated)

	return result, nil
}
