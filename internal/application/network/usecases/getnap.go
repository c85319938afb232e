package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type GetNAPQuery struct {
	NAPID uint
}

type GetNAPResult struct {
	NAP      *network.NAP
	Capacity network.CapacityReport
	Ports    []*network.Port
}

// GetNAPUseCase loads a NAP with its ports and derived occupancy.
type GetNAPUseCase struct {
	napRepo  network.NAPRepository
	portRepo network.PortRepository
	logger   logger.Interface
}

func NewGetNAPUseCase(napRepo network.NAPRepository, portRepo network.PortRepository, logger logger.Interface) *GetNAPUseCase {
	return &GetNAPUseCase{
		napRepo:  napRepo,
		portRepo: portRepo,
		logger:   logger,
	}
}

func (uc *GetNAPUseCase) Execute(ctx context.Context, query GetNAPQuery) (*GetNAPResult, error) {
	nap, err := uc.napRepo.GetByID(ctx, query.NAPID)
	if err != nil {
		uc.logger.Errorw("failed to get nap", "error", err, "nap_id", query.NAPID)
		return nil, fmt.Errorf("failed to get nap: %w", err)
	}
	if nap == nil {
		return nil, errors.NewNotFoundError("nap not found")
	}

	ports, err := uc.portRepo.ListByNAPID(ctx, nap.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}

	occupied := 0
	for _, port := range ports {
		if port.Status() == vo.PortStatusOccupied {
			occupied++
		}
	}

	return &GetNAPResult{
		NAP:   nap,
		Ports: ports,
		Capacity: network.CapacityReport{
			NAPID:         nap.ID(),
			Code:          nap.Code(),
			TotalPorts:    nap.TotalPorts(),
			OccupiedPorts: occupied,
			Percent:       network.OccupancyPercent(occupied, nap.TotalPorts()),
		},
	}, nil
}
