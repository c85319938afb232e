package usecases

import (
	"context"
	"fmt"

	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/shared/logger"
)

type ListNAPsQuery struct {
	Page     int
	PageSize int
}

// NAPListItem pairs a NAP with its derived occupancy for list screens.
type NAPListItem struct {
	NAP      *network.NAP
	Capacity network.CapacityReport
}

type ListNAPsResult struct {
	Items    []NAPListItem
	Total    int64
	Page     int
	PageSize int
}

type ListNAPsUseCase struct {
	napRepo  network.NAPRepository
	portRepo network.PortRepository
	logger   logger.Interface
}

func NewListNAPsUseCase(napRepo network.NAPRepository, portRepo network.PortRepository, logger logger.Interface) *ListNAPsUseCase {
	return &ListNAPsUseCase{
		napRepo:  napRepo,
		portRepo: portRepo,
		logger:   logger,
	}
}

func (uc *ListNAPsUseCase) Execute(ctx context.Context, query ListNAPsQuery) (*ListNAPsResult, error) {
	naps, total, err := uc.napRepo.List(ctx, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list naps", "error", err)
		return nil, fmt.Errorf("failed to list naps: %w", err)
	}

	items := make([]NAPListItem, 0, len(naps))
	for _, nap := range naps {
		occupied, err := uc.portRepo.CountByNAPIDAndStatus(ctx, nap.ID(), vo.PortStatusOccupied)
		if err != nil {
			return nil, fmt.Errorf("failed to count occupied ports for nap %d: %w", nap.ID(), err)
		}
		items = append(items, NAPListItem{
			NAP: nap,
			Capacity: network.CapacityReport{
				NAPID:         nap.ID(),
				Code:          nap.Code(),
				TotalPorts:    nap.TotalPorts(),
				OccupiedPorts: int(occupied),
				Percent:       network.OccupancyPercent(int(occupied), nap.TotalPorts()),
			},
		})
	}

	return &ListNAPsResult{
		Items:    items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
