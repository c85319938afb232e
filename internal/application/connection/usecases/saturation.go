package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/connection"
	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
)

// markSaturatedIfFull flips the NAP to saturated when every port is
// occupied. Called after a port becomes occupied, inside the same
// transaction.
func markSaturatedIfFull(ctx context.Context, napRepo network.NAPRepository, portRepo network.PortRepository, napID uint) error {
	nap, err := napRepo.GetByID(ctx, napID)
	if err != nil {
		return fmt.Errorf("failed to get nap: %w", err)
	}
	if nap == nil {
		return fmt.Errorf("nap %d not found", napID)
	}
	if nap.Status() == vo.NAPStatusMaintenance {
		return nil
	}

	occupied, err := portRepo.CountByNAPIDAndStatus(ctx, napID, vo.PortStatusOccupied)
	if err != nil {
		return fmt.Errorf("failed to count occupied ports: %w", err)
	}
	if int(occupied) < nap.TotalPorts() {
		return nil
	}

	if err := nap.MarkSaturated(); err != nil {
		return fmt.Errorf("failed to mark nap saturated: %w", err)
	}
	return napRepo.Update(ctx, nap)
}

// clearSaturationIfBelowFull returns a saturated NAP to active once
// occupancy drops below 100%. Called after a port is freed, inside the same
// transaction.
func clearSaturationIfBelowFull(ctx context.Context, napRepo network.NAPRepository, portRepo network.PortRepository, napID uint) error {
	nap, err := napRepo.GetByID(ctx, napID)
	if err != nil {
		return fmt.Errorf("failed to get nap: %w", err)
	}
	if nap == nil {
		return fmt.Errorf("nap %d not found", napID)
	}
	if nap.Status() != vo.NAPStatusSaturated {
		return nil
	}

	occupied, err := portRepo.CountByNAPIDAndStatus(ctx, napID, vo.PortStatusOccupied)
	if err != nil {
		return fmt.Errorf("failed to count occupied ports: %w", err)
	}
	if int(occupied) >= nap.TotalPorts() {
		return nil
	}

	if err := nap.ClearSaturation(); err != nil {
		return fmt.Errorf("failed to clear nap saturation: %w", err)
	}
	return napRepo.Update(ctx, nap)
}

// finalizeAndFreePort ends the connection and frees its port, then clears
// the NAP saturation flag when occupancy dropped below capacity. The
// connection row is updated before the port row.
func finalizeAndFreePort(
	ctx context.Context,
	conn *connection.Connection,
	at time.Time,
	connRepo connection.Repository,
	portRepo network.PortRepository,
	napRepo network.NAPRepository,
) error {
	if err := conn.Finalize(at); err != nil {
		return err
	}
	if err := connRepo.Update(ctx, conn); err != nil {
		return fmt.Errorf("failed to update connection: %w", err)
	}

	port, err := portRepo.GetByIDForUpdate(ctx, conn.PortID())
	if err != nil {
		return fmt.Errorf("failed to get port: %w", err)
	}
	if port == nil {
		return fmt.Errorf("port %d not found", conn.PortID())
	}
	if err := port.Release(); err != nil {
		return fmt.Errorf("failed to release port: %w", err)
	}
	if err := portRepo.Update(ctx, port); err != nil {
		return fmt.Errorf("failed to update port: %w", err)
	}

	return clearSaturationIfBelowFull(ctx, napRepo, portRepo, port.NAPID())
}
