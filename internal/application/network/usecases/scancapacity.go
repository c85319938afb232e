package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/logger"
)

// AlertDeduplicator suppresses repeated near-saturation warnings for the
// cooldown period. Implemented by the redis-backed store; nil disables
// deduplication.
type AlertDeduplicator interface {
	ShouldAlert(ctx context.Context, napID uint) (bool, error)
	MarkAlerted(ctx context.Context, napID uint, ttl time.Duration) error
}

type ScanCapacityCommand struct {
	// ActorID attributes reconciliation flips in the audit trail; zero means
	// a system-initiated scan.
	ActorID uint
}

type ScanCapacityResult struct {
	Scanned int
	// Saturated lists NAPs flipped to saturated by this pass.
	Saturated []network.CapacityReport
	// Cleared lists saturated NAPs returned to active by this pass.
	Cleared []network.CapacityReport
	// NearSaturation lists NAPs at or above the warning threshold but below
	// capacity; deduplicated when an AlertDeduplicator is wired.
	NearSaturation []network.CapacityReport
}

// ScanCapacityUseCase is the reconciliation and alerting pass over all NAPs.
// The lifecycle operations keep the saturated flag current eagerly; the scan
// repairs any drift and is the only producer of near-saturation warnings.
type ScanCapacityUseCase struct {
	txManager     *db.TransactionManager
	napRepo       network.NAPRepository
	portRepo      network.PortRepository
	deduplicator  AlertDeduplicator
	alertCooldown time.Duration
	logger        logger.Interface
}

func NewScanCapacityUseCase(
	txManager *db.TransactionManager,
	napRepo network.NAPRepository,
	portRepo network.PortRepository,
	logger logger.Interface,
) *ScanCapacityUseCase {
	return &ScanCapacityUseCase{
		txManager: txManager,
		napRepo:   napRepo,
		portRepo:  portRepo,
		logger:    logger,
	}
}

// SetAlertDeduplicator wires the optional warning deduplicator.
func (uc *ScanCapacityUseCase) SetAlertDeduplicator(d AlertDeduplicator, cooldown time.Duration) {
	uc.deduplicator = d
	uc.alertCooldown = cooldown
}

func (uc *ScanCapacityUseCase) Execute(ctx context.Context, cmd ScanCapacityCommand) (*ScanCapacityResult, error) {
	result := &ScanCapacityResult{}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		txCtx = actor.WithActor(txCtx, actor.Actor{ID: cmd.ActorID})

		const pageSize = 200
		var naps []*network.NAP
		for page := 1; ; page++ {
			batch, total, err := uc.napRepo.List(txCtx, page, pageSize)
			if err != nil {
				return fmt.Errorf("failed to list naps: %w", err)
			}
			naps = append(naps, batch...)
			if len(batch) < pageSize || int64(len(naps)) >= total {
				break
			}
		}

		for _, nap := range naps {
			if nap.Status() == vo.NAPStatusMaintenance {
				continue
			}
			result.Scanned++

			occupied, err := uc.portRepo.CountByNAPIDAndStatus(txCtx, nap.ID(), vo.PortStatusOccupied)
			if err != nil {
				return fmt.Errorf("failed to count occupied ports for nap %d: %w", nap.ID(), err)
			}

			report := network.CapacityReport{
				NAPID:         nap.ID(),
				Code:          nap.Code(),
				TotalPorts:    nap.TotalPorts(),
				OccupiedPorts: int(occupied),
				Percent:       network.OccupancyPercent(int(occupied), nap.TotalPorts()),
			}

			switch {
			case report.Saturated() && nap.Status() != vo.NAPStatusSaturated:
				if err := nap.MarkSaturated(); err != nil {
					return fmt.Errorf("failed to mark nap %d saturated: %w", nap.ID(), err)
				}
				if err := uc.napRepo.Update(txCtx, nap); err != nil {
					return fmt.Errorf("failed to update nap %d: %w", nap.ID(), err)
				}
				result.Saturated = append(result.Saturated, report)

			case !report.Saturated() && nap.Status() == vo.NAPStatusSaturated:
				if err := nap.ClearSaturation(); err != nil {
					return fmt.Errorf("failed to clear saturation on nap %d: %w", nap.ID(), err)
				}
				if err := uc.napRepo.Update(txCtx, nap); err != nil {
					return fmt.Errorf("failed to update nap %d: %w", nap.ID(), err)
				}
				result.Cleared = append(result.Cleared, report)
			}

			if report.NearSaturation() {
				if uc.shouldWarn(ctx, nap.ID()) {
					result.NearSaturation = append(result.NearSaturation, report)
					uc.logger.Warnw("nap near saturation",
						"nap_id", nap.ID(),
						"code", nap.Code(),
						"percent", report.Percent)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("capacity scan completed",
		"scanned", result.Scanned,
		"saturated", len(result.Saturated),
		"cleared", len(result.Cleared),
		"near_saturation", len(result.NearSaturation))

	return result, nil
}

// shouldWarn applies the cooldown; dedup failures fall back to warning so a
// redis outage never silences capacity alerts.
func (uc *ScanCapacityUseCase) shouldWarn(ctx context.Context, napID uint) bool {
	if uc.deduplicator == nil {
		return true
	}
	ok, err := uc.deduplicator.ShouldAlert(ctx, napID)
	if err != nil {
		uc.logger.Warnw("alert dedup check failed", "error", err, "nap_id", napID)
		return true
	}
	if !ok {
		return false
	}
	if err := uc.deduplicator.MarkAlerted(ctx, napID, uc.alertCooldown); err != nil {
		uc.logger.Warnw("failed to mark alert cooldown", "error", err, "nap_id", napID)
	}
	return true
}
