package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/connection"
	vo "naplink/internal/domain/connection/valueobjects"
	"naplink/internal/domain/network"
	"naplink/internal/domain/plan"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type TransitionConnectionCommand struct {
	ConnectionID uint
	TargetStatus string
	// PlanID, when non-zero, switches the connection's plan in the same
	// operation. Only legal while the connection stays live.
	PlanID  uint
	Note    *string
	ActorID uint
}

type TransitionConnectionResult struct {
	Connection *connection.Connection
	// PortFreed reports whether the transition released the port.
	PortFreed bool
}

// TransitionConnectionUseCase moves a connection along its lifecycle:
// active <-> suspended, and either into finalized. Finalizing frees the
// port and eager-clears the owning NAP's saturation flag in the same
// transaction.
type TransitionConnectionUseCase struct {
	txManager *db.TransactionManager
	connRepo  connection.Repository
	portRepo  network.PortRepository
	napRepo   network.NAPRepository
	planRepo  plan.Repository
	logger    logger.Interface
}

func NewTransitionConnectionUseCase(
	txManager *db.TransactionManager,
	connRepo connection.Repository,
	portRepo network.PortRepository,
	napRepo network.NAPRepository,
	planRepo plan.Repository,
	logger logger.Interface,
) *TransitionConnectionUseCase {
	return &TransitionConnectionUseCase{
		txManager: txManager,
		connRepo:  connRepo,
		portRepo:  portRepo,
		napRepo:   napRepo,
		planRepo:  planRepo,
		logger:    logger,
	}
}

func (uc *TransitionConnectionUseCase) Execute(ctx context.Context, cmd TransitionConnectionCommand) (*TransitionConnectionResult, error) {
	target, ok := vo.ParseStatus(cmd.TargetStatus)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid target status: %s", cmd.TargetStatus))
	}

	var result *TransitionConnectionResult

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		txCtx = actor.WithActor(txCtx, actor.Actor{ID: cmd.ActorID})

		conn, err := uc.connRepo.GetByID(txCtx, cmd.ConnectionID)
		if err != nil {
			uc.logger.Errorw("failed to get connection", "error", err, "connection_id", cmd.ConnectionID)
			return fmt.Errorf("failed to get connection: %w", err)
		}
		if conn == nil {
			return errors.NewNotFoundError("connection not found")
		}
		if conn.IsFinalized() {
			return errors.NewConflictError("connection is already finalized")
		}

		if cmd.PlanID != 0 && cmd.PlanID != conn.PlanID() {
			if target == vo.StatusFinalized {
				return errors.NewValidationError("cannot change plan while finalizing")
			}
			newPlan, err := uc.planRepo.GetByID(txCtx, cmd.PlanID)
			if err != nil {
				return fmt.Errorf("failed to get plan: %w", err)
			}
			if newPlan == nil {
				return errors.NewNotFoundError("plan not found")
			}
			if !newPlan.IsActive() {
				return errors.NewConflictError("plan is not active")
			}
			if err := conn.ChangePlan(newPlan.ID()); err != nil {
				return errors.NewConflictError(err.Error())
			}
		}
		if cmd.Note != nil {
			conn.UpdateNote(*cmd.Note)
		}

		portFreed := false
		switch target {
		case vo.StatusSuspended:
			if err := conn.Suspend(); err != nil {
				return errors.NewConflictError(err.Error())
			}
			if err := uc.connRepo.Update(txCtx, conn); err != nil {
				return fmt.Errorf("failed to update connection: %w", err)
			}
		case vo.StatusActive:
			if err := conn.Reactivate(); err != nil {
				return errors.NewConflictError(err.Error())
			}
			if err := uc.connRepo.Update(txCtx, conn); err != nil {
				return fmt.Errorf("failed to update connection: %w", err)
			}
		case vo.StatusFinalized:
			if err := finalizeAndFreePort(txCtx, conn, time.Now().UTC(), uc.connRepo, uc.portRepo, uc.napRepo); err != nil {
				return err
			}
			portFreed = true
		}

		result = &TransitionConnectionResult{
			Connection: conn,
			PortFreed:  portFreed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("connection transitioned",
		"connection_id", result.Connection.ID(),
		"status", result.Connection.Status().String(),
		"port_freed", result.PortFreed)

	return result, nil
}
