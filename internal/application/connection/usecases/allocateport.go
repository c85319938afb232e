package usecases

import (
	"context"
	"fmt"
	"time"

	"naplink/internal/domain/client"
	"naplink/internal/domain/connection"
	convo "naplink/internal/domain/connection/valueobjects"
	"naplink/internal/domain/network"
	netvo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/domain/plan"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type AllocatePortCommand struct {
	PortID        uint
	PlanID        uint
	InitialStatus string // "active" (default) or "suspended"
	StartDate     time.Time
	Note          string
	ActorID       uint

	// Client upsert fields, keyed by DocumentNumber.
	DocumentNumber string
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	ClientAddress  string
}

type AllocatePortResult struct {
	Connection *connection.Connection
	Client     *client.Client
	Port       *network.Port
	// NAPSaturated reports whether this allocation filled the NAP.
	NAPSaturated bool
}

// AllocatePortUseCase binds a client and a plan to a free port. The whole
// operation is one unit of work: the port lock, the client upsert, the
// connection insert, the port flip and the saturation checkpoint commit or
// roll back together.
type AllocatePortUseCase struct {
	txManager  *db.TransactionManager
	connRepo   connection.Repository
	portRepo   network.PortRepository
	napRepo    network.NAPRepository
	clientRepo client.Repository
	planRepo   plan.Repository
	logger     logger.Interface
}

func NewAllocatePortUseCase(
	txManager *db.TransactionManager,
	connRepo connection.Repository,
	portRepo network.PortRepository,
	napRepo network.NAPRepository,
	clientRepo client.Repository,
	planRepo plan.Repository,
	logger logger.Interface,
) *AllocatePortUseCase {
	return &AllocatePortUseCase{
		txManager:  txManager,
		connRepo:   connRepo,
		portRepo:   portRepo,
		napRepo:    napRepo,
		clientRepo: clientRepo,
		planRepo:   planRepo,
		logger:     logger,
	}
}

func (uc *AllocatePortUseCase) Execute(ctx context.Context, cmd AllocatePortCommand) (*AllocatePortResult, error) {
	initialStatus := convo.StatusActive
	if cmd.InitialStatus != "" {
		parsed, ok := convo.ParseStatus(cmd.InitialStatus)
		if !ok || !parsed.Live() {
			return nil, errors.NewValidationError("initial status must be active or suspended")
		}
		initialStatus = parsed
	}

	var result *AllocatePortResult

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

		nap, err := uc.napRepo.GetByID(txCtx, port.NAPID())
		if err != nil {
			uc.logger.Errorw("failed to get nap", "error", err, "nap_id", port.NAPID())
			return fmt.Errorf("failed to get nap: %w", err)
		}
		if nap == nil {
			return errors.NewNotFoundError("nap not found")
		}
		if nap.Status() == netvo.NAPStatusMaintenance {
			return errors.NewConflictError("nap is under maintenance")
		}

		if !port.IsFree() {
			return errors.NewConflictError("port is not available")
		}

		// The port status already guards this; re-checking the connection
		// side keeps the invariant safe against drifted rows.
		existing, err := uc.connRepo.GetLiveByPortID(txCtx, port.ID())
		if err != nil {
			return fmt.Errorf("failed to check port occupancy: %w", err)
		}
		if existing != nil {
			return errors.NewConflictError("port already has a live connection")
		}

		selectedPlan, err := uc.planRepo.GetByID(txCtx, cmd.PlanID)
		if err != nil {
			uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if selectedPlan == nil {
			return errors.NewNotFoundError("plan not found")
		}
		if !selectedPlan.IsActive() {
			return errors.NewConflictError("plan is not active")
		}

		holder, err := uc.upsertClient(txCtx, cmd)
		if err != nil {
			return err
		}

		conn, err := connection.NewConnection(port.ID(), holder.ID(), selectedPlan.ID(), initialStatus, cmd.StartDate, cmd.ActorID)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if cmd.Note != "" {
			conn.UpdateNote(cmd.Note)
		}
		if err := uc.connRepo.Create(txCtx, conn); err != nil {
			uc.logger.Errorw("failed to create connection", "error", err, "port_id", port.ID())
			return fmt.Errorf("failed to create connection: %w", err)
		}

		if err := port.Occupy(); err != nil {
			return errors.NewConflictError(err.Error())
		}
		if err := uc.portRepo.Update(txCtx, port); err != nil {
			return fmt.Errorf("failed to update port: %w", err)
		}

		if err := markSaturatedIfFull(txCtx, uc.napRepo, uc.portRepo, port.NAPID()); err != nil {
			return err
		}

		refreshed, err := uc.napRepo.GetByID(txCtx, port.NAPID())
		if err != nil {
			return fmt.Errorf("failed to reload nap: %w", err)
		}

		result = &AllocatePortResult{
			Connection:   conn,
			Client:       holder,
			Port:         port,
			NAPSaturated: refreshed != nil && refreshed.Status() == netvo.NAPStatusSaturated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("port allocated",
		"connection_id", result.Connection.ID(),
		"port_id", result.Port.ID(),
		"client_id", result.Client.ID(),
		"nap_saturated", result.NAPSaturated)

	return result, nil
}

// upsertClient finds the client by document number and refreshes its contact
// fields, or creates it when absent.
func (uc *AllocatePortUseCase) upsertClient(ctx context.Context, cmd AllocatePortCommand) (*client.Client, error) {
	existing, err := uc.clientRepo.GetByDocumentNumber(ctx, cmd.DocumentNumber)
	if err != nil {
		uc.logger.Errorw("failed to get client", "error", err, "document_number", cmd.DocumentNumber)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if existing != nil {
		if err := existing.UpdateContact(cmd.ClientName, cmd.ClientEmail, cmd.ClientPhone, cmd.ClientAddress); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.clientRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update client: %w", err)
		}
		return existing, nil
	}

	created, err := client.NewClient(cmd.DocumentNumber, cmd.ClientName, cmd.ClientEmail, cmd.ClientPhone, cmd.ClientAddress)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.clientRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}
