package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"naplink/internal/domain/audit"
	"naplink/internal/domain/client"
	"naplink/internal/domain/connection"
	convo "naplink/internal/domain/connection/valueobjects"
	"naplink/internal/domain/network"
	netvo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/domain/plan"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/infrastructure/repository"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

const testActorID = 42

type testEnv struct {
	gdb        *gorm.DB
	txManager  *db.TransactionManager
	connRepo   connection.Repository
	portRepo   network.PortRepository
	napRepo    network.NAPRepository
	clientRepo client.Repository
	planRepo   plan.Repository
	auditRepo  audit.Repository
}

func setupTestEnv(t *testing.T) *testEnv {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.NAPModel{},
		&models.PortModel{},
		&models.ClientModel{},
		&models.PlanModel{},
		&models.ConnectionModel{},
		&models.AuditRecordModel{},
	)
	require.NoError(t, err)

	log := logger.NewLogger()
	auditRepo := repository.NewAuditRecordRepository(gdb, log)
	interceptor := auditinfra.NewInterceptor(auditRepo, auditinfra.DefaultRegistry(), log)

	return &testEnv{
		gdb:        gdb,
		txManager:  db.NewTransactionManager(gdb),
		connRepo:   repository.NewConnectionRepository(gdb, interceptor, log),
		portRepo:   repository.NewPortRepository(gdb, interceptor, log),
		napRepo:    repository.NewNAPRepository(gdb, interceptor, log),
		clientRepo: repository.NewClientRepository(gdb, interceptor, log),
		planRepo:   repository.NewPlanRepository(gdb, interceptor, log),
		auditRepo:  auditRepo,
	}
}

// seedNAP creates a NAP with its full port range. Seeding runs without an
// actor so it leaves no audit records behind.
func (e *testEnv) seedNAP(t *testing.T, code string, totalPorts int) (*network.NAP, []*network.Port) {
	ctx := context.Background()

	nap, err := network.NewNAP(code, code, totalPorts, 0, 0, "")
	require.NoError(t, err)
	require.NoError(t, e.napRepo.Create(ctx, nap))

	ports := make([]*network.Port, 0, totalPorts)
	for number := 1; number <= totalPorts; number++ {
		port, err := network.NewPort(nap.ID(), number)
		require.NoError(t, err)
		ports = append(ports, port)
	}
	require.NoError(t, e.portRepo.CreateBatch(ctx, ports))

	return nap, ports
}

func (e *testEnv) seedPlan(t *testing.T, name string) *plan.Plan {
	p, err := plan.NewPlan(name, 100, 20, 9900)
	require.NoError(t, err)
	require.NoError(t, e.planRepo.Create(context.Background(), p))
	return p
}

func (e *testEnv) allocate(t *testing.T, portID, planID uint, documentNumber string) *AllocatePortResult {
	uc := NewAllocatePortUseCase(e.txManager, e.connRepo, e.portRepo, e.napRepo, e.clientRepo, e.planRepo, logger.NewLogger())
	result, err := uc.Execute(context.Background(), AllocatePortCommand{
		PortID:         portID,
		PlanID:         planID,
		ActorID:        testActorID,
		DocumentNumber: documentNumber,
		ClientName:     "Maria Quispe",
	})
	require.NoError(t, err)
	return result
}

func (e *testEnv) auditCount(t *testing.T, filter audit.Filter) int64 {
	_, total, err := e.auditRepo.List(context.Background(), filter, 1, 100)
	require.NoError(t, err)
	return total
}

func TestAllocatePortUseCase(t *testing.T) {
	t.Run("allocates a free port", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")

		result := env.allocate(t, ports[0].ID(), p.ID(), "44556677")

		assert.Equal(t, convo.StatusActive, result.Connection.Status())
		assert.Equal(t, netvo.PortStatusOccupied, result.Port.Status())
		assert.False(t, result.NAPSaturated)
		assert.Equal(t, "44556677", result.Client.DocumentNumber())

		stored, err := env.portRepo.GetByID(context.Background(), ports[0].ID())
		require.NoError(t, err)
		assert.Equal(t, netvo.PortStatusOccupied, stored.Status())
	})

	t.Run("records the allocation in the audit ledger", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")

		result := env.allocate(t, ports[0].ID(), p.ID(), "44556677")

		assert.EqualValues(t, 1, env.auditCount(t, audit.Filter{TableName: "clients", Action: audit.ActionCreate}))
		assert.EqualValues(t, 1, env.auditCount(t, audit.Filter{TableName: "connections", Action: audit.ActionCreate}))
		assert.EqualValues(t, 1, env.auditCount(t, audit.Filter{TableName: "ports", Action: audit.ActionUpdate, RecordID: result.Port.ID()}))

		records, _, err := env.auditRepo.List(context.Background(), audit.Filter{TableName: "connections"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, uint(testActorID), records[0].ActorID())
	})

	t.Run("supports suspended initial status", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())
		result, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID:         ports[0].ID(),
			PlanID:         p.ID(),
			InitialStatus:  "suspended",
			ActorID:        testActorID,
			DocumentNumber: "44556677",
			ClientName:     "Maria Quispe",
		})
		require.NoError(t, err)
		assert.Equal(t, convo.StatusSuspended, result.Connection.Status())
		assert.Equal(t, netvo.PortStatusOccupied, result.Port.Status())
	})

	t.Run("rejects finalized initial status", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID:         ports[0].ID(),
			PlanID:         p.ID(),
			InitialStatus:  "finalized",
			ActorID:        testActorID,
			DocumentNumber: "44556677",
			ClientName:     "Maria Quispe",
		})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects occupied port", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")
		env.allocate(t, ports[0].ID(), p.ID(), "44556677")

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID:         ports[0].ID(),
			PlanID:         p.ID(),
			ActorID:        testActorID,
			DocumentNumber: "88990011",
			ClientName:     "Jose Flores",
		})
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("rejects unknown port and plan", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())

		_, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID: 9999, PlanID: p.ID(), ActorID: testActorID,
			DocumentNumber: "44556677", ClientName: "Maria Quispe",
		})
		assert.True(t, errors.IsNotFoundError(err))

		_, err = uc.Execute(context.Background(), AllocatePortCommand{
			PortID: ports[0].ID(), PlanID: 9999, ActorID: testActorID,
			DocumentNumber: "44556677", ClientName: "Maria Quispe",
		})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("rejects inactive plan", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")
		p.Deactivate()
		require.NoError(t, env.planRepo.Update(context.Background(), p))

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID: ports[0].ID(), PlanID: p.ID(), ActorID: testActorID,
			DocumentNumber: "44556677", ClientName: "Maria Quispe",
		})
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("rejects nap under maintenance", func(t *testing.T) {
		env := setupTestEnv(t)
		nap, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")
		require.NoError(t, nap.EnterMaintenance())
		require.NoError(t, env.napRepo.Update(context.Background(), nap))

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID: ports[0].ID(), PlanID: p.ID(), ActorID: testActorID,
			DocumentNumber: "44556677", ClientName: "Maria Quispe",
		})
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("reuses client matched by document number", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")

		first := env.allocate(t, ports[0].ID(), p.ID(), "44556677")

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())
		second, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID:         ports[1].ID(),
			PlanID:         p.ID(),
			ActorID:        testActorID,
			DocumentNumber: "44556677",
			ClientName:     "Maria Quispe de Flores",
			ClientPhone:    "999888777",
		})
		require.NoError(t, err)

		assert.Equal(t, first.Client.ID(), second.Client.ID())
		assert.Equal(t, "Maria Quispe de Flores", second.Client.Name())
		assert.Equal(t, "999888777", second.Client.Phone())

		_, total, err := env.clientRepo.List(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("filling the last port saturates the nap", func(t *testing.T) {
		env := setupTestEnv(t)
		nap, ports := env.seedNAP(t, "NAP-001", 1)
		p := env.seedPlan(t, "Fiber 100")

		result := env.allocate(t, ports[0].ID(), p.ID(), "44556677")
		assert.True(t, result.NAPSaturated)

		stored, err := env.napRepo.GetByID(context.Background(), nap.ID())
		require.NoError(t, err)
		assert.Equal(t, netvo.NAPStatusSaturated, stored.Status())
	})

	t.Run("writes no audit records without an actor", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")

		uc := NewAllocatePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, env.clientRepo, env.planRepo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), AllocatePortCommand{
			PortID:         ports[0].ID(),
			PlanID:         p.ID(),
			ActorID:        0,
			DocumentNumber: "44556677",
			ClientName:     "Maria Quispe",
		})
		require.NoError(t, err)

		assert.EqualValues(t, 0, env.auditCount(t, audit.Filter{}))
	})
}
