package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/infrastructure/repository"
	"naplink/internal/shared/db"
	"naplink/internal/shared/logger"
)

const testActorID = 42

type testEnv struct {
	gdb       *gorm.DB
	txManager *db.TransactionManager
	napRepo   network.NAPRepository
	portRepo  network.PortRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.NAPModel{},
		&models.PortModel{},
		&models.AuditRecordModel{},
	)
	require.NoError(t, err)

	log := logger.NewLogger()
	auditRepo := repository.NewAuditRecordRepository(gdb, log)
	interceptor := auditinfra.NewInterceptor(auditRepo, auditinfra.DefaultRegistry(), log)

	return &testEnv{
		gdb:       gdb,
		txManager: db.NewTransactionManager(gdb),
		napRepo:   repository.NewNAPRepository(gdb, interceptor, log),
		portRepo:  repository.NewPortRepository(gdb, interceptor, log),
	}
}

// seedNAP creates a NAP with its port range and occupies the first
// `occupied` ports directly, bypassing the allocation flow.
func (e *testEnv) seedNAP(t *testing.T, code string, totalPorts, occupied int) *network.NAP {
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

	for i := 0; i < occupied; i++ {
		require.NoError(t, ports[i].Occupy())
		require.NoError(t, e.portRepo.Update(ctx, ports[i]))
	}

	return nap
}

type fakeDeduplicator struct {
	allow  bool
	failed error
	marked []uint
}

func (f *fakeDeduplicator) ShouldAlert(ctx context.Context, napID uint) (bool, error) {
	return f.allow, f.failed
}

func (f *fakeDeduplicator) MarkAlerted(ctx context.Context, napID uint, ttl time.Duration) error {
	f.marked = append(f.marked, napID)
	return nil
}

func newScanUC(env *testEnv) *ScanCapacityUseCase {
	return NewScanCapacityUseCase(env.txManager, env.napRepo, env.portRepo, logger.NewLogger())
}

func TestScanCapacityUseCase(t *testing.T) {
	t.Run("repairs a drifted saturated flag", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 4, 4)

		result, err := newScanUC(env).Execute(context.Background(), ScanCapacityCommand{ActorID: testActorID})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Scanned)
		require.Len(t, result.Saturated, 1)
		assert.Equal(t, nap.ID(), result.Saturated[0].NAPID)

		stored, err := env.napRepo.GetByID(context.Background(), nap.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.NAPStatusSaturated, stored.Status())
	})

	t.Run("clears a stale saturated flag", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 4, 2)
		require.NoError(t, nap.MarkSaturated())
		require.NoError(t, env.napRepo.Update(context.Background(), nap))

		result, err := newScanUC(env).Execute(context.Background(), ScanCapacityCommand{ActorID: testActorID})
		require.NoError(t, err)
		require.Len(t, result.Cleared, 1)
		assert.Equal(t, nap.ID(), result.Cleared[0].NAPID)

		stored, err := env.napRepo.GetByID(context.Background(), nap.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.NAPStatusActive, stored.Status())
	})

	t.Run("reports naps near saturation", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedNAP(t, "NAP-001", 5, 4)
		env.seedNAP(t, "NAP-002", 5, 2)

		result, err := newScanUC(env).Execute(context.Background(), ScanCapacityCommand{})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Scanned)
		require.Len(t, result.NearSaturation, 1)
		assert.Equal(t, "NAP-001", result.NearSaturation[0].Code)
		assert.Equal(t, 80, result.NearSaturation[0].Percent)
	})

	t.Run("a saturated nap is not near saturation", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedNAP(t, "NAP-001", 4, 4)

		result, err := newScanUC(env).Execute(context.Background(), ScanCapacityCommand{})
		require.NoError(t, err)
		assert.Empty(t, result.NearSaturation)
	})

	t.Run("skips naps under maintenance", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 4, 4)
		require.NoError(t, nap.EnterMaintenance())
		require.NoError(t, env.napRepo.Update(context.Background(), nap))

		result, err := newScanUC(env).Execute(context.Background(), ScanCapacityCommand{})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Scanned)
		assert.Empty(t, result.Saturated)

		stored, err := env.napRepo.GetByID(context.Background(), nap.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.NAPStatusMaintenance, stored.Status())
	})

	t.Run("deduplicator suppresses repeat warnings", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 5, 4)

		uc := newScanUC(env)
		dedup := &fakeDeduplicator{allow: true}
		uc.SetAlertDeduplicator(dedup, 30*time.Minute)

		result, err := uc.Execute(context.Background(), ScanCapacityCommand{})
		require.NoError(t, err)
		assert.Len(t, result.NearSaturation, 1)
		assert.Equal(t, []uint{nap.ID()}, dedup.marked)

		dedup.allow = false
		result, err = uc.Execute(context.Background(), ScanCapacityCommand{})
		require.NoError(t, err)
		assert.Empty(t, result.NearSaturation)
		assert.Len(t, dedup.marked, 1)
	})

	t.Run("dedup failure falls back to warning", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedNAP(t, "NAP-001", 5, 4)

		uc := newScanUC(env)
		uc.SetAlertDeduplicator(&fakeDeduplicator{failed: fmt.Errorf("redis unreachable")}, 30*time.Minute)

		result, err := uc.Execute(context.Background(), ScanCapacityCommand{})
		require.NoError(t, err)
		assert.Len(t, result.NearSaturation, 1)
	})

	t.Run("scan on a settled fleet changes nothing", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedNAP(t, "NAP-001", 4, 1)
		env.seedNAP(t, "NAP-002", 4, 0)

		result, err := newScanUC(env).Execute(context.Background(), ScanCapacityCommand{})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Scanned)
		assert.Empty(t, result.Saturated)
		assert.Empty(t, result.Cleared)
		assert.Empty(t, result.NearSaturation)
	})
}
