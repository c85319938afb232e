package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

func newCreateNAPUC(env *testEnv) *CreateNAPUseCase {
	return NewCreateNAPUseCase(env.txManager, env.napRepo, env.portRepo, logger.NewLogger())
}

func TestCreateNAPUseCase(t *testing.T) {
	t.Run("creates the nap with its full port range", func(t *testing.T) {
		env := setupTestEnv(t)

		result, err := newCreateNAPUC(env).Execute(context.Background(), CreateNAPCommand{
			Code:       "NAP-001",
			Name:       "Central Box",
			TotalPorts: 16,
			Latitude:   -12.04,
			Longitude:  -77.03,
			Address:    "Av. Principal 123",
			ActorID:    testActorID,
		})
		require.NoError(t, err)
		assert.Equal(t, 16, result.PortsCreated)
		assert.Equal(t, vo.NAPStatusActive, result.NAP.Status())

		ports, err := env.portRepo.ListByNAPID(context.Background(), result.NAP.ID())
		require.NoError(t, err)
		require.Len(t, ports, 16)
		for i, port := range ports {
			assert.Equal(t, i+1, port.Number())
			assert.Equal(t, vo.PortStatusFree, port.Status())
		}
	})

	t.Run("rejects invalid capacity", func(t *testing.T) {
		env := setupTestEnv(t)

		_, err := newCreateNAPUC(env).Execute(context.Background(), CreateNAPCommand{
			Code:       "NAP-001",
			Name:       "Central Box",
			TotalPorts: 0,
			ActorID:    testActorID,
		})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedNAP(t, "NAP-001", 4, 0)

		_, err := newCreateNAPUC(env).Execute(context.Background(), CreateNAPCommand{
			Code:       "NAP-001",
			Name:       "Another Box",
			TotalPorts: 8,
			ActorID:    testActorID,
		})
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestBackfillPortsUseCase(t *testing.T) {
	t.Run("fills missing port numbers", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 8, 0)

		// Drop a few rows to simulate partial provisioning.
		require.NoError(t, env.gdb.Exec("DELETE FROM ports WHERE nap_id = ? AND number IN (3, 6)", nap.ID()).Error)

		uc := NewBackfillPortsUseCase(env.txManager, env.napRepo, env.portRepo, logger.NewLogger())
		result, err := uc.Execute(context.Background(), BackfillPortsCommand{NAPID: nap.ID(), ActorID: testActorID})
		require.NoError(t, err)
		assert.Equal(t, 2, result.PortsCreated)

		numbers, err := env.portRepo.ListNumbersByNAPID(context.Background(), nap.ID())
		require.NoError(t, err)
		assert.Len(t, numbers, 8)
	})

	t.Run("complete nap needs nothing", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 8, 0)

		uc := NewBackfillPortsUseCase(env.txManager, env.napRepo, env.portRepo, logger.NewLogger())
		result, err := uc.Execute(context.Background(), BackfillPortsCommand{NAPID: nap.ID(), ActorID: testActorID})
		require.NoError(t, err)
		assert.Equal(t, 0, result.PortsCreated)
	})

	t.Run("unknown nap is not found", func(t *testing.T) {
		env := setupTestEnv(t)

		uc := NewBackfillPortsUseCase(env.txManager, env.napRepo, env.portRepo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), BackfillPortsCommand{NAPID: 9999, ActorID: testActorID})
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestSetNAPMaintenanceUseCase(t *testing.T) {
	newUC := func(env *testEnv) *SetNAPMaintenanceUseCase {
		return NewSetNAPMaintenanceUseCase(env.txManager, env.napRepo, env.portRepo, logger.NewLogger())
	}

	t.Run("takes a nap out of service", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 4, 0)

		result, err := newUC(env).Execute(context.Background(), SetNAPMaintenanceCommand{
			NAPID:       nap.ID(),
			Maintenance: true,
			ActorID:     testActorID,
		})
		require.NoError(t, err)
		assert.Equal(t, vo.NAPStatusMaintenance, result.NAP.Status())
	})

	t.Run("returning to service recomputes saturation", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 2, 2)

		uc := newUC(env)
		_, err := uc.Execute(context.Background(), SetNAPMaintenanceCommand{
			NAPID:       nap.ID(),
			Maintenance: true,
			ActorID:     testActorID,
		})
		require.NoError(t, err)

		result, err := uc.Execute(context.Background(), SetNAPMaintenanceCommand{
			NAPID:       nap.ID(),
			Maintenance: false,
			ActorID:     testActorID,
		})
		require.NoError(t, err)
		assert.Equal(t, vo.NAPStatusSaturated, result.NAP.Status())
	})

	t.Run("returning a nap with spare ports activates it", func(t *testing.T) {
		env := setupTestEnv(t)
		nap := env.seedNAP(t, "NAP-001", 4, 1)

		uc := newUC(env)
		_, err := uc.Execute(context.Background(), SetNAPMaintenanceCommand{
			NAPID:       nap.ID(),
			Maintenance: true,
			ActorID:     testActorID,
		})
		require.NoError(t, err)

		result, err := uc.Execute(context.Background(), SetNAPMaintenanceCommand{
			NAPID:       nap.ID(),
			Maintenance: false,
			ActorID:     testActorID,
		})
		require.NoError(t, err)
		assert.Equal(t, vo.NAPStatusActive, result.NAP.Status())
	})

	t.Run("unknown nap is not found", func(t *testing.T) {
		env := setupTestEnv(t)

		_, err := newUC(env).Execute(context.Background(), SetNAPMaintenanceCommand{
			NAPID:       9999,
			Maintenance: true,
			ActorID:     testActorID,
		})
		assert.True(t, errors.IsNotFoundError(err))
	})
}
