package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	convo "naplink/internal/domain/connection/valueobjects"
	netvo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

func newReleaseUC(env *testEnv) *ReleasePortUseCase {
	return NewReleasePortUseCase(env.txManager, env.connRepo, env.portRepo, env.napRepo, logger.NewLogger())
}

func TestReleasePortUseCase(t *testing.T) {
	t.Run("finalizes the live connection and frees the port", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")
		allocated := env.allocate(t, ports[0].ID(), p.ID(), "44556677")

		result, err := newReleaseUC(env).Execute(context.Background(), ReleasePortCommand{
			PortID:  ports[0].ID(),
			ActorID: testActorID,
		})
		require.NoError(t, err)
		assert.Equal(t, netvo.PortStatusFree, result.Port.Status())
		require.NotNil(t, result.Finalized)
		assert.Equal(t, allocated.Connection.ID(), result.Finalized.ID())
		assert.Equal(t, convo.StatusFinalized, result.Finalized.Status())

		stored, err := env.connRepo.GetByID(context.Background(), allocated.Connection.ID())
		require.NoError(t, err)
		assert.Equal(t, convo.StatusFinalized, stored.Status())
		assert.NotNil(t, stored.EndDate())
	})

	t.Run("releasing a free port is idempotent", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)

		result, err := newReleaseUC(env).Execute(context.Background(), ReleasePortCommand{
			PortID:  ports[0].ID(),
			ActorID: testActorID,
		})
		require.NoError(t, err)
		assert.Nil(t, result.Finalized)
		assert.Equal(t, netvo.PortStatusFree, result.Port.Status())
	})

	t.Run("clears saturation on the owning nap", func(t *testing.T) {
		env := setupTestEnv(t)
		nap, ports := env.seedNAP(t, "NAP-001", 1)
		p := env.seedPlan(t, "Fiber 100")
		allocated := env.allocate(t, ports[0].ID(), p.ID(), "44556677")
		require.True(t, allocated.NAPSaturated)

		_, err := newReleaseUC(env).Execute(context.Background(), ReleasePortCommand{
			PortID:  ports[0].ID(),
			ActorID: testActorID,
		})
		require.NoError(t, err)

		stored, err := env.napRepo.GetByID(context.Background(), nap.ID())
		require.NoError(t, err)
		assert.Equal(t, netvo.NAPStatusActive, stored.Status())
	})

	t.Run("unknown port is not found", func(t *testing.T) {
		env := setupTestEnv(t)

		_, err := newReleaseUC(env).Execute(context.Background(), ReleasePortCommand{
			PortID:  9999,
			ActorID: testActorID,
		})
		assert.True(t, errors.IsNotFoundError(err))
	})
}
