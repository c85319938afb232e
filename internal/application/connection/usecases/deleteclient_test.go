package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naplink/internal/domain/audit"
	netvo "naplink/internal/domain/network/valueobjects"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

func newDeleteClientUC(env *testEnv) *DeleteClientUseCase {
	return NewDeleteClientUseCase(env.txManager, env.clientRepo, env.connRepo, env.portRepo, env.napRepo, logger.NewLogger())
}

func TestDeleteClientUseCase(t *testing.T) {
	t.Run("finalizes every live connection before deleting", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")
		first := env.allocate(t, ports[0].ID(), p.ID(), "44556677")
		env.allocate(t, ports[1].ID(), p.ID(), "44556677")

		result, err := newDeleteClientUC(env).Execute(context.Background(), DeleteClientCommand{
			ClientID: first.Client.ID(),
			ActorID:  testActorID,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.ConnectionsFinalized)

		for _, portID := range []uint{ports[0].ID(), ports[1].ID()} {
			port, err := env.portRepo.GetByID(context.Background(), portID)
			require.NoError(t, err)
			assert.Equal(t, netvo.PortStatusFree, port.Status())
		}

		gone, err := env.clientRepo.GetByID(context.Background(), first.Client.ID())
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("deleting a client without live connections", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")
		allocated := env.allocate(t, ports[0].ID(), p.ID(), "44556677")

		_, err := newReleaseUC(env).Execute(context.Background(), ReleasePortCommand{
			PortID:  ports[0].ID(),
			ActorID: testActorID,
		})
		require.NoError(t, err)

		result, err := newDeleteClientUC(env).Execute(context.Background(), DeleteClientCommand{
			ClientID: allocated.Client.ID(),
			ActorID:  testActorID,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.ConnectionsFinalized)
	})

	t.Run("writes a delete record to the ledger", func(t *testing.T) {
		env := setupTestEnv(t)
		_, ports := env.seedNAP(t, "NAP-001", 8)
		p := env.seedPlan(t, "Fiber 100")
		allocated := env.allocate(t, ports[0].ID(), p.ID(), "44556677")

		_, err := newDeleteClientUC(env).Execute(context.Background(), DeleteClientCommand{
			ClientID: allocated.Client.ID(),
			ActorID:  testActorID,
		})
		require.NoError(t, err)

		records, _, err := env.auditRepo.List(context.Background(), audit.Filter{
			TableName: "clients",
			Action:    audit.ActionDelete,
			RecordID:  allocated.Client.ID(),
		}, 1, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "44556677", records[0].Before()["document_number"])
	})

	t.Run("unknown client is not found", func(t *testing.T) {
		env := setupTestEnv(t)

		_, err := newDeleteClientUC(env).Execute(context.Background(), DeleteClientCommand{
			ClientID: 9999,
			ActorID:  testActorID,
		})
		assert.True(t, errors.IsNotFoundError(err))
	})
}
