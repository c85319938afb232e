package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

func TestListConnectionsUseCase(t *testing.T) {
	env := setupTestEnv(t)
	napA, portsA := env.seedNAP(t, "NAP-001", 8)
	_, portsB := env.seedNAP(t, "NAP-002", 8)
	p := env.seedPlan(t, "Fiber 100")

	first := env.allocate(t, portsA[0].ID(), p.ID(), "44556677")
	second := env.allocate(t, portsA[1].ID(), p.ID(), "88990011")
	env.allocate(t, portsB[0].ID(), p.ID(), "22334455")

	_, err := newTransitionUC(env).Execute(context.Background(), TransitionConnectionCommand{
		ConnectionID: second.Connection.ID(),
		TargetStatus: "finalized",
		ActorID:      testActorID,
	})
	require.NoError(t, err)

	uc := NewListConnectionsUseCase(env.connRepo, logger.NewLogger())

	t.Run("lists everything newest first", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListConnectionsQuery{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 3, result.Total)
		require.Len(t, result.Connections, 3)
		assert.Greater(t, result.Connections[0].ID(), result.Connections[2].ID())
	})

	t.Run("filters by status", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListConnectionsQuery{Status: "finalized", Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
		require.Len(t, result.Connections, 1)
		assert.Equal(t, second.Connection.ID(), result.Connections[0].ID())
	})

	t.Run("filters by client", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListConnectionsQuery{ClientID: first.Client.ID(), Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
	})

	t.Run("filters by nap", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListConnectionsQuery{NAPID: napA.ID(), Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.Total)
	})

	t.Run("filters by port", func(t *testing.T) {
		result, err := uc.Execute(context.Background(), ListConnectionsQuery{PortID: portsA[0].ID(), Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListConnectionsQuery{Status: "paused", Page: 1, PageSize: 20})
		assert.True(t, errors.IsValidationError(err))
	})
}
