package connection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "naplink/internal/domain/connection/valueobjects"
)

func newTestConnection(t *testing.T, status vo.ConnectionStatus) *Connection {
	conn, err := NewConnection(1, 2, 3, status, time.Now().UTC(), 9)
	require.NoError(t, err)
	require.NoError(t, conn.SetID(100))
	return conn
}

func TestNewConnection(t *testing.T) {
	t.Run("defaults to given live status", func(t *testing.T) {
		conn, err := NewConnection(1, 2, 3, vo.StatusActive, time.Time{}, 9)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusActive, conn.Status())
		assert.False(t, conn.StartDate().IsZero())
		assert.Nil(t, conn.EndDate())
		assert.Equal(t, uint(9), conn.CreatedBy())
	})

	t.Run("allows suspended initial status", func(t *testing.T) {
		conn, err := NewConnection(1, 2, 3, vo.StatusSuspended, time.Now(), 9)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusSuspended, conn.Status())
	})

	t.Run("rejects finalized initial status", func(t *testing.T) {
		_, err := NewConnection(1, 2, 3, vo.StatusFinalized, time.Now(), 9)
		assert.Error(t, err)
	})

	t.Run("requires port, client and plan", func(t *testing.T) {
		_, err := NewConnection(0, 2, 3, vo.StatusActive, time.Now(), 9)
		assert.Error(t, err)
		_, err = NewConnection(1, 0, 3, vo.StatusActive, time.Now(), 9)
		assert.Error(t, err)
		_, err = NewConnection(1, 2, 0, vo.StatusActive, time.Now(), 9)
		assert.Error(t, err)
	})
}

func TestConnectionLifecycle(t *testing.T) {
	t.Run("active to suspended and back", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusActive)

		require.NoError(t, conn.Suspend())
		assert.Equal(t, vo.StatusSuspended, conn.Status())
		assert.True(t, conn.IsLive())

		require.NoError(t, conn.Reactivate())
		assert.Equal(t, vo.StatusActive, conn.Status())
	})

	t.Run("same-state transition is a no-op", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusActive)
		assert.NoError(t, conn.Reactivate())
		assert.Equal(t, vo.StatusActive, conn.Status())

		require.NoError(t, conn.Suspend())
		assert.NoError(t, conn.Suspend())
		assert.Equal(t, vo.StatusSuspended, conn.Status())
	})

	t.Run("finalize stamps end date once", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusActive)
		at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, conn.Finalize(at))
		assert.Equal(t, vo.StatusFinalized, conn.Status())
		require.NotNil(t, conn.EndDate())
		assert.Equal(t, at, *conn.EndDate())
		assert.True(t, conn.IsFinalized())
	})

	t.Run("finalized is terminal", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusActive)
		require.NoError(t, conn.Finalize(time.Now()))

		assert.Error(t, conn.Suspend())
		assert.Error(t, conn.Reactivate())
		assert.Error(t, conn.Finalize(time.Now()))
	})

	t.Run("suspended can finalize", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusSuspended)
		assert.NoError(t, conn.Finalize(time.Now()))
	})
}

func TestConnectionChangePlan(t *testing.T) {
	t.Run("changes plan while live", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusActive)
		require.NoError(t, conn.ChangePlan(7))
		assert.Equal(t, uint(7), conn.PlanID())
	})

	t.Run("same plan is a no-op", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusActive)
		assert.NoError(t, conn.ChangePlan(conn.PlanID()))
	})

	t.Run("rejects plan change on finalized connection", func(t *testing.T) {
		conn := newTestConnection(t, vo.StatusActive)
		require.NoError(t, conn.Finalize(time.Now()))
		assert.Error(t, conn.ChangePlan(7))
	})
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, vo.StatusActive.CanTransitionTo(vo.StatusSuspended))
	assert.True(t, vo.StatusActive.CanTransitionTo(vo.StatusFinalized))
	assert.True(t, vo.StatusSuspended.CanTransitionTo(vo.StatusActive))
	assert.True(t, vo.StatusSuspended.CanTransitionTo(vo.StatusFinalized))
	assert.False(t, vo.StatusFinalized.CanTransitionTo(vo.StatusActive))
	assert.False(t, vo.StatusFinalized.CanTransitionTo(vo.StatusSuspended))
}
