package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	after := map[string]any{"status": "free", "number": 4}
	before := map[string]any{"status": "occupied"}

	t.Run("create requires after state", func(t *testing.T) {
		rec, err := NewRecord("ports", 1, ActionCreate, nil, after, 9)
		require.NoError(t, err)
		assert.Equal(t, ActionCreate, rec.Action())
		assert.Equal(t, int64(4), rec.After()["number"])

		_, err = NewRecord("ports", 1, ActionCreate, nil, nil, 9)
		assert.Error(t, err)
	})

	t.Run("delete requires before state", func(t *testing.T) {
		_, err := NewRecord("ports", 1, ActionDelete, before, nil, 9)
		assert.NoError(t, err)

		_, err = NewRecord("ports", 1, ActionDelete, nil, nil, 9)
		assert.Error(t, err)
	})

	t.Run("update requires both sides", func(t *testing.T) {
		_, err := NewRecord("ports", 1, ActionUpdate, before, after, 9)
		assert.NoError(t, err)

		_, err = NewRecord("ports", 1, ActionUpdate, before, nil, 9)
		assert.Error(t, err)
		_, err = NewRecord("ports", 1, ActionUpdate, nil, after, 9)
		assert.Error(t, err)
	})

	t.Run("requires actor", func(t *testing.T) {
		_, err := NewRecord("ports", 1, ActionCreate, nil, after, 0)
		assert.Error(t, err)
	})

	t.Run("requires table and record", func(t *testing.T) {
		_, err := NewRecord("", 1, ActionCreate, nil, after, 9)
		assert.Error(t, err)
		_, err = NewRecord("ports", 0, ActionCreate, nil, after, 9)
		assert.Error(t, err)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		_, err := NewRecord("ports", 1, Action("truncate"), before, after, 9)
		assert.Error(t, err)
	})
}
