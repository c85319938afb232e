package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"naplink/internal/domain/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/shared/logger"
)

func setupAuditRepo(t *testing.T) audit.Repository {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.AuditRecordModel{}))

	return NewAuditRecordRepository(gdb, logger.NewLogger())
}

func mustRecord(t *testing.T, table string, recordID uint, action audit.Action, actorID uint) *audit.Record {
	state := map[string]any{"status": "free"}
	var before, after map[string]any
	switch action {
	case audit.ActionCreate:
		after = state
	case audit.ActionDelete:
		before = state
	default:
		before = map[string]any{"status": "free"}
		after = map[string]any{"status": "occupied"}
	}

	rec, err := audit.NewRecord(table, recordID, action, before, after, actorID)
	require.NoError(t, err)
	return rec
}

func TestAuditRecordRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and reads back a record", func(t *testing.T) {
		repo := setupAuditRepo(t)

		rec := mustRecord(t, "ports", 5, audit.ActionUpdate, 9)
		require.NoError(t, repo.Create(ctx, rec))
		assert.NotZero(t, rec.ID())

		records, total, err := repo.List(ctx, audit.Filter{}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, records, 1)

		got := records[0]
		assert.Equal(t, "ports", got.TableName())
		assert.Equal(t, uint(5), got.RecordID())
		assert.Equal(t, audit.ActionUpdate, got.Action())
		assert.Equal(t, uint(9), got.ActorID())
		assert.Equal(t, "free", got.Before()["status"])
		assert.Equal(t, "occupied", got.After()["status"])
	})

	t.Run("lists newest first", func(t *testing.T) {
		repo := setupAuditRepo(t)

		for id := uint(1); id <= 3; id++ {
			require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", id, audit.ActionCreate, 9)))
		}

		records, _, err := repo.List(ctx, audit.Filter{}, 1, 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, uint(3), records[0].RecordID())
		assert.Equal(t, uint(1), records[2].RecordID())
	})

	t.Run("filters narrow the query", func(t *testing.T) {
		repo := setupAuditRepo(t)

		require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", 1, audit.ActionCreate, 9)))
		require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", 1, audit.ActionUpdate, 9)))
		require.NoError(t, repo.Create(ctx, mustRecord(t, "naps", 2, audit.ActionCreate, 12)))

		_, total, err := repo.List(ctx, audit.Filter{TableName: "ports"}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)

		_, total, err = repo.List(ctx, audit.Filter{Action: audit.ActionCreate}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)

		_, total, err = repo.List(ctx, audit.Filter{ActorID: 12}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		_, total, err = repo.List(ctx, audit.Filter{TableName: "ports", Action: audit.ActionUpdate, RecordID: 1}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("filters by time range", func(t *testing.T) {
		repo := setupAuditRepo(t)
		require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", 1, audit.ActionCreate, 9)))

		past := time.Now().UTC().Add(-time.Minute)
		future := time.Now().UTC().Add(time.Minute)

		_, total, err := repo.List(ctx, audit.Filter{From: &past, To: &future}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		_, total, err = repo.List(ctx, audit.Filter{To: &past}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
	})

	t.Run("paginates", func(t *testing.T) {
		repo := setupAuditRepo(t)
		for id := uint(1); id <= 5; id++ {
			require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", id, audit.ActionCreate, 9)))
		}

		records, total, err := repo.List(ctx, audit.Filter{}, 2, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		require.Len(t, records, 2)
		assert.Equal(t, uint(3), records[0].RecordID())
	})

	t.Run("aggregates stats", func(t *testing.T) {
		repo := setupAuditRepo(t)

		require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", 1, audit.ActionCreate, 9)))
		require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", 1, audit.ActionUpdate, 9)))
		require.NoError(t, repo.Create(ctx, mustRecord(t, "ports", 1, audit.ActionUpdate, 9)))
		require.NoError(t, repo.Create(ctx, mustRecord(t, "clients", 2, audit.ActionDelete, 9)))

		stats, err := repo.Stats(ctx, audit.Filter{})
		require.NoError(t, err)
		assert.EqualValues(t, 4, stats.Total)
		assert.EqualValues(t, 1, stats.ByAction[audit.ActionCreate])
		assert.EqualValues(t, 2, stats.ByAction[audit.ActionUpdate])
		assert.EqualValues(t, 1, stats.ByAction[audit.ActionDelete])
		assert.EqualValues(t, 3, stats.ByTable["ports"])
		assert.EqualValues(t, 1, stats.ByTable["clients"])

		filtered, err := repo.Stats(ctx, audit.Filter{TableName: "ports"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, filtered.Total)
	})
}
