package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"naplink/internal/domain/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/shared/db"
	"naplink/internal/shared/logger"
)

// AuditRecordRepositoryImpl persists the append-only audit ledger. It
// deliberately exposes no update or delete path.
type AuditRecordRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAuditRecordRepository(gdb *gorm.DB, logger logger.Interface) audit.Repository {
	return &AuditRecordRepositoryImpl{
		db:     gdb,
		logger: logger,
	}
}

func (r *AuditRecordRepositoryImpl) Create(ctx context.Context, record *audit.Record) error {
	model, err := r.toModel(record)
	if err != nil {
		return fmt.Errorf("failed to convert audit record to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *AuditRecordRepositoryImpl) List(ctx context.Context, filter audit.Filter, page, pageSize int) ([]*audit.Record, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := r.applyFilter(tx.Model(&models.AuditRecordModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit records: %w", err)
	}

	var recordModels []*models.AuditRecordModel
	if err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recordModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit records: %w", err)
	}

	records := make([]*audit.Record, 0, len(recordModels))
	for _, m := range recordModels {
		entity, err := r.toEntity(m)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, entity)
	}

	return records, total, nil
}

func (r *AuditRecordRepositoryImpl) Stats(ctx context.Context, filter audit.Filter) (*audit.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	stats := &audit.Stats{
		ByAction: make(map[audit.Action]int64),
		ByTable:  make(map[string]int64),
	}

	if err := r.applyFilter(tx.Model(&models.AuditRecordModel{}), filter).
		Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit records: %w", err)
	}

	type groupCount struct {
		Name  string
		Count int64
	}

	var byAction []groupCount
	if err := r.applyFilter(tx.Model(&models.AuditRecordModel{}), filter).
		Select("action AS name, COUNT(*) AS count").
		Group("action").
		Scan(&byAction).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate audit records by action: %w", err)
	}
	for _, g := range byAction {
		stats.ByAction[audit.Action(g.Name)] = g.Count
	}

	var byTable []groupCount
	if err := r.applyFilter(tx.Model(&models.AuditRecordModel{}), filter).
		Select("table_name AS name, COUNT(*) AS count").
		Group("table_name").
		Scan(&byTable).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate audit records by table: %w", err)
	}
	for _, g := range byTable {
		stats.ByTable[g.Name] = g.Count
	}

	return stats, nil
}

func (r *AuditRecordRepositoryImpl) applyFilter(query *gorm.DB, filter audit.Filter) *gorm.DB {
	if filter.TableName != "" {
		query = query.Where("table_name = ?", filter.TableName)
	}
	if filter.RecordID != 0 {
		query = query.Where("record_id = ?", filter.RecordID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action.String())
	}
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	return query
}

func (r *AuditRecordRepositoryImpl) toModel(record *audit.Record) (*models.AuditRecordModel, error) {
	var beforeJSON, afterJSON datatypes.JSON

	if before := record.Before(); len(before) > 0 {
		data, err := json.Marshal(before)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal before state: %w", err)
		}
		beforeJSON = data
	}
	if after := record.After(); len(after) > 0 {
		data, err := json.Marshal(after)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal after state: %w", err)
		}
		afterJSON = data
	}

	return &models.AuditRecordModel{
		ID:        record.ID(),
		Table:     record.TableName(),
		RecordID:  record.RecordID(),
		Action:    record.Action().String(),
		Before:    beforeJSON,
		After:     afterJSON,
		ActorID:   record.ActorID(),
		CreatedAt: record.CreatedAt(),
	}, nil
}

func (r *AuditRecordRepositoryImpl) toEntity(model *models.AuditRecordModel) (*audit.Record, error) {
	var before, after map[string]any

	if len(model.Before) > 0 {
		if err := json.Unmarshal(model.Before, &before); err != nil {
			return nil, fmt.Errorf("failed to unmarshal before state: %w", err)
		}
	}
	if len(model.After) > 0 {
		if err := json.Unmarshal(model.After, &after); err != nil {
			return nil, fmt.Errorf("failed to unmarshal after state: %w", err)
		}
	}

	entity, err := audit.ReconstructRecord(
		model.ID,
		model.Table,
		model.RecordID,
		audit.Action(model.Action),
		before,
		after,
		model.ActorID,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct audit record: %w", err)
	}
	return entity, nil
}
