package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"naplink/internal/domain/connection"
	vo "naplink/internal/domain/connection/valueobjects"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

var liveStatuses = []string{
	vo.StatusActive.String(),
	vo.StatusSuspended.String(),
}

type ConnectionRepositoryImpl struct {
	db          *gorm.DB
	interceptor *auditinfra.Interceptor
	logger      logger.Interface
}

func NewConnectionRepository(gdb *gorm.DB, interceptor *auditinfra.Interceptor, logger logger.Interface) connection.Repository {
	return &ConnectionRepositoryImpl{
		db:          gdb,
		interceptor: interceptor,
		logger:      logger,
	}
}

func (r *ConnectionRepositoryImpl) Create(ctx context.Context, conn *connection.Connection) error {
	model := r.toModel(conn)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create connection", "error", err, "port_id", conn.PortID())
		return fmt.Errorf("failed to create connection: %w", err)
	}

	if err := conn.SetID(model.ID); err != nil {
		return err
	}

	r.interceptor.Created(ctx, constants.TableConnections, model.ID, model.AuditState())
	return nil
}

func (r *ConnectionRepositoryImpl) GetByID(ctx context.Context, id uint) (*connection.Connection, error) {
	var model models.ConnectionModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get connection by ID", "error", err, "connection_id", id)
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}

	return r.toEntity(&model)
}

func (r *ConnectionRepositoryImpl) GetLiveByPortID(ctx context.Context, portID uint) (*connection.Connection, error) {
	var model models.ConnectionModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("port_id = ? AND status IN ?", portID, liveStatuses).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get live connection by port", "error", err, "port_id", portID)
		return nil, fmt.Errorf("failed to get live connection: %w", err)
	}

	return r.toEntity(&model)
}

func (r *ConnectionRepositoryImpl) ListLiveByClientID(ctx context.Context, clientID uint) ([]*connection.Connection, error) {
	var connModels []*models.ConnectionModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("client_id = ? AND status IN ?", clientID, liveStatuses).
		Order("id ASC").
		Find(&connModels).Error; err != nil {
		r.logger.Errorw("failed to list live connections by client", "error", err, "client_id", clientID)
		return nil, fmt.Errorf("failed to list live connections: %w", err)
	}

	return r.toEntities(connModels)
}

func (r *ConnectionRepositoryImpl) List(ctx context.Context, filter connection.ListFilter, page, pageSize int) ([]*connection.Connection, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.ConnectionModel{})
	if filter.PortID != 0 {
		query = query.Where("connections.port_id = ?", filter.PortID)
	}
	if filter.ClientID != 0 {
		query = query.Where("connections.client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		query = query.Where("connections.status = ?", filter.Status.String())
	}
	if filter.NAPID != 0 {
		query = query.Joins("JOIN ports ON ports.id = connections.port_id").
			Where("ports.nap_id = ?", filter.NAPID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count connections: %w", err)
	}

	var connModels []*models.ConnectionModel
	if err := query.Order("connections.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&connModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list connections: %w", err)
	}

	conns, err := r.toEntities(connModels)
	if err != nil {
		return nil, 0, err
	}

	return conns, total, nil
}

func (r *ConnectionRepositoryImpl) Update(ctx context.Context, conn *connection.Connection) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var before models.ConnectionModel
	if err := tx.First(&before, conn.ID()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("connection not found")
		}
		return fmt.Errorf("failed to load connection for update: %w", err)
	}

	model := r.toModel(conn)

	result := tx.Model(&models.ConnectionModel{}).
		Where("id = ?", conn.ID()).
		Updates(map[string]interface{}{
			"plan_id":    model.PlanID,
			"status":     model.Status,
			"end_date":   model.EndDate,
			"note":       model.Note,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update connection", "error", result.Error, "connection_id", conn.ID())
		return fmt.Errorf("failed to update connection: %w", result.Error)
	}

	r.interceptor.Updated(ctx, constants.TableConnections, conn.ID(), before.AuditState(), model.AuditState())
	return nil
}

func (r *ConnectionRepositoryImpl) toModel(conn *connection.Connection) *models.ConnectionModel {
	return &models.ConnectionModel{
		ID:        conn.ID(),
		PortID:    conn.PortID(),
		ClientID:  conn.ClientID(),
		PlanID:    conn.PlanID(),
		Status:    conn.Status().String(),
		StartDate: conn.StartDate(),
		EndDate:   conn.EndDate(),
		CreatedBy: conn.CreatedBy(),
		Note:      conn.Note(),
		CreatedAt: conn.CreatedAt(),
		UpdatedAt: conn.UpdatedAt(),
	}
}

func (r *ConnectionRepositoryImpl) toEntity(model *models.ConnectionModel) (*connection.Connection, error) {
	entity, err := connection.ReconstructConnection(
		model.ID,
		model.PortID,
		model.ClientID,
		model.PlanID,
		vo.ConnectionStatus(model.Status),
		model.StartDate,
		model.EndDate,
		model.CreatedBy,
		model.Note,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct connection entity: %w", err)
	}
	return entity, nil
}

func (r *ConnectionRepositoryImpl) toEntities(connModels []*models.ConnectionModel) ([]*connection.Connection, error) {
	conns := make([]*connection.Connection, 0, len(connModels))
	for _, m := range connModels {
		entity, err := r.toEntity(m)
		if err != nil {
			return nil, err
		}
		conns = append(conns, entity)
	}
	return conns, nil
}
