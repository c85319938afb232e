package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type PortRepositoryImpl struct {
	db          *gorm.DB
	interceptor *auditinfra.Interceptor
	logger      logger.Interface
}

func NewPortRepository(gdb *gorm.DB, interceptor *auditinfra.Interceptor, logger logger.Interface) network.PortRepository {
	return &PortRepositoryImpl{
		db:          gdb,
		interceptor: interceptor,
		logger:      logger,
	}
}

func (r *PortRepositoryImpl) CreateBatch(ctx context.Context, ports []*network.Port) error {
	if len(ports) == 0 {
		return nil
	}

	portModels := make([]*models.PortModel, 0, len(ports))
	for _, p := range ports {
		portModels = append(portModels, r.toModel(p))
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(&portModels).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("port number already exists on nap")
		}
		r.logger.Errorw("failed to create ports", "error", err, "count", len(ports))
		return fmt.Errorf("failed to create ports: %w", err)
	}

	for i, model := range portModels {
		if err := ports[i].SetID(model.ID); err != nil {
			return err
		}
		r.interceptor.Created(ctx, constants.TablePorts, model.ID, model.AuditState())
	}

	return nil
}

func (r *PortRepositoryImpl) GetByID(ctx context.Context, id uint) (*network.Port, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate takes a row-level lock on the port so that concurrent
// allocations on the same port serialize on the store. SQLite has a single
// writer and no FOR UPDATE syntax, so the clause is applied on MySQL only.
func (r *PortRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*network.Port, error) {
	return r.getByID(ctx, id, true)
}

func (r *PortRepositoryImpl) getByID(ctx context.Context, id uint, forUpdate bool) (*network.Port, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if forUpdate && tx.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.PortModel
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get port by ID", "error", err, "port_id", id)
		return nil, fmt.Errorf("failed to get port: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PortRepositoryImpl) ListByNAPID(ctx context.Context, napID uint) ([]*network.Port, error) {
	var portModels []*models.PortModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("nap_id = ?", napID).Order("number ASC").Find(&portModels).Error; err != nil {
		r.logger.Errorw("failed to list ports by nap", "error", err, "nap_id", napID)
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}

	ports := make([]*network.Port, 0, len(portModels))
	for _, m := range portModels {
		entity, err := r.toEntity(m)
		if err != nil {
			return nil, err
		}
		ports = append(ports, entity)
	}

	return ports, nil
}

func (r *PortRepositoryImpl) ListNumbersByNAPID(ctx context.Context, napID uint) ([]int, error) {
	var numbers []int
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.PortModel{}).
		Where("nap_id = ?", napID).
		Order("number ASC").
		Pluck("number", &numbers).Error; err != nil {
		return nil, fmt.Errorf("failed to list port numbers: %w", err)
	}
	return numbers, nil
}

func (r *PortRepositoryImpl) CountByNAPIDAndStatus(ctx context.Context, napID uint, status vo.PortStatus) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.PortModel{}).
		Where("nap_id = ? AND status = ?", napID, status.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count ports: %w", err)
	}
	return count, nil
}

func (r *PortRepositoryImpl) Update(ctx context.Context, port *network.Port) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var before models.PortModel
	if err := tx.First(&before, port.ID()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("port not found")
		}
		return fmt.Errorf("failed to load port for update: %w", err)
	}

	model := r.toModel(port)

	result := tx.Model(&models.PortModel{}).
		Where("id = ?", port.ID()).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"note":       model.Note,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update port", "error", result.Error, "port_id", port.ID())
		return fmt.Errorf("failed to update port: %w", result.Error)
	}

	r.interceptor.Updated(ctx, constants.TablePorts, port.ID(), before.AuditState(), model.AuditState())
	return nil
}

func (r *PortRepositoryImpl) toModel(port *network.Port) *models.PortModel {
	return &models.PortModel{
		ID:        port.ID(),
		NAPID:     port.NAPID(),
		Number:    port.Number(),
		Status:    port.Status().String(),
		Note:      port.Note(),
		CreatedAt: port.CreatedAt(),
		UpdatedAt: port.UpdatedAt(),
	}
}

func (r *PortRepositoryImpl) toEntity(model *models.PortModel) (*network.Port, error) {
	entity, err := network.ReconstructPort(
		model.ID,
		model.NAPID,
		model.Number,
		vo.PortStatus(model.Status),
		model.Note,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct port entity: %w", err)
	}
	return entity, nil
}
