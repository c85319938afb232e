package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"naplink/internal/domain/network"
	vo "naplink/internal/domain/network/valueobjects"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type NAPRepositoryImpl struct {
	db          *gorm.DB
	interceptor *auditinfra.Interceptor
	logger      logger.Interface
}

func NewNAPRepository(gdb *gorm.DB, interceptor *auditinfra.Interceptor, logger logger.Interface) network.NAPRepository {
	return &NAPRepositoryImpl{
		db:          gdb,
		interceptor: interceptor,
		logger:      logger,
	}
}

func (r *NAPRepositoryImpl) Create(ctx context.Context, nap *network.NAP) error {
	model := r.toModel(nap)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("nap code already exists", nap.Code())
		}
		r.logger.Errorw("failed to create nap", "error", err, "code", nap.Code())
		return fmt.Errorf("failed to create nap: %w", err)
	}

	if err := nap.SetID(model.ID); err != nil {
		return err
	}

	r.interceptor.Created(ctx, constants.TableNAPs, model.ID, model.AuditState())
	return nil
}

func (r *NAPRepositoryImpl) GetByID(ctx context.Context, id uint) (*network.NAP, error) {
	var model models.NAPModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get nap by ID", "error", err, "nap_id", id)
		return nil, fmt.Errorf("failed to get nap: %w", err)
	}

	return r.toEntity(&model)
}

func (r *NAPRepositoryImpl) GetByCode(ctx context.Context, code string) (*network.NAP, error) {
	var model models.NAPModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get nap by code", "error", err, "code", code)
		return nil, fmt.Errorf("failed to get nap by code: %w", err)
	}

	return r.toEntity(&model)
}

func (r *NAPRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*network.NAP, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.NAPModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count naps: %w", err)
	}

	var napModels []*models.NAPModel
	if err := tx.Order("code ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&napModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list naps: %w", err)
	}

	naps := make([]*network.NAP, 0, len(napModels))
	for _, m := range napModels {
		entity, err := r.toEntity(m)
		if err != nil {
			return nil, 0, err
		}
		naps = append(naps, entity)
	}

	return naps, total, nil
}

func (r *NAPRepositoryImpl) Update(ctx context.Context, nap *network.NAP) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var before models.NAPModel
	if err := tx.First(&before, nap.ID()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("nap not found")
		}
		return fmt.Errorf("failed to load nap for update: %w", err)
	}

	model := r.toModel(nap)
	model.ID = nap.ID()

	result := tx.Model(&models.NAPModel{}).
		Where("id = ?", nap.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"status":     model.Status,
			"address":    model.Address,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update nap", "error", result.Error, "nap_id", nap.ID())
		return fmt.Errorf("failed to update nap: %w", result.Error)
	}

	r.interceptor.Updated(ctx, constants.TableNAPs, nap.ID(), before.AuditState(), model.AuditState())
	return nil
}

func (r *NAPRepositoryImpl) toModel(nap *network.NAP) *models.NAPModel {
	return &models.NAPModel{
		ID:         nap.ID(),
		Code:       nap.Code(),
		Name:       nap.Name(),
		TotalPorts: nap.TotalPorts(),
		Status:     nap.Status().String(),
		Latitude:   nap.Latitude(),
		Longitude:  nap.Longitude(),
		Address:    nap.Address(),
		CreatedAt:  nap.CreatedAt(),
		UpdatedAt:  nap.UpdatedAt(),
	}
}

func (r *NAPRepositoryImpl) toEntity(model *models.NAPModel) (*network.NAP, error) {
	entity, err := network.ReconstructNAP(
		model.ID,
		model.Code,
		model.Name,
		model.TotalPorts,
		vo.NAPStatus(model.Status),
		model.Latitude,
		model.Longitude,
		model.Address,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct nap entity: %w", err)
	}
	return entity, nil
}
