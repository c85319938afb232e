package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"naplink/internal/domain/plan"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db          *gorm.DB
	interceptor *auditinfra.Interceptor
	logger      logger.Interface
}

func NewPlanRepository(gdb *gorm.DB, interceptor *auditinfra.Interceptor, logger logger.Interface) plan.Repository {
	return &PlanRepositoryImpl{
		db:          gdb,
		interceptor: interceptor,
		logger:      logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, p *plan.Plan) error {
	model := r.toModel(p)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "name", p.Name())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return err
	}

	r.interceptor.Created(ctx, constants.TablePlans, model.ID, model.AuditState())
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	var model models.PlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*plan.Plan, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.PlanModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}

	var planModels []*models.PlanModel
	if err := tx.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&planModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*plan.Plan, 0, len(planModels))
	for _, m := range planModels {
		entity, err := r.toEntity(m)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, entity)
	}

	return plans, total, nil
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, p *plan.Plan) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var before models.PlanModel
	if err := tx.First(&before, p.ID()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("plan not found")
		}
		return fmt.Errorf("failed to load plan for update: %w", err)
	}

	model := r.toModel(p)

	result := tx.Model(&models.PlanModel{}).
		Where("id = ?", p.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"active":     model.Active,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update plan", "error", result.Error, "plan_id", p.ID())
		return fmt.Errorf("failed to update plan: %w", result.Error)
	}

	r.interceptor.Updated(ctx, constants.TablePlans, p.ID(), before.AuditState(), model.AuditState())
	return nil
}

func (r *PlanRepositoryImpl) toModel(p *plan.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:           p.ID(),
		Name:         p.Name(),
		DownloadMbps: p.DownloadMbps(),
		UploadMbps:   p.UploadMbps(),
		PriceCents:   p.PriceCents(),
		Active:       p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*plan.Plan, error) {
	entity, err := plan.ReconstructPlan(
		model.ID,
		model.Name,
		model.DownloadMbps,
		model.UploadMbps,
		model.PriceCents,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}
	return entity, nil
}
