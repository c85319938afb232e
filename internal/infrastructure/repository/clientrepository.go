package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"naplink/internal/domain/client"
	auditinfra "naplink/internal/infrastructure/audit"
	"naplink/internal/infrastructure/persistence/models"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type ClientRepositoryImpl struct {
	db          *gorm.DB
	interceptor *auditinfra.Interceptor
	logger      logger.Interface
}

func NewClientRepository(gdb *gorm.DB, interceptor *auditinfra.Interceptor, logger logger.Interface) client.Repository {
	return &ClientRepositoryImpl{
		db:          gdb,
		interceptor: interceptor,
		logger:      logger,
	}
}

func (r *ClientRepositoryImpl) Create(ctx context.Context, c *client.Client) error {
	model := r.toModel(c)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("client document number already exists", c.DocumentNumber())
		}
		r.logger.Errorw("failed to create client", "error", err, "document_number", c.DocumentNumber())
		return fmt.Errorf("failed to create client: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return err
	}

	r.interceptor.Created(ctx, constants.TableClients, model.ID, model.AuditState())
	return nil
}

func (r *ClientRepositoryImpl) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	var model models.ClientModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get client by ID", "error", err, "client_id", id)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return r.toEntity(&model)
}

func (r *ClientRepositoryImpl) GetByDocumentNumber(ctx context.Context, documentNumber string) (*client.Client, error) {
	var model models.ClientModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("document_number = ?", documentNumber).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get client by document number", "error", err)
		return nil, fmt.Errorf("failed to get client by document number: %w", err)
	}

	return r.toEntity(&model)
}

func (r *ClientRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*client.Client, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.ClientModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var clientModels []*models.ClientModel
	if err := tx.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clientModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*client.Client, 0, len(clientModels))
	for _, m := range clientModels {
		entity, err := r.toEntity(m)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, entity)
	}

	return clients, total, nil
}

func (r *ClientRepositoryImpl) Update(ctx context.Context, c *client.Client) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var before models.ClientModel
	if err := tx.First(&before, c.ID()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("client not found")
		}
		return fmt.Errorf("failed to load client for update: %w", err)
	}

	model := r.toModel(c)

	result := tx.Model(&models.ClientModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"email":      model.Email,
			"phone":      model.Phone,
			"address":    model.Address,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update client", "error", result.Error, "client_id", c.ID())
		return fmt.Errorf("failed to update client: %w", result.Error)
	}

	r.interceptor.Updated(ctx, constants.TableClients, c.ID(), before.AuditState(), model.AuditState())
	return nil
}

func (r *ClientRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var before models.ClientModel
	if err := tx.First(&before, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("client not found")
		}
		return fmt.Errorf("failed to load client for delete: %w", err)
	}

	result := tx.Delete(&models.ClientModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete client", "error", result.Error, "client_id", id)
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("client not found")
	}

	r.interceptor.Deleted(ctx, constants.TableClients, id, before.AuditState())
	return nil
}

func (r *ClientRepositoryImpl) toModel(c *client.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:             c.ID(),
		DocumentNumber: c.DocumentNumber(),
		Name:           c.Name(),
		Email:          c.Email(),
		Phone:          c.Phone(),
		Address:        c.Address(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func (r *ClientRepositoryImpl) toEntity(model *models.ClientModel) (*client.Client, error) {
	entity, err := client.ReconstructClient(
		model.ID,
		model.DocumentNumber,
		model.Name,
		model.Email,
		model.Phone,
		model.Address,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct client entity: %w", err)
	}
	return entity, nil
}
