package usecases

import (
	"context"

	"naplink/internal/domain/plan"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/db"
	"naplink/internal/shared/errors"
	"naplink/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name         string
	DownloadMbps int
	UploadMbps   int
	PriceCents   int64
	ActorID      uint
}

type CreatePlanResult struct {
	Plan *plan.Plan
}

type CreatePlanUseCase struct {
	txManager *db.TransactionManager
	planRepo  plan.Repository
	logger    logger.Interface
}

func NewCreatePlanUseCase(txManager *db.TransactionManager, planRepo plan.Repository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		txManager: txManager,
		planRepo:  planRepo,
		logger:    logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*CreatePlanResult, error) {
	newPlan, err := plan.NewPlan(cmd.Name, cmd.DownloadMbps, cmd.UploadMbps, cmd.PriceCents)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		txCtx = actor.WithActor(txCtx, actor.Actor{ID: cmd.ActorID})
		return uc.planRepo.Create(txCtx, newPlan)
	})
	if err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "name", cmd.Name)
		return nil, err
	}

	uc.logger.Infow("plan created", "plan_id", newPlan.ID(), "name", newPlan.Name())
	return &CreatePlanResult{Plan: newPlan}, nil
}
