package plan

import "context"

// Repository persists Plan aggregates.
type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	List(ctx context.Context, page, pageSize int) ([]*Plan, int64, error)
	Update(ctx context.Context, plan *Plan) error
}
