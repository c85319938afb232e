package network

import (
	"context"

	vo "naplink/internal/domain/network/valueobjects"
)

// NAPRepository persists NAP aggregates.
type NAPRepository interface {
	Create(ctx context.Context, nap *NAP) error
	GetByID(ctx context.Context, id uint) (*NAP, error)
	GetByCode(ctx context.Context, code string) (*NAP, error)
	List(ctx context.Context, page, pageSize int) ([]*NAP, int64, error)
	Update(ctx context.Context, nap *NAP) error
}

// PortRepository persists Port aggregates.
type PortRepository interface {
	CreateBatch(ctx context.Context, ports []*Port) error
	GetByID(ctx context.Context, id uint) (*Port, error)
	// GetByIDForUpdate loads the port with a row-level lock (SELECT ... FOR
	// UPDATE) so that concurrent allocations on the same port serialize.
	GetByIDForUpdate(ctx context.Context, id uint) (*Port, error)
	ListByNAPID(ctx context.Context, napID uint) ([]*Port, error)
	ListNumbersByNAPID(ctx context.Context, napID uint) ([]int, error)
	CountByNAPIDAndStatus(ctx context.Context, napID uint, status vo.PortStatus) (int64, error)
	Update(ctx context.Context, port *Port) error
}
