package connection

import (
	"context"

	vo "naplink/internal/domain/connection/valueobjects"
)

// ListFilter narrows connection listings for screens.
type ListFilter struct {
	PortID   uint
	ClientID uint
	NAPID    uint
	Status   vo.ConnectionStatus
}

// Repository persists Connection aggregates.
type Repository interface {
	Create(ctx context.Context, conn *Connection) error
	GetByID(ctx context.Context, id uint) (*Connection, error)
	// GetLiveByPortID returns the active or suspended connection on the
	// port, or nil when the port carries none.
	GetLiveByPortID(ctx context.Context, portID uint) (*Connection, error)
	ListLiveByClientID(ctx context.Context, clientID uint) ([]*Connection, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]*Connection, int64, error)
	Update(ctx context.Context, conn *Connection) error
}
