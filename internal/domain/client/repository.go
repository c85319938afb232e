package client

import "context"

// Repository persists Client aggregates.
type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id uint) (*Client, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (*Client, error)
	List(ctx context.Context, page, pageSize int) ([]*Client, int64, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uint) error
}
