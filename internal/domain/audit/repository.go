package audit

import (
	"context"
	"time"
)

// Filter narrows ledger queries. Zero values mean "any".
type Filter struct {
	TableName string
	RecordID  uint
	Action    Action
	ActorID   uint
	From      *time.Time
	To        *time.Time
}

// Stats aggregates ledger counts for the audit screen.
type Stats struct {
	Total    int64
	ByAction map[Action]int64
	ByTable  map[string]int64
}

// Repository is the append-only persistence surface of the ledger. There is
// deliberately no update or delete operation.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context, filter Filter, page, pageSize int) ([]*Record, int64, error)
	Stats(ctx context.Context, filter Filter) (*Stats, error)
}
