package audit

import (
	"context"

	auditdomain "naplink/internal/domain/audit"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/logger"
)

// Interceptor appends audit records for tracked mutations. Repositories
// call it after each create/update/delete; because the underlying record
// repository resolves the transaction from the context, the ledger entry
// joins the caller's unit of work and rolls back with it.
//
// The ledger is best-effort: a failure to write an audit record is logged
// and swallowed so it never fails the business operation it describes.
type Interceptor struct {
	records  auditdomain.Repository
	registry *Registry
	logger   logger.Interface
}

// NewInterceptor creates an interceptor writing through the given record
// repository for the tables in the registry.
func NewInterceptor(records auditdomain.Repository, registry *Registry, logger logger.Interface) *Interceptor {
	return &Interceptor{
		records:  records,
		registry: registry,
		logger:   logger,
	}
}

// Registry exposes the tracked-table set for the audit read surface.
func (i *Interceptor) Registry() *Registry {
	return i.registry
}

// Created records a create of a tracked record. The after map is the full
// field snapshot.
func (i *Interceptor) Created(ctx context.Context, table string, recordID uint, after map[string]any) {
	i.record(ctx, table, recordID, auditdomain.ActionCreate, nil, after)
}

// Updated records an update. Only fields whose normalized value actually
// changed are captured; a vacuous update writes nothing.
func (i *Interceptor) Updated(ctx context.Context, table string, recordID uint, before, after map[string]any) {
	if !i.registry.Tracked(table) {
		return
	}

	cs := auditdomain.Diff(before, after)
	if len(cs) == 0 {
		return
	}

	i.record(ctx, table, recordID, auditdomain.ActionUpdate, cs.BeforeState(), cs.AfterState())
}

// Deleted records a delete of a tracked record. The before map is the full
// field snapshot.
func (i *Interceptor) Deleted(ctx context.Context, table string, recordID uint, before map[string]any) {
	i.record(ctx, table, recordID, auditdomain.ActionDelete, before, nil)
}

func (i *Interceptor) record(ctx context.Context, table string, recordID uint, action auditdomain.Action, before, after map[string]any) {
	if !i.registry.Tracked(table) {
		return
	}

	// System-initiated mutations carry no actor and are not audited.
	act, ok := actor.FromContext(ctx)
	if !ok {
		return
	}

	rec, err := auditdomain.NewRecord(table, recordID, action, before, after, act.ID)
	if err != nil {
		i.logger.Warnw("failed to build audit record",
			"error", err, "table", table, "record_id", recordID, "action", action)
		return
	}

	if err := i.records.Create(ctx, rec); err != nil {
		i.logger.Warnw("failed to write audit record",
			"error", err, "table", table, "record_id", recordID, "action", action)
	}
}
