// Package audit holds the append-only audit ledger: immutable records of
// who changed which entity and how. Records are written solely as a side
// effect of tracked mutations and never updated or deleted.
package audit

import (
	"fmt"
	"time"
)

// Action is the kind of mutation a record describes.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var ValidActions = map[Action]bool{
	ActionCreate: true,
	ActionUpdate: true,
	ActionDelete: true,
}

func (a Action) String() string {
	return string(a)
}

// Record is one immutable ledger entry. Before and after hold normalized
// field-keyed state: full snapshots for create/delete, changed fields only
// for update.
type Record struct {
	id        uint
	tableName string
	recordID  uint
	action    Action
	before    map[string]any
	after     map[string]any
	actorID   uint
	createdAt time.Time
}

// NewRecord creates a ledger entry. Update records must carry a non-empty
// diff: a vacuous update is a caller bug, not a recordable event.
func NewRecord(tableName string, recordID uint, action Action, before, after map[string]any, actorID uint) (*Record, error) {
	if tableName == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if recordID == 0 {
		return nil, fmt.Errorf("record ID is required")
	}
	if !ValidActions[action] {
		return nil, fmt.Errorf("invalid audit action: %s", action)
	}
	if actorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}

	switch action {
	case ActionCreate:
		if len(after) == 0 {
			return nil, fmt.Errorf("create record requires after state")
		}
	case ActionDelete:
		if len(before) == 0 {
			return nil, fmt.Errorf("delete record requires before state")
		}
	case ActionUpdate:
		if len(before) == 0 || len(after) == 0 {
			return nil, fmt.Errorf("update record requires a non-empty diff")
		}
	}

	return &Record{
		tableName: tableName,
		recordID:  recordID,
		action:    action,
		before:    NormalizeState(before),
		after:     NormalizeState(after),
		actorID:   actorID,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructRecord reconstructs a record from persistence.
func ReconstructRecord(
	id uint,
	tableName string,
	recordID uint,
	action Action,
	before, after map[string]any,
	actorID uint,
	createdAt time.Time,
) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("audit record ID cannot be zero")
	}
	if !ValidActions[action] {
		return nil, fmt.Errorf("invalid audit action: %s", action)
	}

	return &Record{
		id:        id,
		tableName: tableName,
		recordID:  recordID,
		action:    action,
		before:    before,
		after:     after,
		actorID:   actorID,
		createdAt: createdAt,
	}, nil
}

func (r *Record) ID() uint { return r.id }
func (r *Record) TableName() string { return r.tableName }
func (r *Record) RecordID() uint { return r.recordID }
func (r *Record) Action() Action { return r.action }
func (r *Record) ActorID() uint { return r.actorID }
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// Before returns the before-state. Callers must not mutate the map.
func (r *Record) Before() map[string]any { return r.before }

// After returns the after-state. Callers must not mutate the map.
func (r *Record) After() map[string]any { return r.after }

// SetID sets the record ID (only for persistence layer use)
func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("audit record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("audit record ID cannot be zero")
	}
	r.id = id
	return nil
}
