// Package audit wires the mutation interceptor: the component that
// transparently appends ledger entries for every tracked create, update and
// delete, inside the same unit of work as the mutation it describes.
package audit

import (
	"sort"

	"naplink/internal/shared/constants"
)

// Registry is the static set of tracked tables, enumerated once at
// composition time. Mutations on tables outside the registry are invisible
// to the ledger.
type Registry struct {
	tables map[string]bool
}

// NewRegistry creates a registry tracking the given tables.
func NewRegistry(tables ...string) *Registry {
	m := make(map[string]bool, len(tables))
	for _, t := range tables {
		m[t] = true
	}
	return &Registry{tables: m}
}

// DefaultRegistry tracks every entity of the allocation core.
func DefaultRegistry() *Registry {
	return NewRegistry(
		constants.TableNAPs,
		constants.TablePorts,
		constants.TableClients,
		constants.TablePlans,
		constants.TableConnections,
	)
}

// Tracked reports whether mutations on the table are audited.
func (r *Registry) Tracked(table string) bool {
	return r.tables[table]
}

// Tables returns the tracked table names, sorted.
func (r *Registry) Tables() []string {
	out := make([]string, 0, len(r.tables))
	for t := range r.tables {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
