// Package constants defines shared constants used across the application.
package constants

// Environment names
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Table names for persistence and audit tracking
const (
	TableNAPs         = "naps"
	TablePorts        = "ports"
	TableClients      = "clients"
	TablePlans        = "plans"
	TableConnections  = "connections"
	TableAuditRecords = "audit_records"
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Context keys used by the HTTP layer
const (
	ContextKeyActorID = "actor_id"
)
