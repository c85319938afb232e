package models

import (
	"time"

	"naplink/internal/shared/constants"
)

// ConnectionModel represents the database persistence model for client
// connections on ports.
type ConnectionModel struct {
	ID        uint   `gorm:"primarykey"`
	PortID    uint   `gorm:"not null;index"`
	ClientID  uint   `gorm:"not null;index"`
	PlanID    uint   `gorm:"not null;index"`
	Status    string `gorm:"not null;size:20;default:active;index"`
	StartDate time.Time
	EndDate   *time.Time
	CreatedBy uint   `gorm:"not null;default:0"`
	Note      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ConnectionModel) TableName() string {
	return constants.TableConnections
}

// AuditState returns the field-keyed snapshot used by the mutation
// interceptor.
func (m *ConnectionModel) AuditState() map[string]any {
	return map[string]any{
		"port_id":    m.PortID,
		"client_id":  m.ClientID,
		"plan_id":    m.PlanID,
		"status":     m.Status,
		"start_date": m.StartDate,
		"end_date":   m.EndDate,
		"note":       m.Note,
	}
}
