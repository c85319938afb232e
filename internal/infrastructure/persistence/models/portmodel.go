package models

import (
	"time"

	"naplink/internal/shared/constants"
)

// PortModel represents the database persistence model for NAP ports.
// Port numbers are unique within their NAP.
type PortModel struct {
	ID        uint   `gorm:"primarykey"`
	NAPID     uint   `gorm:"column:nap_id;not null;index;uniqueIndex:idx_ports_nap_number"`
	Number    int    `gorm:"not null;uniqueIndex:idx_ports_nap_number"`
	Status    string `gorm:"not null;size:20;default:free;index"`
	Note      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (PortModel) TableName() string {
	return constants.TablePorts
}

// AuditState returns the field-keyed snapshot used by the mutation
// interceptor.
func (m *PortModel) AuditState() map[string]any {
	return map[string]any{
		"nap_id": m.NAPID,
		"number": m.Number,
		"status": m.Status,
		"note":   m.Note,
	}
}
