package models

import (
	"time"

	"naplink/internal/shared/constants"
)

// NAPModel represents the database persistence model for network access
// points. This is the anti-corruption layer between domain and database.
type NAPModel struct {
	ID         uint   `gorm:"primarykey"`
	Code       string `gorm:"uniqueIndex;not null;size:50"`
	Name       string `gorm:"not null;size:100"`
	TotalPorts int    `gorm:"not null"`
	Status     string `gorm:"not null;size:20;default:active;index"`
	Latitude   float64
	Longitude  float64
	Address    string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (NAPModel) TableName() string {
	return constants.TableNAPs
}

// AuditState returns the field-keyed snapshot used by the mutation
// interceptor to build before/after audit states.
func (m *NAPModel) AuditState() map[string]any {
	return map[string]any{
		"code":        m.Code,
		"name":        m.Name,
		"total_ports": m.TotalPorts,
		"status":      m.Status,
		"latitude":    m.Latitude,
		"longitude":   m.Longitude,
		"address":     m.Address,
	}
}
