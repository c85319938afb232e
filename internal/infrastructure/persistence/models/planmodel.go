package models

import (
	"time"

	"naplink/internal/shared/constants"
)

// PlanModel represents the database persistence model for service plans.
type PlanModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null;size:100"`
	DownloadMbps int    `gorm:"not null"`
	UploadMbps   int    `gorm:"not null"`
	PriceCents   int64  `gorm:"not null;default:0"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}

// AuditState returns the field-keyed snapshot used by the mutation
// interceptor.
func (m *PlanModel) AuditState() map[string]any {
	return map[string]any{
		"name":          m.Name,
		"download_mbps": m.DownloadMbps,
		"upload_mbps":   m.UploadMbps,
		"price_cents":   m.PriceCents,
		"active":        m.Active,
	}
}
