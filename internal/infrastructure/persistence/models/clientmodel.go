package models

import (
	"time"

	"naplink/internal/shared/constants"
)

// ClientModel represents the database persistence model for clients.
type ClientModel struct {
	ID             uint   `gorm:"primarykey"`
	DocumentNumber string `gorm:"uniqueIndex;not null;size:50"`
	Name           string `gorm:"not null;size:100"`
	Email          string `gorm:"size:100"`
	Phone          string `gorm:"size:30"`
	Address        string `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (ClientModel) TableName() string {
	return constants.TableClients
}

// AuditState returns the field-keyed snapshot used by the mutation
// interceptor.
func (m *ClientModel) AuditState() map[string]any {
	return map[string]any{
		"document_number": m.DocumentNumber,
		"name":            m.Name,
		"email":           m.Email,
		"phone":           m.Phone,
		"address":         m.Address,
	}
}
