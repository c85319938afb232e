package models

import (
	"time"

	"gorm.io/datatypes"

	"naplink/internal/shared/constants"
)

// AuditRecordModel represents the database persistence model for the
// append-only audit ledger. Rows are write-once: no code path updates or
// deletes them.
type AuditRecordModel struct {
	ID        uint           `gorm:"primarykey"`
	Table     string         `gorm:"column:table_name;not null;size:64;index"`
	RecordID  uint           `gorm:"not null;index"`
	Action    string         `gorm:"not null;size:10;index"`
	Before    datatypes.JSON `gorm:"column:before_state"`
	After     datatypes.JSON `gorm:"column:after_state"`
	ActorID   uint           `gorm:"not null;index"`
	CreatedAt time.Time      `gorm:"index"`
}

// TableName specifies the table name for GORM
func (AuditRecordModel) TableName() string {
	return constants.TableAuditRecords
}
