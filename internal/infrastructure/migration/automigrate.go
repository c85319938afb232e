package migration

import (
	"naplink/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.NAPModel{},
		&models.PortModel{},
		&models.ClientModel{},
		&models.PlanModel{},
		&models.ConnectionModel{},
		&models.AuditRecordModel{},
	}
}
