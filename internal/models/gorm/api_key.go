package gorm

import (
	"time"

	"wecelebrate/console/internal/constants"
)

// APIKey is a long-lived credential used by service integrations. Lookups go
// through sqlx (see repositories.KeysRepo); GORM owns the schema.
type APIKey struct {
	ID        string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	Name      string         `gorm:"column:name;type:varchar(100);not null"`
	Role      constants.Role `gorm:"column:role;type:varchar(20);not null"`
	Status    bool           `gorm:"column:status;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (APIKey) TableName() string {
	return "api_keys"
}

// AllModels lists every model migrated at startup.
func AllModels() []interface{} {
	return []interface{}{&Client{}, &Site{}, &MappingRule{}, &APIKey{}}
}
