package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Site is a client's gifting site that employees are assigned to.
type Site struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	ClientID  string    `gorm:"column:client_id;type:varchar(36);not null;index"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	URL       string    `gorm:"column:url;type:varchar(255)"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Site) TableName() string {
	return "sites"
}

func (s *Site) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
