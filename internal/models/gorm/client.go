package gorm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wecelebrate/console/internal/validation"
)

// Client is a gifting customer whose configuration is edited in the console.
// The full form record is stored as JSON; name, code and active flag are
// duplicated into columns for lookups.
type Client struct {
	ID        string                      `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name      string                      `gorm:"column:name;type:varchar(100);not null;index"`
	Code      *string                     `gorm:"column:code;type:varchar(50);uniqueIndex"`
	IsActive  bool                        `gorm:"column:is_active;not null"`
	Config    validation.ClientConfigData `gorm:"column:config_data;type:text;serializer:json;not null"`
	Warnings  []string                    `gorm:"column:warnings;type:text;serializer:json"`
	CreatedAt time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ApplyConfig copies the form record onto the model's indexed columns.
func (c *Client) ApplyConfig(data validation.ClientConfigData, warnings []string) {
	c.Config = data
	c.Name = strings.TrimSpace(data.ClientName)
	c.IsActive = data.IsActive
	c.Warnings = warnings
	c.Code = nil
	if code := strings.TrimSpace(data.ClientCode); code != "" {
		c.Code = &code
	}
}
