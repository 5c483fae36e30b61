package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wecelebrate/console/internal/mapping"
)

// MappingRule is the stored form of mapping.MappingRule.
type MappingRule struct {
	ID         string              `gorm:"column:id;primaryKey;type:varchar(36)"`
	ClientID   string              `gorm:"column:client_id;type:varchar(36);not null;index:idx_mapping_rules_client_priority,priority:1"`
	SiteID     string              `gorm:"column:site_id;type:varchar(36);not null;index"`
	Priority   int                 `gorm:"column:priority;not null;index:idx_mapping_rules_client_priority,priority:2"`
	Conditions []mapping.Condition `gorm:"column:conditions;type:text;serializer:json;not null"`
	IsActive   bool                `gorm:"column:is_active;not null"`
	IsDefault  bool                `gorm:"column:is_default;not null"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MappingRule) TableName() string {
	return "mapping_rules"
}

func (m *MappingRule) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ToDomain converts the row into the evaluator's rule type.
func (m *MappingRule) ToDomain() mapping.MappingRule {
	return mapping.MappingRule{
		ID:         m.ID,
		ClientID:   m.ClientID,
		SiteID:     m.SiteID,
		Priority:   m.Priority,
		Conditions: m.Conditions,
		IsActive:   m.IsActive,
		IsDefault:  m.IsDefault,
	}
}

// MappingRuleFromDomain builds a row from an evaluator rule.
func MappingRuleFromDomain(r mapping.MappingRule) *MappingRule {
	conditions := r.Conditions
	if conditions == nil {
		conditions = []mapping.Condition{}
	}
	return &MappingRule{
		ID:         r.ID,
		ClientID:   r.ClientID,
		SiteID:     r.SiteID,
		Priority:   r.Priority,
		Conditions: conditions,
		IsActive:   r.IsActive,
		IsDefault:  r.IsDefault,
	}
}
