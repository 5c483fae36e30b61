package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "wecelebrate/console/internal/models/gorm"

	"gorm.io/gorm"
)

// MappingRuleRepository handles mapping rule operations using GORM
type MappingRuleRepository struct {
	db *gorm.DB
}

func NewMappingRuleRepository(db *gorm.DB) *MappingRuleRepository {
	return &MappingRuleRepository{db: db}
}

func (r *MappingRuleRepository) Create(ctx context.Context, rule *gormModels.MappingRule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create mapping rule: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the rule does not exist for the client.
func (r *MappingRuleRepository) GetByID(ctx context.Context, clientID, ruleID string) (*gormModels.MappingRule, error) {
	var rule gormModels.MappingRule

	err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", ruleID, clientID).
		First(&rule).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch mapping rule: %w", err)
	}

	return &rule, nil
}

// ListByClient returns every rule for a client in evaluation order.
func (r *MappingRuleRepository) ListByClient(ctx context.Context, clientID string) ([]gormModels.MappingRule, error) {
	var rules []gormModels.MappingRule

	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("priority ASC").
		Order("created_at ASC").
		Find(&rules).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list mapping rules: %w", err)
	}

	return rules, nil
}

func (r *MappingRuleRepository) Update(ctx context.Context, rule *gormModels.MappingRule) error {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update mapping rule: %w", err)
	}
	return nil
}

func (r *MappingRuleRepository) Delete(ctx context.Context, clientID, ruleID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", ruleID, clientID).
		Delete(&gormModels.MappingRule{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete mapping rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
