package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "wecelebrate/console/internal/models/gorm"

	"gorm.io/gorm"
)

// SiteRepository handles site table operations using GORM
type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(ctx context.Context, site *gormModels.Site) error {
	if err := r.db.WithContext(ctx).Create(site).Error; err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the site does not exist.
func (r *SiteRepository) GetByID(ctx context.Context, id string) (*gormModels.Site, error) {
	var site gormModels.Site

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&site).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch site: %w", err)
	}

	return &site, nil
}

func (r *SiteRepository) ListByClient(ctx context.Context, clientID string) ([]gormModels.Site, error) {
	var sites []gormModels.Site

	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("name ASC").
		Find(&sites).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	return sites, nil
}

// Delete removes a site and every mapping rule that targets it.
func (r *SiteRepository) Delete(ctx context.Context, clientID, siteID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND client_id = ?", siteID, clientID).Delete(&gormModels.Site{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete site: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("site_id = ?", siteID).Delete(&gormModels.MappingRule{}).Error; err != nil {
			return fmt.Errorf("failed to delete mapping rules for site: %w", err)
		}
		return nil
	})
}
