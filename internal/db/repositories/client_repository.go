package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "wecelebrate/console/internal/models/gorm"

	"gorm.io/gorm"
)

// ClientRepository handles client table operations using GORM
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a client. A duplicate client code returns ErrDuplicate.
func (r *ClientRepository) Create(ctx context.Context, client *gormModels.Client) error {
	err := r.db.WithContext(ctx).Create(client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("client code %q: %w", derefString(client.Code), ErrDuplicate)
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the client does not exist.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*gormModels.Client, error) {
	var client gormModels.Client

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}

	return &client, nil
}

// GetByCode returns nil, nil when no client uses code.
func (r *ClientRepository) GetByCode(ctx context.Context, code string) (*gormModels.Client, error) {
	var client gormModels.Client

	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&client).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch client by code: %w", err)
	}

	return &client, nil
}

// List returns clients ordered by name.
func (r *ClientRepository) List(ctx context.Context, activeOnly bool) ([]gormModels.Client, error) {
	var clients []gormModels.Client

	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *gormModels.Client) error {
	err := r.db.WithContext(ctx).Save(client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("client code %q: %w", derefString(client.Code), ErrDuplicate)
		}
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// Delete removes a client together with its sites and mapping rules.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&gormModels.MappingRule{}).Error; err != nil {
			return fmt.Errorf("failed to delete mapping rules: %w", err)
		}
		if err := tx.Where("client_id = ?", id).Delete(&gormModels.Site{}).Error; err != nil {
			return fmt.Errorf("failed to delete sites: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&gormModels.Client{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete client: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
