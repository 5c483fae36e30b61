package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/db/repositories"
	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/metrics"
	gormModels "wecelebrate/console/internal/models/gorm"
	"wecelebrate/console/internal/validation"
)

// ClientConfigService validates and stores client configurations. A record
// is only ever persisted when ValidateClientConfiguration reports it valid.
type ClientConfigService struct {
	clients *repositories.ClientRepository
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

func NewClientConfigService(
	clients *repositories.ClientRepository,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *ClientConfigService {
	return &ClientConfigService{
		clients: clients,
		cache:   cache,
		metrics: metricsReg,
	}
}

// Validate runs the full rule set against data.
func (s *ClientConfigService) Validate(data validation.ClientConfigData) *validation.ValidationResult {
	result := validation.ValidateClientConfiguration(data)
	s.metrics.ObserveValidation(result.Valid, len(result.Warnings))
	return result
}

// ValidateField checks a single field. It returns "" when the value passes.
func (s *ClientConfigService) ValidateField(field string, value any) (string, bool) {
	return validation.ValidateField(field, value)
}

// Create validates data and stores it as a new client.
func (s *ClientConfigService) Create(ctx context.Context, data validation.ClientConfigData) (*gormModels.Client, error) {
	result := s.Validate(data)
	if !result.Valid {
		return nil, validationFailed(result)
	}

	if err := s.ensureCodeAvailable(ctx, data.ClientCode, ""); err != nil {
		return nil, err
	}

	client := &gormModels.Client{}
	client.ApplyConfig(data, result.Warnings)

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, storeError(err)
	}

	logging.Info("Client created", "client_id", client.ID, "client_name", client.Name, "warnings", len(result.Warnings))
	return client, nil
}

// Update validates data and replaces the stored configuration of clientID.
func (s *ClientConfigService) Update(ctx context.Context, clientID string, data validation.ClientConfigData) (*gormModels.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := s.Validate(data)
	if !result.Valid {
		return nil, validationFailed(result)
	}

	if err := s.ensureCodeAvailable(ctx, data.ClientCode, clientID); err != nil {
		return nil, err
	}

	client.ApplyConfig(data, result.Warnings)
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, storeError(err)
	}

	logging.Info("Client updated", "client_id", client.ID, "warnings", len(result.Warnings))
	return client, nil
}

func (s *ClientConfigService) Get(ctx context.Context, clientID string) (*gormModels.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}
	if client == nil {
		return nil, newServiceError(constants.ErrCodeClientNotFound, nil)
	}
	return client, nil
}

func (s *ClientConfigService) List(ctx context.Context, activeOnly bool) ([]gormModels.Client, error) {
	clients, err := s.clients.List(ctx, activeOnly)
	if err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}
	return clients, nil
}

// Delete removes the client with its sites and mapping rules.
func (s *ClientConfigService) Delete(ctx context.Context, clientID string) error {
	if err := s.clients.Delete(ctx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newServiceError(constants.ErrCodeClientNotFound, nil)
		}
		return newServiceError(constants.ErrCodeDatabaseError, err)
	}

	// The client's rules went with it.
	s.cache.Delete(activeRulesKey(clientID))
	logging.Info("Client deleted", "client_id", clientID)
	return nil
}

// ensureCodeAvailable fails with CONFLICT when another client owns code.
func (s *ClientConfigService) ensureCodeAvailable(ctx context.Context, code, selfID string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}

	existing, err := s.clients.GetByCode(ctx, code)
	if err != nil {
		return newServiceError(constants.ErrCodeDatabaseError, err)
	}
	if existing != nil && existing.ID != selfID {
		return &ServiceError{
			Code:    constants.ErrCodeConflict,
			Message: fmt.Sprintf("Client code %q is already in use", code),
		}
	}
	return nil
}

func validationFailed(result *validation.ValidationResult) *ServiceError {
	return &ServiceError{
		Code:    constants.ErrCodeValidationFailed,
		Message: constants.GetErrorMessage(constants.ErrCodeValidationFailed),
		Result:  result,
	}
}

func storeError(err error) *ServiceError {
	if errors.Is(err, repositories.ErrDuplicate) {
		return newServiceError(constants.ErrCodeConflict, err)
	}
	return newServiceError(constants.ErrCodeDatabaseError, err)
}
