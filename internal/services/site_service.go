package services

import (
	"context"
	"errors"
	"strings"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/db/repositories"
	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/models/dtos"
	gormModels "wecelebrate/console/internal/models/gorm"
	"wecelebrate/console/internal/validation"
)

const maxSiteNameLength = 100

type SiteService struct {
	clients *repositories.ClientRepository
	sites   *repositories.SiteRepository
	stats   *repositories.RuleStatsRepo
	cache   common.CacheInterface
}

func NewSiteService(
	clients *repositories.ClientRepository,
	sites *repositories.SiteRepository,
	stats *repositories.RuleStatsRepo,
	cache common.CacheInterface,
) *SiteService {
	return &SiteService{
		clients: clients,
		sites:   sites,
		stats:   stats,
		cache:   cache,
	}
}

// Create adds a site under clientID. Sites are active unless the request
// says otherwise.
func (s *SiteService) Create(ctx context.Context, clientID string, req dtos.SiteRequest) (*gormModels.Site, error) {
	if err := s.requireClient(ctx, clientID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	switch {
	case name == "":
		return nil, &ServiceError{Code: constants.ErrCodeBadRequest, Message: "Site name is required"}
	case len(name) > maxSiteNameLength:
		return nil, &ServiceError{Code: constants.ErrCodeBadRequest, Message: "Site name must be 100 characters or less"}
	case url != "" && !validation.IsValidURL(url):
		return nil, &ServiceError{Code: constants.ErrCodeBadRequest, Message: "Site URL must start with http:// or https://"}
	}

	site := &gormModels.Site{
		ClientID: clientID,
		Name:     name,
		URL:      url,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}

	logging.Info("Site created", "client_id", clientID, "site_id", site.ID)
	return site, nil
}

// Get returns siteID, which must belong to clientID.
func (s *SiteService) Get(ctx context.Context, clientID, siteID string) (*gormModels.Site, error) {
	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}
	if site == nil {
		return nil, newServiceError(constants.ErrCodeSiteNotFound, nil)
	}
	if site.ClientID != clientID {
		return nil, newServiceError(constants.ErrCodeSiteClientMismatch, nil)
	}
	return site, nil
}

// List returns the client's sites with the number of active rules that
// route to each.
func (s *SiteService) List(ctx context.Context, clientID string) ([]dtos.SiteResponse, error) {
	if err := s.requireClient(ctx, clientID); err != nil {
		return nil, err
	}

	sites, err := s.sites.ListByClient(ctx, clientID)
	if err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}

	counts, err := s.stats.ActiveRuleCountsBySite(ctx, clientID)
	if err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}

	out := make([]dtos.SiteResponse, 0, len(sites))
	for _, site := range sites {
		out = append(out, ToSiteResponse(site, counts[site.ID]))
	}
	return out, nil
}

// Delete removes the site and every rule that targets it.
func (s *SiteService) Delete(ctx context.Context, clientID, siteID string) error {
	if err := s.sites.Delete(ctx, clientID, siteID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newServiceError(constants.ErrCodeSiteNotFound, nil)
		}
		return newServiceError(constants.ErrCodeDatabaseError, err)
	}

	s.cache.Delete(activeRulesKey(clientID))
	logging.Info("Site deleted", "client_id", clientID, "site_id", siteID)
	return nil
}

func (s *SiteService) requireClient(ctx context.Context, clientID string) error {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return newServiceError(constants.ErrCodeDatabaseError, err)
	}
	if client == nil {
		return newServiceError(constants.ErrCodeClientNotFound, nil)
	}
	return nil
}

func ToSiteResponse(site gormModels.Site, activeRules int) dtos.SiteResponse {
	return dtos.SiteResponse{
		ID:              site.ID,
		ClientID:        site.ClientID,
		Name:            site.Name,
		URL:             site.URL,
		IsActive:        site.IsActive,
		ActiveRuleCount: activeRules,
		CreatedAt:       common.FormatTimestamp(site.CreatedAt),
	}
}
