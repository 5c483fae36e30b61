package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/db/repositories"
	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/mapping"
	"wecelebrate/console/internal/metrics"
	"wecelebrate/console/internal/models/dtos"
	gormModels "wecelebrate/console/internal/models/gorm"
)

const (
	rulesCacheTTL      = 10 * time.Minute
	maxAssignmentBatch = 10000
)

// MappingRuleService manages a client's mapping rules and evaluates them.
// Each client's rule list is cached as JSON and evicted on every write.
type MappingRuleService struct {
	rules   *repositories.MappingRuleRepository
	sites   *SiteService
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
	workers int
}

func NewMappingRuleService(
	rules *repositories.MappingRuleRepository,
	sites *SiteService,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	workers int,
) *MappingRuleService {
	if workers < 1 {
		workers = 1
	}
	return &MappingRuleService{
		rules:   rules,
		sites:   sites,
		cache:   cache,
		metrics: metricsReg,
		workers: workers,
	}
}

func (s *MappingRuleService) List(ctx context.Context, clientID string) ([]gormModels.MappingRule, error) {
	if err := s.sites.requireClient(ctx, clientID); err != nil {
		return nil, err
	}

	rules, err := s.rules.ListByClient(ctx, clientID)
	if err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}
	return rules, nil
}

func (s *MappingRuleService) Create(ctx context.Context, clientID string, req dtos.MappingRuleRequest) (*gormModels.MappingRule, error) {
	rule := ruleFromRequest(clientID, "", req)
	if err := s.checkRule(ctx, rule); err != nil {
		return nil, err
	}

	row := gormModels.MappingRuleFromDomain(rule)
	if err := s.rules.Create(ctx, row); err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}

	s.evict(clientID)
	logging.Info("Mapping rule created", "client_id", clientID, "rule_id", row.ID, "site_id", row.SiteID, "priority", row.Priority)
	return row, nil
}

func (s *MappingRuleService) Update(ctx context.Context, clientID, ruleID string, req dtos.MappingRuleRequest) (*gormModels.MappingRule, error) {
	existing, err := s.rules.GetByID(ctx, clientID, ruleID)
	if err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}
	if existing == nil {
		return nil, newServiceError(constants.ErrCodeRuleNotFound, nil)
	}

	rule := ruleFromRequest(clientID, ruleID, req)
	if err := s.checkRule(ctx, rule); err != nil {
		return nil, err
	}

	row := gormModels.MappingRuleFromDomain(rule)
	row.CreatedAt = existing.CreatedAt
	if err := s.rules.Update(ctx, row); err != nil {
		return nil, newServiceError(constants.ErrCodeDatabaseError, err)
	}

	s.evict(clientID)
	logging.Info("Mapping rule updated", "client_id", clientID, "rule_id", ruleID)
	return row, nil
}

func (s *MappingRuleService) Delete(ctx context.Context, clientID, ruleID string) error {
	if err := s.rules.Delete(ctx, clientID, ruleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newServiceError(constants.ErrCodeRuleNotFound, nil)
		}
		return newServiceError(constants.ErrCodeDatabaseError, err)
	}

	s.evict(clientID)
	logging.Info("Mapping rule deleted", "client_id", clientID, "rule_id", ruleID)
	return nil
}

// SelectSite returns the site of the first active matching rule.
func (s *MappingRuleService) SelectSite(ctx context.Context, clientID string, attrs map[string]string) (*dtos.SelectSiteResponse, error) {
	rules, err := s.loadRules(ctx, clientID)
	if err != nil {
		return nil, err
	}

	resp := selectSite(rules, attrs)
	s.metrics.ObserveSelection(resp.Matched)
	return &resp, nil
}

// TestRule explains how every rule of the client treats attrs.
func (s *MappingRuleService) TestRule(ctx context.Context, clientID string, attrs map[string]string) (*dtos.RuleTestResponse, error) {
	rules, err := s.loadRules(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &dtos.RuleTestResponse{
		SelectSiteResponse: selectSite(rules, attrs),
		Trace:              mapping.Explain(rules, attrs),
	}, nil
}

// AssignEmployees selects a site for each employee. The rule set is loaded
// once and evaluated on a bounded worker pool; results keep input order.
func (s *MappingRuleService) AssignEmployees(ctx context.Context, clientID string, employees []dtos.EmployeeRecord) (*dtos.AssignmentsResponse, error) {
	if len(employees) > maxAssignmentBatch {
		return nil, &ServiceError{
			Code:    constants.ErrCodeBadRequest,
			Message: fmt.Sprintf("At most %d employees can be assigned per request", maxAssignmentBatch),
		}
	}

	rules, err := s.loadRules(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.AssignmentBatchSize.Observe(float64(len(employees)))
	}

	assignments := make([]dtos.Assignment, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sel := selectSite(rules, emp.Attributes)
			assignments[i] = dtos.Assignment{
				EmployeeID: emp.EmployeeID,
				Matched:    sel.Matched,
				SiteID:     sel.SiteID,
				RuleID:     sel.RuleID,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dtos.AssignmentsResponse{Assignments: assignments}
	for _, a := range assignments {
		s.metrics.ObserveSelection(a.Matched)
		if a.Matched {
			resp.Matched++
		} else {
			resp.Unmatched++
		}
	}

	logging.Info("Employees assigned", "client_id", clientID, "matched", resp.Matched, "unmatched", resp.Unmatched)
	return resp, nil
}

// loadRules returns all of the client's rules, from cache when possible.
func (s *MappingRuleService) loadRules(ctx context.Context, clientID string) ([]mapping.MappingRule, error) {
	key := activeRulesKey(clientID)
	pattern := string(constants.CachePrefixActiveRules)

	loaded := false
	val, err := s.cache.GetOrSet(key, rulesCacheTTL, func() (any, error) {
		loaded = true
		return s.fetchRules(ctx, clientID)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCache(pattern, !loaded)

	if rules, ok := decodeRules(val); ok {
		return rules, nil
	}

	// Unreadable entry: drop it and read through.
	logging.Warn("Discarding unreadable rule cache entry", "client_id", clientID)
	s.cache.Delete(key)
	raw, err := s.fetchRules(ctx, clientID)
	if err != nil {
		return nil, err
	}
	rules, _ := decodeRules(raw)
	return rules, nil
}

// fetchRules reads the client's rules from the database as a JSON string,
// the form they are cached in.
func (s *MappingRuleService) fetchRules(ctx context.Context, clientID string) (string, error) {
	if err := s.sites.requireClient(ctx, clientID); err != nil {
		return "", err
	}

	rows, err := s.rules.ListByClient(ctx, clientID)
	if err != nil {
		return "", newServiceError(constants.ErrCodeDatabaseError, err)
	}

	rules := make([]mapping.MappingRule, 0, len(rows))
	for i := range rows {
		rules = append(rules, rows[i].ToDomain())
	}

	raw, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("failed to encode rules: %w", err)
	}
	return string(raw), nil
}

func decodeRules(val any) ([]mapping.MappingRule, bool) {
	raw, ok := val.(string)
	if !ok {
		return nil, false
	}
	var rules []mapping.MappingRule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, false
	}
	return rules, true
}

// checkRule validates the rule shape, then that its site belongs to the client.
func (s *MappingRuleService) checkRule(ctx context.Context, rule mapping.MappingRule) error {
	if err := mapping.ValidateRule(rule); err != nil {
		return &ServiceError{Code: constants.ErrCodeInvalidRule, Message: err.Error(), Err: err}
	}
	if err := s.sites.requireClient(ctx, rule.ClientID); err != nil {
		return err
	}
	_, err := s.sites.Get(ctx, rule.ClientID, rule.SiteID)
	return err
}

func (s *MappingRuleService) evict(clientID string) {
	s.cache.Delete(activeRulesKey(clientID))
}

func ruleFromRequest(clientID, ruleID string, req dtos.MappingRuleRequest) mapping.MappingRule {
	return mapping.MappingRule{
		ID:         ruleID,
		ClientID:   clientID,
		SiteID:     req.SiteID,
		Priority:   req.Priority,
		Conditions: req.Conditions,
		IsActive:   req.IsActive == nil || *req.IsActive,
		IsDefault:  req.IsDefault,
	}
}

func selectSite(rules []mapping.MappingRule, attrs map[string]string) dtos.SelectSiteResponse {
	rule, ok := mapping.FirstMatch(rules, attrs)
	if !ok {
		return dtos.SelectSiteResponse{}
	}
	return dtos.SelectSiteResponse{
		Matched: true,
		SiteID:  common.StringPtr(rule.SiteID),
		RuleID:  common.StringPtr(rule.ID),
	}
}

func activeRulesKey(clientID string) string {
	return string(constants.CachePrefixActiveRules) + clientID
}

func ToMappingRuleResponse(row gormModels.MappingRule) dtos.MappingRuleResponse {
	return dtos.MappingRuleResponse{
		MappingRule: row.ToDomain(),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
