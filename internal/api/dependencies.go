package api

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/db/repositories"
	"wecelebrate/console/internal/metrics"
	"wecelebrate/console/internal/models/dtos"
	gormModels "wecelebrate/console/internal/models/gorm"
	"wecelebrate/console/internal/services"
	"wecelebrate/console/internal/validation"
)

// ClientConfigManager is the client configuration service as seen by handlers.
type ClientConfigManager interface {
	Validate(data validation.ClientConfigData) *validation.ValidationResult
	ValidateField(field string, value any) (string, bool)
	Create(ctx context.Context, data validation.ClientConfigData) (*gormModels.Client, error)
	Update(ctx context.Context, clientID string, data validation.ClientConfigData) (*gormModels.Client, error)
	Get(ctx context.Context, clientID string) (*gormModels.Client, error)
	List(ctx context.Context, activeOnly bool) ([]gormModels.Client, error)
	Delete(ctx context.Context, clientID string) error
}

type SiteManager interface {
	Create(ctx context.Context, clientID string, req dtos.SiteRequest) (*gormModels.Site, error)
	List(ctx context.Context, clientID string) ([]dtos.SiteResponse, error)
	Delete(ctx context.Context, clientID, siteID string) error
}

type MappingRuleManager interface {
	List(ctx context.Context, clientID string) ([]gormModels.MappingRule, error)
	Create(ctx context.Context, clientID string, req dtos.MappingRuleRequest) (*gormModels.MappingRule, error)
	Update(ctx context.Context, clientID, ruleID string, req dtos.MappingRuleRequest) (*gormModels.MappingRule, error)
	Delete(ctx context.Context, clientID, ruleID string) error
	SelectSite(ctx context.Context, clientID string, attrs map[string]string) (*dtos.SelectSiteResponse, error)
	TestRule(ctx context.Context, clientID string, attrs map[string]string) (*dtos.RuleTestResponse, error)
	AssignEmployees(ctx context.Context, clientID string, employees []dtos.EmployeeRecord) (*dtos.AssignmentsResponse, error)
}

type TokenIssuer interface {
	Issue(subject string, role constants.Role, ttl time.Duration) (*common.IssuedToken, error)
	Revoke(tokenID string, expiresAt time.Time)
}

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Clients      ClientConfigManager
	Sites        SiteManager
	MappingRules MappingRuleManager
	Tokens       TokenIssuer
}

type Dependencies struct {
	Services *Services

	// HealthChecks maps a component name to its probe.
	HealthChecks map[string]Pinger
	MaxTokenTTL  time.Duration
	UpSince      time.Time
}

// Infrastructure is what InitDependencies builds services from.
type Infrastructure struct {
	ORM          *gorm.DB
	SQL          *sqlx.DB
	Cache        common.CacheInterface
	Metrics      *metrics.MetricsRegistry
	JWTSecret    []byte
	MaxTokenTTL  time.Duration
	Workers      int
	HealthChecks map[string]Pinger
}

// InitDependencies wires repositories and services. It also returns the
// token service and key repository the auth middleware needs.
func InitDependencies(infra Infrastructure) (*Dependencies, *common.TokenService, *repositories.KeysRepo) {
	clientRepo := repositories.NewClientRepository(infra.ORM)
	siteRepo := repositories.NewSiteRepository(infra.ORM)
	ruleRepo := repositories.NewMappingRuleRepository(infra.ORM)
	statsRepo := repositories.NewRuleStatsRepo(infra.SQL)
	keysRepo := repositories.NewApiKeysRepo(infra.SQL)

	tokenSvc := common.NewTokenService(infra.JWTSecret, infra.Cache)
	siteSvc := services.NewSiteService(clientRepo, siteRepo, statsRepo, infra.Cache)

	checks := map[string]Pinger{"database": keysRepo}
	for name, p := range infra.HealthChecks {
		checks[name] = p
	}

	deps := &Dependencies{
		Services: &Services{
			Clients:      services.NewClientConfigService(clientRepo, infra.Cache, infra.Metrics),
			Sites:        siteSvc,
			MappingRules: services.NewMappingRuleService(ruleRepo, siteSvc, infra.Cache, infra.Metrics, infra.Workers),
			Tokens:       tokenSvc,
		},
		HealthChecks: checks,
		MaxTokenTTL:  infra.MaxTokenTTL,
		UpSince:      time.Now(),
	}

	return deps, tokenSvc, keysRepo
}
