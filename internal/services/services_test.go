package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/db"
	"wecelebrate/console/internal/db/repositories"
	"wecelebrate/console/internal/mapping"
	"wecelebrate/console/internal/metrics"
	"wecelebrate/console/internal/models/dtos"
	gormModels "wecelebrate/console/internal/models/gorm"
	"wecelebrate/console/internal/validation"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every connection to :memory: is a separate database.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.AutoMigrate(gormModels.AllModels()...); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return gdb
}

type testServices struct {
	clients *ClientConfigService
	sites   *SiteService
	rules   *MappingRuleService
	cache   *common.CacheService
	metrics *metrics.MetricsRegistry
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	gdb := setupTestDB(t)
	sqlxDB, err := db.WrapORM(gdb, "sqlite3")
	if err != nil {
		t.Fatalf("Failed to wrap db: %v", err)
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	cache := common.NewCacheService(time.Minute, 0)

	clientRepo := repositories.NewClientRepository(gdb)
	siteSvc := NewSiteService(clientRepo, repositories.NewSiteRepository(gdb), repositories.NewRuleStatsRepo(sqlxDB), cache)

	return &testServices{
		clients: NewClientConfigService(clientRepo, cache, metricsReg),
		sites:   siteSvc,
		rules:   NewMappingRuleService(repositories.NewMappingRuleRepository(gdb), siteSvc, cache, metricsReg, 4),
		cache:   cache,
		metrics: metricsReg,
	}
}

func validClientConfig() validation.ClientConfigData {
	return validation.ClientConfigData{
		ClientName:   "Acme Corporation",
		ClientCode:   "ACME-01",
		IsActive:     true,
		ContactEmail: "hr@acme.com",
		Country:      "US",
		ERPSystem:    "SAP",
	}
}

func requireCode(t *testing.T, err error, code string) *ServiceError {
	t.Helper()

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Expected ServiceError with code %s, got %v", code, err)
	}
	if svcErr.Code != code {
		t.Fatalf("Expected code %s, got %s (%v)", code, svcErr.Code, err)
	}
	return svcErr
}

func createClient(t *testing.T, s *testServices, code string) *gormModels.Client {
	t.Helper()

	cfg := validClientConfig()
	cfg.ClientCode = code
	client, err := s.clients.Create(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Expected no error creating client, got %v", err)
	}
	return client
}

func createSite(t *testing.T, s *testServices, clientID, name string) *gormModels.Site {
	t.Helper()

	site, err := s.sites.Create(context.Background(), clientID, dtos.SiteRequest{Name: name})
	if err != nil {
		t.Fatalf("Expected no error creating site, got %v", err)
	}
	return site
}

func countryRule(siteID string, priority int, country string) dtos.MappingRuleRequest {
	return dtos.MappingRuleRequest{
		SiteID:     siteID,
		Priority:   priority,
		Conditions: []mapping.Condition{{Field: mapping.FieldCountry, Operator: mapping.OpEquals, Value: country}},
	}
}
