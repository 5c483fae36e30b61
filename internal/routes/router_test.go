package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wecelebrate/console/internal/api"
	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/db"
	"wecelebrate/console/internal/metrics"
	gormModels "wecelebrate/console/internal/models/gorm"
)

const (
	adminKey  = "admin-key"
	viewerKey = "viewer-key"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	orm, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := orm.DB()
	if err != nil {
		t.Fatalf("Failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	keys := []gormModels.APIKey{
		{ID: adminKey, Name: "console-admin", Role: constants.RoleAdmin, Status: true},
		{ID: viewerKey, Name: "reporting", Role: constants.RoleViewer, Status: true},
	}
	if err := orm.Create(&keys).Error; err != nil {
		t.Fatalf("Failed to seed api keys: %v", err)
	}

	sqlxDB, err := db.WrapORM(orm, "sqlite3")
	if err != nil {
		t.Fatalf("Failed to wrap db: %v", err)
	}

	reg := prometheus.NewRegistry()
	metricsReg := metrics.NewMetricsRegistry(reg)

	deps, tokens, keysRepo := api.InitDependencies(api.Infrastructure{
		ORM:         orm,
		SQL:         sqlxDB,
		Cache:       common.NewCacheService(time.Minute, 0),
		Metrics:     metricsReg,
		JWTSecret:   []byte("test-secret"),
		MaxTokenTTL: time.Hour,
		Workers:     2,
	})

	return RegisterRoutes(deps, RouterOptions{
		Metrics:     metricsReg,
		Gatherer:    reg,
		Tokens:      tokens,
		Keys:        keysRepo,
		CORSOrigins: []string{"http://localhost:5173"},
	})
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, h http.Handler, method, path string, headers map[string]string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode %s %s response %q: %v", method, path, rr.Body.String(), err)
	}
	return rr.Code, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("Failed to decode data %s: %v", env.Data, err)
	}
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	h := setupRouter(t)

	code, _ := call(t, h, http.MethodGet, "/api/v1/clients", nil, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", code)
	}

	code, _ = call(t, h, http.MethodGet, "/api/v1/clients", map[string]string{"X-API-Key": "unknown"}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for unknown key, got %d", code)
	}
}

func TestRouter_ViewerCannotWrite(t *testing.T) {
	h := setupRouter(t)
	viewer := map[string]string{"X-API-Key": viewerKey}

	code, _ := call(t, h, http.MethodPost, "/api/v1/clients", viewer, map[string]any{"clientName": "Acme"})
	if code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", code)
	}

	code, _ = call(t, h, http.MethodPost, "/api/v1/clients/validate", viewer, map[string]any{"clientName": "Acme"})
	if code != http.StatusOK {
		t.Errorf("Expected viewers to validate, got %d", code)
	}
}

func TestRouter_ClientSiteRuleFlow(t *testing.T) {
	h := setupRouter(t)
	admin := map[string]string{"X-API-Key": adminKey}

	// Exchange the API key for a bearer token and use it from here on.
	code, env := call(t, h, http.MethodPost, "/api/v1/auth/token", admin, map[string]string{"ttl": "30m"})
	if code != http.StatusCreated {
		t.Fatalf("Expected status 201 issuing token, got %d (%s)", code, env.Message)
	}
	var token struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &token)
	bearer := map[string]string{"Authorization": "Bearer " + token.Token}

	code, env = call(t, h, http.MethodPost, "/api/v1/clients", bearer, map[string]any{"clientName": ""})
	if code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 for invalid client, got %d", code)
	}

	code, env = call(t, h, http.MethodPost, "/api/v1/clients", bearer, map[string]any{
		"clientName":   "Acme Corporation",
		"clientCode":   "ACME",
		"isActive":     true,
		"contactEmail": "hr@acme.com",
	})
	if code != http.StatusCreated {
		t.Fatalf("Expected status 201 creating client, got %d (%s)", code, env.Message)
	}
	var client struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &client)

	code, env = call(t, h, http.MethodPost, "/api/v1/clients", bearer, map[string]any{"clientName": "Acme Again", "clientCode": "ACME"})
	if code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate code, got %d", code)
	}

	base := "/api/v1/clients/" + client.ID
	code, env = call(t, h, http.MethodPost, base+"/sites", bearer, map[string]any{"name": "US Store"})
	if code != http.StatusCreated {
		t.Fatalf("Expected status 201 creating site, got %d (%s)", code, env.Message)
	}
	var site struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &site)

	code, env = call(t, h, http.MethodPost, base+"/mapping-rules", bearer, map[string]any{
		"siteId":     site.ID,
		"priority":   1,
		"conditions": []map[string]string{{"field": "country", "operator": "equals", "value": "US"}},
	})
	if code != http.StatusCreated {
		t.Fatalf("Expected status 201 creating rule, got %d (%s)", code, env.Message)
	}

	code, env = call(t, h, http.MethodPost, base+"/mapping-rules/select-site", bearer, map[string]any{
		"attributes": map[string]string{"country": "US"},
	})
	if code != http.StatusOK {
		t.Fatalf("Expected status 200 selecting site, got %d", code)
	}
	var sel struct {
		Matched bool    `json:"matched"`
		SiteID  *string `json:"siteId"`
	}
	decodeData(t, env, &sel)
	if !sel.Matched || sel.SiteID == nil || *sel.SiteID != site.ID {
		t.Errorf("Expected US employee on %s, got %+v", site.ID, sel)
	}

	code, env = call(t, h, http.MethodGet, base+"/sites", bearer, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected status 200 listing sites, got %d", code)
	}
	var sites []struct {
		ActiveRuleCount int `json:"activeRuleCount"`
	}
	decodeData(t, env, &sites)
	if len(sites) != 1 || sites[0].ActiveRuleCount != 1 {
		t.Errorf("Expected one site with one active rule, got %+v", sites)
	}

	code, _ = call(t, h, http.MethodPost, "/api/v1/auth/revoke", bearer, nil)
	if code != http.StatusOK {
		t.Fatalf("Expected status 200 revoking token, got %d", code)
	}
	code, _ = call(t, h, http.MethodGet, base, bearer, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected revoked token to be rejected, got %d", code)
	}
}

func TestRouter_HealthCheck(t *testing.T) {
	h := setupRouter(t)

	code, env := call(t, h, http.MethodGet, "/healthCheck", nil, nil)
	if code != http.StatusOK || env.Message != "ok" {
		t.Errorf("Expected healthy response, got %d %s", code, env.Message)
	}
}
