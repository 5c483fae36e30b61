package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"wecelebrate/console/internal/constants"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Expected no error reading counter, got %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestClientConfigService_CreateStoresValidConfig(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	cfg := validClientConfig()
	cfg.Country = "us"
	client, err := s.clients.Create(ctx, cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if client.ID == "" {
		t.Error("Expected generated ID")
	}
	if client.Code == nil || *client.Code != "ACME-01" {
		t.Errorf("Expected code ACME-01, got %v", client.Code)
	}
	if len(client.Warnings) != 1 {
		t.Errorf("Expected 1 warning for lowercase country, got %v", client.Warnings)
	}

	stored, err := s.clients.Get(ctx, client.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stored.Config.ContactEmail != "hr@acme.com" {
		t.Errorf("Expected stored config round trip, got %+v", stored.Config)
	}

	if got := counterValue(t, s.metrics.ValidationsTotal.WithLabelValues("valid")); got != 1 {
		t.Errorf("Expected 1 valid validation recorded, got %v", got)
	}
}

func TestClientConfigService_CreateRejectsInvalidConfig(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	cfg := validClientConfig()
	cfg.ClientName = ""
	cfg.ContactEmail = "not-an-email"

	_, err := s.clients.Create(ctx, cfg)
	svcErr := requireCode(t, err, constants.ErrCodeValidationFailed)

	if svcErr.Result == nil || svcErr.Result.Valid {
		t.Fatal("Expected a failed validation result on the error")
	}
	if svcErr.Result.FieldErrors["clientName"] != "Client name is required" {
		t.Errorf("Unexpected clientName error: %q", svcErr.Result.FieldErrors["clientName"])
	}
	if svcErr.Result.FieldErrors["contactEmail"] != "Invalid email format" {
		t.Errorf("Unexpected contactEmail error: %q", svcErr.Result.FieldErrors["contactEmail"])
	}

	clients, err := s.clients.List(ctx, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("Expected nothing stored, got %d clients", len(clients))
	}
}

func TestClientConfigService_DuplicateCodeConflicts(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	createClient(t, s, "ACME-01")

	_, err := s.clients.Create(ctx, validClientConfig())
	requireCode(t, err, constants.ErrCodeConflict)
}

func TestClientConfigService_ClientsWithoutCodeDoNotConflict(t *testing.T) {
	s := setupServices(t)

	createClient(t, s, "")
	createClient(t, s, "")
}

func TestClientConfigService_Update(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	client := createClient(t, s, "ACME-01")
	other := createClient(t, s, "OTHER")

	cfg := validClientConfig()
	cfg.ClientName = "Acme Holdings"
	updated, err := s.clients.Update(ctx, client.ID, cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Name != "Acme Holdings" {
		t.Errorf("Expected name Acme Holdings, got %s", updated.Name)
	}

	cfg.ClientCode = "OTHER"
	_, err = s.clients.Update(ctx, client.ID, cfg)
	requireCode(t, err, constants.ErrCodeConflict)

	_, err = s.clients.Update(ctx, "missing", cfg)
	requireCode(t, err, constants.ErrCodeClientNotFound)

	if other.ID == client.ID {
		t.Error("Expected distinct client IDs")
	}
}

func TestClientConfigService_ListActiveOnly(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	createClient(t, s, "A")
	cfg := validClientConfig()
	cfg.ClientCode = "B"
	cfg.IsActive = false
	if _, err := s.clients.Create(ctx, cfg); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all, err := s.clients.List(ctx, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	active, err := s.clients.List(ctx, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(all) != 2 || len(active) != 1 {
		t.Errorf("Expected 2 total and 1 active, got %d and %d", len(all), len(active))
	}
}

func TestClientConfigService_DeleteCascades(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	client := createClient(t, s, "ACME-01")
	site := createSite(t, s, client.ID, "US Store")
	if _, err := s.rules.Create(ctx, client.ID, countryRule(site.ID, 1, "US")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := s.clients.Delete(ctx, client.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := s.clients.Get(ctx, client.ID)
	requireCode(t, err, constants.ErrCodeClientNotFound)

	_, err = s.rules.List(ctx, client.ID)
	requireCode(t, err, constants.ErrCodeClientNotFound)

	err = s.clients.Delete(ctx, client.ID)
	requireCode(t, err, constants.ErrCodeClientNotFound)
}

func TestClientConfigService_DeleteEvictsCachedRules(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	attrs := map[string]string{"country": "US"}

	client := createClient(t, s, "ACME-01")
	site := createSite(t, s, client.ID, "US Store")
	if _, err := s.rules.Create(ctx, client.ID, countryRule(site.ID, 1, "US")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	sel, err := s.rules.SelectSite(ctx, client.ID, attrs)
	if err != nil || !sel.Matched {
		t.Fatalf("Expected a match before delete, got %+v (%v)", sel, err)
	}
	if _, found := s.cache.Get(activeRulesKey(client.ID)); !found {
		t.Fatal("Expected rules to be cached after selection")
	}

	if err := s.clients.Delete(ctx, client.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := s.cache.Get(activeRulesKey(client.ID)); found {
		t.Error("Expected cached rules to be evicted with the client")
	}

	_, err = s.rules.SelectSite(ctx, client.ID, attrs)
	requireCode(t, err, constants.ErrCodeClientNotFound)

	_, err = s.rules.AssignEmployees(ctx, client.ID, nil)
	requireCode(t, err, constants.ErrCodeClientNotFound)
}

func TestClientConfigService_ValidateField(t *testing.T) {
	s := setupServices(t)

	if msg, invalid := s.clients.ValidateField("contactEmail", "bad"); !invalid || msg != "Invalid email format" {
		t.Errorf("Expected invalid email, got %q %v", msg, invalid)
	}
	if _, invalid := s.clients.ValidateField("unknownField", "anything"); invalid {
		t.Error("Expected unknown fields to pass")
	}
}
