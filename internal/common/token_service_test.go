package common

import (
	"errors"
	"testing"
	"time"

	"wecelebrate/console/internal/constants"
)

func newTestTokenService() *TokenService {
	return NewTokenService([]byte("test-secret"), NewCacheService(time.Minute, time.Minute))
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService()

	issued, err := svc.Issue("ops@wecelebrate.com", constants.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := svc.Verify(issued.Token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if claims.Subject != "ops@wecelebrate.com" {
		t.Errorf("Expected subject ops@wecelebrate.com, got %s", claims.Subject)
	}
	if claims.Role != constants.RoleAdmin {
		t.Errorf("Expected admin role, got %s", claims.Role)
	}
	if claims.ID != issued.TokenID {
		t.Errorf("Expected token ID %s, got %s", issued.TokenID, claims.ID)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestTokenService()
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	issued, err := svc.Issue("ops", constants.RoleViewer, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(issued.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issued, err := newTestTokenService().Issue("ops", constants.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	other := NewTokenService([]byte("other-secret"), NewCacheService(time.Minute, time.Minute))
	if _, err := other.Verify(issued.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Revoke(t *testing.T) {
	svc := newTestTokenService()

	issued, err := svc.Issue("ops", constants.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	svc.Revoke(issued.TokenID, issued.ExpiresAt)

	if _, err := svc.Verify(issued.Token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Expected ErrTokenRevoked, got %v", err)
	}
}

func TestTokenService_IssueRejectsBadInput(t *testing.T) {
	svc := newTestTokenService()

	if _, err := svc.Issue("", constants.RoleAdmin, time.Hour); err == nil {
		t.Error("Expected error for empty subject")
	}
	if _, err := svc.Issue("ops", constants.Role("root"), time.Hour); err == nil {
		t.Error("Expected error for unknown role")
	}
	if _, err := svc.Issue("ops", constants.RoleAdmin, 0); err == nil {
		t.Error("Expected error for zero ttl")
	}
}
