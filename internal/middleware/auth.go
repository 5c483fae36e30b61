package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"wecelebrate/console/internal/auth"
	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/models/entities"
)

// APIKeyLookup resolves an X-API-Key value. Unknown keys return nil, nil.
type APIKeyLookup interface {
	GetStatus(ctx context.Context, key string) (*entities.ApiKey, error)
}

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(tokenString string) (*common.TokenClaims, error)
}

var (
	errMissingCredentials = errors.New("Unauthorized. Missing bearer token or API key")
	errInvalidToken       = errors.New("Unauthorized. Invalid or expired token")
	errInvalidAPIKey      = errors.New("Unauthorized. Invalid API Key")
	errInactiveAPIKey     = errors.New("Unauthorized. Inactive API Key")
)

// AuthMiddleware accepts either "Authorization: Bearer <jwt>" or an
// X-API-Key header and stores the resulting claims in the request context.
func AuthMiddleware(tokens TokenVerifier, keys APIKeyLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenClaims, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
				if err != nil {
					logging.Debug("Rejected bearer token", "error", err)
					common.RespondError(w, initTime, errInvalidToken, "", http.StatusUnauthorized)
					return
				}
				claims = &auth.JWTClaims{
					SubjectValue: tokenClaims.Subject,
					RoleValue:    tokenClaims.Role,
					TokenID:      tokenClaims.ID,
					ExpiresAt:    tokenClaims.ExpiresAt.Time,
				}

			case apiKey != "":
				keyRes, err := keys.GetStatus(r.Context(), apiKey)
				if err != nil {
					logging.Error("API key lookup failed", "error", err)
					common.RespondError(w, initTime, errInvalidAPIKey, "", http.StatusUnauthorized)
					return
				}
				if keyRes == nil {
					common.RespondError(w, initTime, errInvalidAPIKey, "", http.StatusUnauthorized)
					return
				}
				if !keyRes.Status {
					common.RespondError(w, initTime, errInactiveAPIKey, "", http.StatusUnauthorized)
					return
				}
				claims = &auth.APIKeyClaims{
					KeyID:     keyRes.ApiKey,
					KeyName:   keyRes.Name,
					RoleValue: keyRes.Role,
				}

			default:
				common.RespondError(w, initTime, errMissingCredentials, "", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
