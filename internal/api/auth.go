package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"wecelebrate/console/internal/auth"
	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/logging"
	"wecelebrate/console/internal/models/dtos"
)

// IssueTokenHandler handles POST /api/v1/auth/token
//
// Only API key holders can mint tokens. The token carries the key's role and
// its lifetime is capped at maxTTL.
func IssueTokenHandler(tokens TokenIssuer, maxTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil || claims.Source() != constants.RequestSourceAPIKey {
			common.RespondError(w, initTime, errors.New("Tokens can only be issued to API key holders"), "", http.StatusForbidden)
			return
		}

		var req dtos.IssueTokenRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		subject := req.Subject
		if subject == "" {
			subject = claims.Subject()
		}

		ttl := maxTTL
		if req.TTL != "" {
			parsed, err := time.ParseDuration(req.TTL)
			if err != nil || parsed <= 0 {
				common.RespondError(w, initTime, fmt.Errorf("invalid ttl %q", req.TTL), "", http.StatusBadRequest)
				return
			}
			ttl = min(parsed, maxTTL)
		}

		issued, err := tokens.Issue(subject, claims.Role(), ttl)
		if err != nil {
			common.RespondError(w, initTime, err, "", http.StatusBadRequest)
			return
		}

		logging.Info("Access token issued", "subject", subject, "role", claims.Role(), "token_id", issued.TokenID)
		common.RespondSuccess(w, initTime, "Token issued", dtos.TokenResponse{
			Token:     issued.Token,
			TokenID:   issued.TokenID,
			ExpiresAt: issued.ExpiresAt,
		}, http.StatusCreated)
	}
}

// RevokeTokenHandler handles POST /api/v1/auth/revoke
//
// Revokes the bearer token used for the request.
func RevokeTokenHandler(tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims, ok := auth.GetUserClaims(r.Context()).(*auth.JWTClaims)
		if !ok {
			common.RespondError(w, initTime, errors.New("Only bearer tokens can be revoked"), "", http.StatusBadRequest)
			return
		}

		tokens.Revoke(claims.TokenID, claims.ExpiresAt)
		logging.Info("Access token revoked", "subject", claims.Subject(), "token_id", claims.TokenID)
		common.RespondSuccess(w, initTime, "Token revoked", nil)
	}
}
