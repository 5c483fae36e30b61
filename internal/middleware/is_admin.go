package middleware

import (
	"errors"
	"net/http"
	"time"

	"wecelebrate/console/internal/auth"
	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/constants"
)

// IsAdminMiddleware lets only admin callers through. It must run after
// AuthMiddleware.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, time.Now(), errors.New(constants.GetErrorMessage(constants.ErrCodeUnauthorized)), "", http.StatusUnauthorized)
				return
			}

			if !claims.IsAdmin() {
				common.RespondError(w, time.Now(), errors.New("Forbidden. Admin role required"), "", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
