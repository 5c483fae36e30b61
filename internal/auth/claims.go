package auth

import (
	"time"

	"wecelebrate/console/internal/constants"
)

// UserClaims is what the auth middleware stores in the request context,
// whichever credential the caller presented.
type UserClaims interface {
	Subject() string
	Role() constants.Role
	Source() constants.RequestSource
	IsAdmin() bool
}

type JWTClaims struct {
	SubjectValue string
	RoleValue    constants.Role
	TokenID      string
	ExpiresAt    time.Time
}

func (c *JWTClaims) Subject() string                 { return c.SubjectValue }
func (c *JWTClaims) Role() constants.Role            { return c.RoleValue }
func (c *JWTClaims) Source() constants.RequestSource { return constants.RequestSourceJWT }
func (c *JWTClaims) IsAdmin() bool                   { return c.RoleValue == constants.RoleAdmin }

type APIKeyClaims struct {
	KeyID     string
	KeyName   string
	RoleValue constants.Role
}

func (c *APIKeyClaims) Subject() string                 { return c.KeyName }
func (c *APIKeyClaims) Role() constants.Role            { return c.RoleValue }
func (c *APIKeyClaims) Source() constants.RequestSource { return constants.RequestSourceAPIKey }
func (c *APIKeyClaims) IsAdmin() bool                   { return c.RoleValue == constants.RoleAdmin }
