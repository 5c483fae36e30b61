package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wecelebrate/console/internal/constants"
)

const tokenIssuer = "wecelebrate-console"

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenClaims are the JWT claims of a console access token.
type TokenClaims struct {
	Role constants.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssuedToken is a freshly signed token and its identifiers.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService signs and verifies HS256 access tokens. Revoked token IDs are
// kept in the cache until the token would have expired anyway.
type TokenService struct {
	secretKey []byte
	cache     CacheInterface
	now       func() time.Time
}

func NewTokenService(secretKey []byte, cache CacheInterface) *TokenService {
	return &TokenService{secretKey: secretKey, cache: cache, now: time.Now}
}

// Issue signs a token for subject with the given role.
func (s *TokenService) Issue(subject string, role constants.Role, ttl time.Duration) (*IssuedToken, error) {
	if subject == "" {
		return nil, errors.New("subject is required")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		return nil, errors.New("ttl must be positive")
	}

	now := s.now()
	tokenID := uuid.NewString()
	expiresAt := now.Add(ttl)

	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{Token: tokenString, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

// Verify parses tokenString and rejects expired, foreign or revoked tokens.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.ID == "" || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	if _, revoked := s.cache.Get(revokedKey(claims.ID)); revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke blocks tokenID until expiresAt.
func (s *TokenService) Revoke(tokenID string, expiresAt time.Time) {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	s.cache.Set(revokedKey(tokenID), "1", ttl)
}

func revokedKey(tokenID string) string {
	return string(constants.CachePrefixRevokedToken) + tokenID
}
