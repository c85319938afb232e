// Package auth implements the authentication boundary. The core consumes
// only the opaque actor id carried by verified tokens; issuing and
// verifying them lives here, outside the allocation core.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"naplink/internal/shared/config"
)

// Claims are the JWT claims attached to operator tokens.
type Claims struct {
	ActorID uint `json:"actor_id"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 access tokens.
type JWTService struct {
	secret    []byte
	accessExp time.Duration
}

// NewJWTService creates a JWTService from config.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	exp := time.Duration(cfg.AccessExpMinutes) * time.Minute
	if exp <= 0 {
		exp = 15 * time.Minute
	}
	return &JWTService{
		secret:    []byte(cfg.Secret),
		accessExp: exp,
	}
}

// Issue creates a signed access token for the given actor.
func (s *JWTService) Issue(actorID uint) (string, error) {
	if actorID == 0 {
		return "", fmt.Errorf("actor ID is required")
	}

	now := time.Now().UTC()
	claims := Claims{
		ActorID: actorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.ActorID == 0 {
		return nil, fmt.Errorf("token carries no actor")
	}

	return claims, nil
}
