package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"naplink/internal/infrastructure/auth"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/constants"
	"naplink/internal/shared/logger"
	"naplink/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid bearer token. The verified
// actor id goes into the gin context and into the request context so that
// downstream units of work attribute their mutations.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		m.attach(c, claims.ActorID)
		c.Next()
	}
}

// OptionalAuth attaches the actor when a valid token is present and lets the
// request through otherwise. Operations without an actor run unaudited.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Debugw("ignoring invalid token on optional route", "error", err)
			c.Next()
			return
		}

		m.attach(c, claims.ActorID)
		c.Next()
	}
}

func (m *AuthMiddleware) attach(c *gin.Context, actorID uint) {
	c.Set(constants.ContextKeyActorID, actorID)
	ctx := actor.WithActor(c.Request.Context(), actor.Actor{ID: actorID})
	c.Request = c.Request.WithContext(ctx)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// ActorID returns the authenticated actor id from the gin context, zero when
// the request is unauthenticated.
func ActorID(c *gin.Context) uint {
	return c.GetUint(constants.ContextKeyActorID)
}
