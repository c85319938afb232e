package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naplink/internal/infrastructure/auth"
	"naplink/internal/shared/actor"
	"naplink/internal/shared/config"
	"naplink/internal/shared/logger"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, *auth.JWTService) {
	svc := auth.NewJWTService(&config.JWTConfig{Secret: "test-secret", AccessExpMinutes: 15})
	return NewAuthMiddleware(svc, logger.NewLogger()), svc
}

// probe records what the handler saw: the gin actor id and whether the
// request context carried an actor.
func probe(gotActorID *uint, gotAttached *bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		*gotActorID = ActorID(c)
		_, *gotAttached = actor.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	}
}

func performRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid token attaches the actor", func(t *testing.T) {
		mw, svc := newTestAuth(t)
		token, err := svc.Issue(42)
		require.NoError(t, err)

		var gotActorID uint
		var gotAttached bool
		router := gin.New()
		router.GET("/probe", mw.RequireAuth(), probe(&gotActorID, &gotAttached))

		w := performRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(42), gotActorID)
		assert.True(t, gotAttached)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		mw, _ := newTestAuth(t)

		var gotActorID uint
		var gotAttached bool
		router := gin.New()
		router.GET("/probe", mw.RequireAuth(), probe(&gotActorID, &gotAttached))

		w := performRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is unauthorized", func(t *testing.T) {
		mw, svc := newTestAuth(t)
		token, err := svc.Issue(42)
		require.NoError(t, err)

		var gotActorID uint
		var gotAttached bool
		router := gin.New()
		router.GET("/probe", mw.RequireAuth(), probe(&gotActorID, &gotAttached))

		w := performRequest(router, "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		mw, _ := newTestAuth(t)

		router := gin.New()
		var gotActorID uint
		var gotAttached bool
		router.GET("/probe", mw.RequireAuth(), probe(&gotActorID, &gotAttached))

		w := performRequest(router, "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid token attaches the actor", func(t *testing.T) {
		mw, svc := newTestAuth(t)
		token, err := svc.Issue(42)
		require.NoError(t, err)

		var gotActorID uint
		var gotAttached bool
		router := gin.New()
		router.GET("/probe", mw.OptionalAuth(), probe(&gotActorID, &gotAttached))

		w := performRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(42), gotActorID)
		assert.True(t, gotAttached)
	})

	t.Run("missing token passes through unaudited", func(t *testing.T) {
		mw, _ := newTestAuth(t)

		var gotActorID uint
		var gotAttached bool
		router := gin.New()
		router.GET("/probe", mw.OptionalAuth(), probe(&gotActorID, &gotAttached))

		w := performRequest(router, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, gotActorID)
		assert.False(t, gotAttached)
	})

	t.Run("invalid token passes through unaudited", func(t *testing.T) {
		mw, _ := newTestAuth(t)

		var gotActorID uint
		var gotAttached bool
		router := gin.New()
		router.GET("/probe", mw.OptionalAuth(), probe(&gotActorID, &gotAttached))

		w := performRequest(router, "Bearer garbage")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, gotActorID)
		assert.False(t, gotAttached)
	})
}
