package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/infrastructure/auth"
	"github.com/dairyops/backend/internal/infrastructure/config"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
)

func newJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-access-tokens",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "dairyops-test",
	})
}

func authRouter(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.Auth(middleware.AuthConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		SkipPaths:  []string{"/health"},
	}))
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/whoami", func(c *gin.Context) {
		principal, ok := middleware.GetPrincipal(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no principal")
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": principal.Username, "role": principal.Role.String()})
	})
	return engine
}

func accessToken(t *testing.T, jwtService *auth.JWTService, username string, role identity.Role) string {
	t.Helper()

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: username,
		Role:     role.String(),
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAuth_SkipPathNeedsNoToken(t *testing.T) {
	engine := authRouter(newJWTService(15*time.Minute), nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	engine := authRouter(newJWTService(15*time.Minute), nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuth_MalformedHeader(t *testing.T) {
	engine := authRouter(newJWTService(15*time.Minute), nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_GarbageToken(t *testing.T) {
	engine := authRouter(newJWTService(15*time.Minute), nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwtService := newJWTService(-time.Minute)
	engine := authRouter(jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "counter1", identity.RoleVendor))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestAuth_RevokedToken(t *testing.T) {
	jwtService := newJWTService(15 * time.Minute)
	blacklist := auth.NewInMemoryTokenBlacklist()
	engine := authRouter(jwtService, blacklist)

	token := accessToken(t, jwtService, "counter1", identity.RoleVendor)
	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, 15*time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestAuth_ValidTokenSetsPrincipal(t *testing.T) {
	jwtService := newJWTService(15 * time.Minute)
	engine := authRouter(jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "counter1", identity.RoleVendor))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "counter1")
	assert.Contains(t, w.Body.String(), "vendor")
}
