package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/infrastructure/auth"
	"github.com/dairyops/backend/internal/interfaces/http/middleware"
)

func policyRouter(jwtService *auth.JWTService, action identity.Action) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.Auth(middleware.AuthConfig{JWTService: jwtService}))
	engine.POST("/guarded", middleware.RequireAction(action), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func TestRequireAction_AllowsAuthorizedRole(t *testing.T) {
	jwtService := newJWTService(15 * time.Minute)
	engine := policyRouter(jwtService, identity.ActionDayOpen)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "bharat", identity.RoleAdmin))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAction_ForbidsInsufficientRole(t *testing.T) {
	jwtService := newJWTService(15 * time.Minute)
	engine := policyRouter(jwtService, identity.ActionUserManage)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, jwtService, "bharat", identity.RoleAdmin))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireAction_WithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/guarded", middleware.RequireAction(identity.ActionReportRead), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
