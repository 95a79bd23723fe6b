package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/infrastructure/auth"
	"github.com/dairyops/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	PrincipalKey  = "auth_principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the bearer-token middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; when set, revoked tokens are rejected
	Blacklist auth.TokenBlacklist
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultSkipPaths lists the endpoints that must work without a token
func DefaultSkipPaths() []string {
	return []string{
		"/health",
		"/api/v1/auth/login",
		"/api/v1/auth/refresh",
	}
}

// Auth creates the bearer-token authentication middleware. On success the
// authenticated identity.Principal is stored in the gin context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("token validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			}
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// fail open: a blacklist outage must not take billing down
				if cfg.Logger != nil {
					cfg.Logger.Error("failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err),
					)
				}
			} else if blacklisted {
				abortUnauthorized(c, "TOKEN_REVOKED", "Token has been revoked")
				return
			}
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
			return
		}

		c.Set(PrincipalKey, identity.Principal{
			UserID:   userID,
			Username: claims.Username,
			Role:     identity.Role(claims.Role),
		})
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal stored by Auth
func GetPrincipal(c *gin.Context) (identity.Principal, bool) {
	value, ok := c.Get(PrincipalKey)
	if !ok {
		return identity.Principal{}, false
	}
	principal, ok := value.(identity.Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
