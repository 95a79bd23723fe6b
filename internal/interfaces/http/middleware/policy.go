package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/interfaces/http/dto"
)

// RequireAction authorizes the authenticated principal for one action. Must
// run after Auth.
func RequireAction(action identity.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !identity.Authorize(principal, action) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Not authorized to perform this action"))
			return
		}
		c.Next()
	}
}
