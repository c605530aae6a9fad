package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
	"github.com/noah-isme/lgu-benefits-api/pkg/response"
)

// RequireRoles admits only callers whose role is listed. Department scoping
// is checked later by the services.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		claims, ok := value.(*models.JWTClaims)
		if !exists || !ok || claims == nil {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrNotAuthorized, "Your role cannot perform this action"))
			c.Abort()
			return
		}
		c.Next()
	}
}
