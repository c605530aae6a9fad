package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lgu-benefits-api/internal/models"
	appErrors "github.com/noah-isme/lgu-benefits-api/pkg/errors"
	"github.com/noah-isme/lgu-benefits-api/pkg/logger"
	"github.com/noah-isme/lgu-benefits-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid access token carrying a
// recognised role.
func JWT(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		role, ok := models.ParseRole(string(claims.Role))
		if !ok {
			response.Error(c, appErrors.ErrInvalidRole)
			c.Abort()
			return
		}
		claims.Role = role

		c.Set(ContextUserKey, claims)
		c.Set(logger.ContextActorKey, claims.UserID)
		c.Next()
	}
}
