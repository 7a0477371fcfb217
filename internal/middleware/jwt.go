// Package middleware holds the gin middleware specific to this API.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alkan41/yakit-takip-api/internal/models"
	"github.com/Alkan41/yakit-takip-api/internal/service"
	apperrors "github.com/Alkan41/yakit-takip-api/pkg/errors"
	"github.com/Alkan41/yakit-takip-api/pkg/response"
)

const claimsKey = "auth.claims"

// JWT guards a route group with bearer token authentication.
func JWT(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the authenticated admin's claims, if any.
func ClaimsFrom(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok
}

// ActorFrom returns the display name for audit entries, falling back to the
// username and then to "anonymous".
func ActorFrom(c *gin.Context) string {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return "anonymous"
	}
	if claims.Name != "" {
		return claims.Name
	}
	return claims.Username
}
