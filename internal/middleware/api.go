package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/auth"
	"github.com/kavya410004/cultivating-connections/internal/services"
)

// APIAuth gates the JSON API on a bearer token. Unlike the browser routes,
// API clients get proper status codes, not redirects.
type APIAuth struct {
	tokenService *services.TokenService
}

func NewAPIAuth(tokenService *services.TokenService) *APIAuth {
	return &APIAuth{tokenService: tokenService}
}

func (m *APIAuth) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.tokenService.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(principalKey, auth.Principal{ID: claims.OwnerID, Role: claims.Role})
		c.Next()
	}
}
