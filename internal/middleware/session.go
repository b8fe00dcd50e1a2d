package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/auth"
)

const principalKey = "principal"

// RequireRole gates a route on an authenticated session with the given role.
// Failing either check redirects to the login page; gated pages never answer
// with a 4xx.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.FromSession(c)
		if !ok || principal.Role != role {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireSession gates a route on any authenticated session, either role.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.FromSession(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the request's authenticated principal. It checks the
// handler context first (set by the gates) and falls back to the session for
// public routes that personalize when a session exists.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	if value, exists := c.Get(principalKey); exists {
		if principal, ok := value.(auth.Principal); ok {
			return principal, true
		}
	}
	return auth.FromSession(c)
}
