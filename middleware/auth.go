package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DemoUser simulates a logged-in user for the demo. A real deployment would
// resolve the user from a session or token instead.
func DemoUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", "demo_user")
		c.Set("role", "accountant")
		c.Next()
	}
}

// RequireRole checks if the user has one of the given roles. Admins always
// pass.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context"})
			c.Abort()
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid role type in context"})
			c.Abort()
			return
		}

		hasRole := roleStr == "admin"
		for _, role := range roles {
			if roleStr == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
