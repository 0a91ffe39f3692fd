package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoleAdmin is the role required by every back-office route.
const RoleAdmin = "admin"

// RoleChecker answers whether a user holds a role in the user_roles table.
type RoleChecker interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// AdminMiddleware must run after AuthMiddleware. It rejects callers without
// the admin role.
func AdminMiddleware(roles RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get userID from AuthMiddleware
		userID := c.GetString("userID")
		if userID == "" {
			deny(c, "Authentication required")
			return
		}

		// 2. Look up the role
		ok, err := roles.HasRole(c.Request.Context(), userID, RoleAdmin)
		if err != nil {
			log.Printf("ERROR: checking admin role for %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error checking role"})
			return
		}

		// 3. Check permission
		if !ok {
			deny(c, "Access denied: admin role required")
			return
		}

		c.Set("userRole", RoleAdmin)
		c.Next()
	}
}
