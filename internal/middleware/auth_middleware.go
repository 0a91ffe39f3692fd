package middleware

import (
	"log"
	"strings"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/01moynul/bales-storefront/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token issued by the hosted auth platform
// and stores its subject under "userID".
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read the Authorization header
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			deny(c, "Authorization header is required")
			return
		}

		// 2. Validate the token
		userID, err := auth.ValidateToken(secret, strings.TrimSpace(token))
		if err != nil {
			log.Printf("WARNING: rejected bearer token: %v", err)
			deny(c, "Invalid or expired token")
			return
		}

		// 3. Success! Pass the user id along
		c.Set("userID", userID)
		c.Next()
	}
}

// deny aborts with 403 {success:false,error}.
func deny(c *gin.Context, message string) {
	err := apperr.Forbidden(message)
	c.AbortWithStatusJSON(apperr.Status(err), gin.H{"success": false, "error": apperr.PublicMessage(err)})
}
