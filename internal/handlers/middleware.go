package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth returns middleware that guards admin routes with a shared
// password supplied in the X-Admin-Password header.
func AdminAuth(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access not configured"})
			c.Abort()
			return
		}

		supplied := c.GetHeader("X-Admin-Password")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin password"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CORS returns middleware that allows cross-origin requests from the
// web player.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Password")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
