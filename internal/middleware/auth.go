package middleware

import (
	"net/http"
	"time"

	"events-api/internal/response"

	"github.com/gin-gonic/gin"
)

// StaffAuthMiddleware guards the ticket check-in endpoints with the shared
// staff API key. The key is injected at route setup, not read from a global.
func StaffAuthMiddleware(staffAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if staffAPIKey == "" {
			c.JSON(http.StatusServiceUnavailable, response.Error("Staff API key is not configured"))
			c.Abort()
			return
		}

		// Get staff key from header, falling back to query parameter for
		// scanner clients that cannot set headers
		key := c.GetHeader("X-Staff-Key")
		if key == "" {
			key = c.Query("staff_key")
		}

		if key == "" {
			c.JSON(http.StatusUnauthorized, response.Error("Missing staff API key"))
			c.Abort()
			return
		}

		if key != staffAPIKey {
			c.JSON(http.StatusUnauthorized, response.Error("Invalid staff API key"))
			c.Abort()
			return
		}

		c.Set("request_time", time.Now())
		c.Next()
	}
}
