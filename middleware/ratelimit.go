package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/gin-gonic/gin"
)

// RateLimit implements per-user rate limiting backed by Redis.
// Unauthenticated requests fall back to a hash of the client IP.
// When Redis is down the middleware fails open.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cache.IsRedisAvailable() {
			c.Next()
			return
		}

		var userID uint
		if user, exists := c.Get("user"); exists {
			if u, ok := user.(models.User); ok {
				userID = u.ID
			}
		}
		if userID == 0 {
			userID = hashIP(c.ClientIP())
		}

		allowed, remaining, err := cache.CheckRateLimit(userID, maxRequests, window)
		if err != nil {
			// Treat a limiter failure like an unavailable limiter.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Window", window.String())

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message": fmt.Sprintf("Too many requests. Retry after %v", window),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// hashIP converts an IP to a numeric key for the limiter
func hashIP(ip string) uint {
	hash := uint(0)
	for _, ch := range ip {
		hash = hash*31 + uint(ch)
	}
	return hash
}
