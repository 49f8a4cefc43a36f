package handlers

import (
	"net/http"
	"time"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/concurrent"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/gin-gonic/gin"
)

// GetDashboardStats aggregates storefront counters for admins
func GetDashboardStats(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admins only"})
		return
	}

	if cache.IsRedisAvailable() {
		if cached, err := cache.GetDashboardStats(); err == nil && cached != nil {
			c.JSON(http.StatusOK, gin.H{"statistics": cached, "cached": true})
			return
		}
	}

	start := time.Now()
	stats := concurrent.CalculateDashboardStats()
	duration := time.Since(start)

	if cache.IsRedisAvailable() {
		cache.SetDashboardStats(stats)
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics":       stats,
		"calculation_time": duration.String(),
	})
}
