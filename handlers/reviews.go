package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/Naurose/Project-GameVault/utils"
	"github.com/gin-gonic/gin"
)

// CreateReview with cache invalidation
func CreateReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := utils.ValidateStruct(review); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user := c.MustGet("user").(models.User)
	review.UserID = user.ID

	if err := db.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create review"})
		return
	}

	go func(gID uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateReviews(gID)
			utils.Log.Info(fmt.Sprintf("Reviews cache invalidated for game %d", gID))
		}
	}(review.GameID)

	c.JSON(http.StatusOK, gin.H{"message": "Review submitted", "review": review})
}

// GetReviews returns reviews for a game, newest first, Redis-cached
func GetReviews(c *gin.Context) {
	gameID := c.Query("gameId")

	if gameID != "" {
		gID, err := strconv.Atoi(gameID)
		if err == nil && cache.IsRedisAvailable() {
			if cached, err := cache.GetReviews(uint(gID)); err == nil && cached != nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	var reviews []models.Review
	query := db.DB.Preload("User").Order("review_date DESC")
	if gameID != "" {
		query = query.Where("game_id = ?", gameID)
	}
	if err := query.Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch reviews"})
		return
	}

	if gameID != "" {
		if gID, err := strconv.Atoi(gameID); err == nil && cache.IsRedisAvailable() {
			cache.SetReviews(uint(gID), reviews)
		}
	}

	c.JSON(http.StatusOK, reviews)
}

// DeleteReview - author or admin only
func DeleteReview(c *gin.Context) {
	id := c.Param("id")
	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		return
	}

	user := c.MustGet("user").(models.User)
	if user.Role != "admin" && user.ID != review.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only admins or the review author can delete"})
		return
	}

	if err := db.DB.Delete(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete review"})
		return
	}

	go func(gID uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateReviews(gID)
		}
	}(review.GameID)

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
