package handlers

import (
	"net/http"
	"strconv"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/concurrent"
	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/gin-gonic/gin"
)

// GetGames lists the catalog with optional genre / search / max_price
// filters. The unfiltered list is served from cache when possible.
func GetGames(c *gin.Context) {
	genre := c.Query("genre")
	search := c.Query("search")
	maxPrice := c.Query("max_price")

	unfiltered := genre == "" && search == "" && maxPrice == ""
	if unfiltered && cache.IsRedisAvailable() {
		if cached, err := cache.GetGames(); err == nil && cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	query := db.DB.Model(&models.Game{})
	if genre != "" {
		query = query.Where("genre LIKE ?", "%"+genre+"%")
	}
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}
	if maxPrice != "" {
		query = query.Where("price <= ?", maxPrice)
	}

	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if unfiltered && cache.IsRedisAvailable() {
		cache.SetGames(games)
	}

	c.JSON(http.StatusOK, games)
}

func GetGameByID(c *gin.Context) {
	id := c.Param("id")

	if gameID, err := strconv.Atoi(id); err == nil && cache.IsRedisAvailable() {
		if cached, err := cache.GetGame(uint(gameID)); err == nil && cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var game models.Game
	if err := db.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	if cache.IsRedisAvailable() {
		cache.SetGame(game.ID, game)
	}

	c.JSON(http.StatusOK, game)
}

// GetGameDetails returns a game together with its latest reviews,
// owner count and related titles, fetched concurrently.
func GetGameDetails(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid game ID"})
		return
	}

	details, err := concurrent.FetchGameWithDetails(uint(gameID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":          details.Game,
		"reviews":       details.Reviews,
		"related_games": details.RelatedGames,
		"statistics":    details.Statistics,
	})
}

func CreateGame(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admins only"})
		return
	}

	var game models.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := db.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create game"})
		return
	}

	go func() {
		if cache.IsRedisAvailable() {
			cache.InvalidateGamesList()
		}
	}()

	c.JSON(http.StatusOK, game)
}

func UpdateGame(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admins only"})
		return
	}

	id := c.Param("id")
	var game models.Game
	if err := db.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}
	if err := c.ShouldBindJSON(&game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := db.DB.Save(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update game"})
		return
	}

	go func(gID uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateGame(gID)
			cache.InvalidateGamesList()
		}
	}(game.ID)

	c.JSON(http.StatusOK, game)
}

func DeleteGame(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admins only"})
		return
	}

	id := c.Param("id")
	var game models.Game
	if err := db.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	if err := db.DB.Delete(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete game"})
		return
	}

	go func(gID uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateGame(gID)
			cache.InvalidateGamesList()
		}
	}(game.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}
