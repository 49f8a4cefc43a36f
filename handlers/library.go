package handlers

import (
	"net/http"
	"time"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/gin-gonic/gin"
)

// LibraryEntryView joins a library row with its catalog entry.
type LibraryEntryView struct {
	LibraryID  uint       `json:"library_id"`
	Type       string     `json:"type"`
	ExpiryDate *time.Time `json:"expiry_date"`
	GameID     uint       `json:"game_id"`
	Title      string     `json:"title"`
	CoverImage string     `json:"cover_image"`
	Genre      string     `json:"genre"`
}

// GetLibrary returns the user's currently valid claims: purchases and
// unexpired rentals. Lapsed rentals stay in the table for history but
// are filtered out here.
func GetLibrary(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	if cache.IsRedisAvailable() {
		if cached, err := cache.GetUserLibrary(user.ID); err == nil && cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var entries []models.LibraryEntry
	err := db.DB.Preload("Game").
		Where("user_id = ? AND (type = ? OR expiry_date > ?)", user.ID, models.AcquisitionBuy, time.Now()).
		Order("date_added DESC").
		Find(&entries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	views := make([]LibraryEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, LibraryEntryView{
			LibraryID:  entry.ID,
			Type:       entry.Type,
			ExpiryDate: entry.ExpiryDate,
			GameID:     entry.Game.ID,
			Title:      entry.Game.Title,
			CoverImage: entry.Game.CoverImage,
			Genre:      entry.Game.Genre,
		})
	}

	if cache.IsRedisAvailable() {
		cache.SetUserLibrary(user.ID, views)
	}

	c.JSON(http.StatusOK, views)
}
