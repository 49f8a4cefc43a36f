package handlers

import (
	"errors"
	"net/http"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/ledger"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/Naurose/Project-GameVault/monitoring"
	"github.com/Naurose/Project-GameVault/pricing"
	"github.com/Naurose/Project-GameVault/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CartItemView is the enriched cart line returned to clients. For rent
// lines RentalPrice carries the tiered amount, not the stored base rate.
type CartItemView struct {
	CartID          uint    `json:"cart_id"`
	Quantity        int     `json:"quantity"`
	AcquisitionType string  `json:"acquisition_type"`
	RentDuration    int     `json:"rent_duration"`
	GameID          uint    `json:"game_id"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	RentalPrice     float64 `json:"rental_price"`
	CoverImage      string  `json:"cover_image"`
}

// AddToCart inserts or updates the single cart line for (user, game).
// An existing line is overwritten unconditionally so a user can change
// their mind about the acquisition mode; the ownership check only
// guards the insert path, checkout re-validates everything anyway.
func AddToCart(c *gin.Context) {
	var input models.AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user := c.MustGet("user").(models.User)

	acquisitionType := input.Type
	if acquisitionType == "" {
		acquisitionType = models.AcquisitionBuy
	}
	duration := models.DefaultRentDuration
	if acquisitionType == models.AcquisitionRent && input.RentDuration > 0 {
		duration = input.RentDuration
	}

	var game models.Game
	if err := db.DB.First(&game, input.GameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}

	var item models.CartItem
	err := db.DB.Where("user_id = ? AND game_id = ?", user.ID, input.GameID).First(&item).Error
	if err == nil {
		item.AcquisitionType = acquisitionType
		item.RentDuration = duration
		if err := db.DB.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
			return
		}
		monitoring.CartOperationsTotal.WithLabelValues("update").Inc()
		invalidateCartCache(user.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "item": item})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := ledger.CheckAcquisition(db.DB, user.ID, input.GameID, acquisitionType); err != nil {
		switch {
		case errors.Is(err, ledger.ErrAlreadyOwned):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You already own this game"})
		case errors.Is(err, ledger.ErrActiveRental):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You already have an active rental for this game"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	item = models.CartItem{
		UserID:          user.ID,
		GameID:          input.GameID,
		AcquisitionType: acquisitionType,
		RentDuration:    duration,
		Quantity:        1,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		utils.LogError("failed to insert cart line", map[string]interface{}{
			"user_id": user.ID,
			"game_id": input.GameID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to cart"})
		return
	}

	monitoring.CartOperationsTotal.WithLabelValues("add").Inc()
	invalidateCartCache(user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "item": item})
}

// GetCart returns the user's cart joined with the catalog
func GetCart(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var items []models.CartItem
	if err := db.DB.Preload("Game").Where("user_id = ?", user.ID).Order("id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		view := CartItemView{
			CartID:          item.ID,
			Quantity:        item.Quantity,
			AcquisitionType: item.AcquisitionType,
			RentDuration:    item.RentDuration,
			GameID:          item.Game.ID,
			Title:           item.Game.Title,
			Price:           item.Game.Price,
			RentalPrice:     item.Game.RentalPrice,
			CoverImage:      item.Game.CoverImage,
		}
		if item.AcquisitionType == models.AcquisitionRent {
			view.RentalPrice = pricing.RentalPrice(item.Game.RentalPrice, item.RentDuration)
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}

// RemoveFromCart deletes a cart line by id. Deleting a line that does
// not exist is not an error.
func RemoveFromCart(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	cartID := c.Param("cartId")

	if err := db.DB.Where("id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	monitoring.CartOperationsTotal.WithLabelValues("remove").Inc()
	invalidateCartCache(user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

func invalidateCartCache(userID uint) {
	go func(uid uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateUserCart(uid)
		}
	}(userID)
}
