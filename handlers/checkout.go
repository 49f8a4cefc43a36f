package handlers

import (
	"errors"
	"net/http"
	"time"

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

var ErrEmptyCart = errors.New("cart is empty")

// ConflictError names the game that blocked a checkout.
type ConflictError struct {
	GameTitle string
	Cause     error
}

func (e *ConflictError) Error() string {
	if errors.Is(e.Cause, ledger.ErrAlreadyOwned) {
		return "You already own " + e.GameTitle
	}
	return "You already have an active rental for " + e.GameTitle
}

func (e *ConflictError) Unwrap() error { return e.Cause }

// ProcessCheckout converts a user's cart into library entries and one
// purchase record. Everything runs in a single transaction: the
// ownership re-check for every line happens against the open
// transaction right before its library insert, so a concurrent
// checkout for the same game commits first or not at all. Any conflict
// rolls the whole checkout back, including other lines' inserts.
func ProcessCheckout(gdb *gorm.DB, userID uint) (float64, error) {
	var total float64

	err := gdb.Transaction(func(tx *gorm.DB) error {
		total = 0

		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		for _, item := range items {
			var game models.Game
			if err := tx.First(&game, item.GameID).Error; err != nil {
				return err
			}

			price := game.Price
			var expiry *time.Time
			if item.AcquisitionType == models.AcquisitionRent {
				price = pricing.RentalPrice(game.RentalPrice, item.RentDuration)
				t := time.Now().AddDate(0, 0, item.RentDuration)
				expiry = &t
			}

			if err := ledger.CheckAcquisition(tx, userID, item.GameID, item.AcquisitionType); err != nil {
				if errors.Is(err, ledger.ErrAlreadyOwned) || errors.Is(err, ledger.ErrActiveRental) {
					return &ConflictError{GameTitle: game.Title, Cause: err}
				}
				return err
			}

			entry := models.LibraryEntry{
				UserID:     userID,
				GameID:     item.GameID,
				Type:       item.AcquisitionType,
				ExpiryDate: expiry,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}

			total += price
		}

		if err := tx.Create(&models.Purchase{UserID: userID, TotalAmount: total}).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Checkout drains the authenticated user's cart
func Checkout(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	total, err := ProcessCheckout(db.DB, user.ID)
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.Is(err, ErrEmptyCart):
			monitoring.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
		case errors.As(err, &conflict):
			monitoring.CheckoutsTotal.WithLabelValues("conflict").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": conflict.Error()})
		default:
			monitoring.CheckoutsTotal.WithLabelValues("error").Inc()
			utils.LogError("checkout failed", map[string]interface{}{
				"user_id": user.ID,
				"error":   err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Checkout failed"})
		}
		return
	}

	monitoring.CheckoutsTotal.WithLabelValues("success").Inc()
	monitoring.CheckoutAmount.Observe(total)

	go func(uid uint) {
		if cache.IsRedisAvailable() {
			cache.InvalidateUserCart(uid)
			cache.InvalidateUserLibrary(uid)
		}
	}(user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Purchase successful", "total": total})
}
