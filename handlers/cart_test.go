package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Naurose/Project-GameVault/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartDefaultsToBuy(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	game := createTestGame(t, gdb, "Hollow Depths", 20, 5)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID})
	requireStatus(t, w, http.StatusOK)

	var item models.CartItem
	require.NoError(t, gdb.Where("user_id = ? AND game_id = ?", user.ID, game.ID).First(&item).Error)
	assert.Equal(t, models.AcquisitionBuy, item.AcquisitionType)
	assert.Equal(t, 7, item.RentDuration)
	assert.Equal(t, 1, item.Quantity)
}

func TestAddToCartUpsertKeepsSingleLine(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	game := createTestGame(t, gdb, "Hollow Depths", 20, 5)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "buy"})
	requireStatus(t, w, http.StatusOK)

	// Adding the same game again overwrites type and duration in place.
	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "rent", "rentDuration": 30})
	requireStatus(t, w, http.StatusOK)

	var count int64
	gdb.Model(&models.CartItem{}).Where("user_id = ? AND game_id = ?", user.ID, game.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var item models.CartItem
	require.NoError(t, gdb.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, models.AcquisitionRent, item.AcquisitionType)
	assert.Equal(t, 30, item.RentDuration)
}

func TestAddToCartRejectsOwnedGame(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	game := createTestGame(t, gdb, "Hollow Depths", 20, 5)

	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:    user.ID,
		GameID:    game.ID,
		Type:      models.AcquisitionBuy,
		DateAdded: time.Now(),
	}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "rent"})
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "You already own this game", decodeBody(t, w)["message"])

	var count int64
	gdb.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestAddToCartRejectsSecondActiveRental(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	game := createTestGame(t, gdb, "Hollow Depths", 20, 5)

	expiry := time.Now().Add(72 * time.Hour)
	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:     user.ID,
		GameID:     game.ID,
		Type:       models.AcquisitionRent,
		ExpiryDate: &expiry,
		DateAdded:  time.Now(),
	}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "rent"})
	requireStatus(t, w, http.StatusBadRequest)

	// A buy over the active rental is still allowed.
	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "buy"})
	requireStatus(t, w, http.StatusOK)
}

func TestAddToCartUpdatePathSkipsOwnershipCheck(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	game := createTestGame(t, gdb, "Hollow Depths", 20, 5)

	// Line goes in as buy while the library is empty.
	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "buy"})
	requireStatus(t, w, http.StatusOK)

	// An active rental appears afterwards.
	expiry := time.Now().Add(72 * time.Hour)
	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:     user.ID,
		GameID:     game.ID,
		Type:       models.AcquisitionRent,
		ExpiryDate: &expiry,
		DateAdded:  time.Now(),
	}).Error)

	// Switching the existing line to rent succeeds; checkout is the
	// authoritative gate for this conflict.
	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "rent", "rentDuration": 14})
	requireStatus(t, w, http.StatusOK)

	var item models.CartItem
	require.NoError(t, gdb.Where("user_id = ?", user.ID).First(&item).Error)
	assert.Equal(t, models.AcquisitionRent, item.AcquisitionType)
}

func TestAddToCartUnknownGame(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	_, token := createTestUser(t, gdb, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": 9999})
	requireStatus(t, w, http.StatusNotFound)
}

func TestGetCartAppliesTieredRentalPrice(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	_, token := createTestUser(t, gdb, "alice")
	bought := createTestGame(t, gdb, "Hollow Depths", 20, 5)
	rented := createTestGame(t, gdb, "Star Courier", 30, 5)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": bought.ID, "type": "buy"})
	requireStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": rented.ID, "type": "rent", "rentDuration": 14})
	requireStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/cart", token, nil)
	requireStatus(t, w, http.StatusOK)

	var views []CartItemView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 2)

	byTitle := map[string]CartItemView{}
	for _, v := range views {
		byTitle[v.Title] = v
	}

	// Buy line keeps the stored base rate on display.
	assert.Equal(t, 5.0, byTitle["Hollow Depths"].RentalPrice)
	// Rent line shows the tiered amount: 5 * 1.8.
	assert.Equal(t, 9.0, byTitle["Star Courier"].RentalPrice)

	// The stored catalog row is untouched.
	var stored models.Game
	require.NoError(t, gdb.First(&stored, rented.ID).Error)
	assert.Equal(t, 5.0, stored.RentalPrice)
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	_, token := createTestUser(t, gdb, "alice")
	game := createTestGame(t, gdb, "Hollow Depths", 20, 5)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID})
	requireStatus(t, w, http.StatusOK)

	var item models.CartItem
	require.NoError(t, gdb.First(&item).Error)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", item.ID), token, nil)
	requireStatus(t, w, http.StatusOK)

	// Deleting the same line again, and a line that never existed,
	// both succeed.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", item.ID), token, nil)
	requireStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodDelete, "/api/cart/424242", token, nil)
	requireStatus(t, w, http.StatusOK)
}

func TestCartRequiresAuth(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/api/cart", "", nil)
	requireStatus(t, w, http.StatusUnauthorized)
}
