package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Naurose/Project-GameVault/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutBuyAndRentRoundTrip(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	gameA := createTestGame(t, gdb, "Hollow Depths", 20, 4)
	gameB := createTestGame(t, gdb, "Star Courier", 45, 5)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": gameA.ID, "type": "buy"})
	requireStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": gameB.ID, "type": "rent", "rentDuration": 14})
	requireStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/orders/checkout", token, nil)
	requireStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	assert.Equal(t, "Purchase successful", body["message"])
	// 20 (buy) + 5*1.8 (14-day rent) = 29.00
	assert.InDelta(t, 29.0, body["total"].(float64), 0.001)

	// Two library rows: buy with no expiry, rent expiring ~14 days out.
	var entries []models.LibraryEntry
	require.NoError(t, gdb.Where("user_id = ?", user.ID).Order("game_id asc").Find(&entries).Error)
	require.Len(t, entries, 2)

	assert.Equal(t, models.AcquisitionBuy, entries[0].Type)
	assert.Nil(t, entries[0].ExpiryDate)

	assert.Equal(t, models.AcquisitionRent, entries[1].Type)
	require.NotNil(t, entries[1].ExpiryDate)
	expected := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, expected, *entries[1].ExpiryDate, time.Minute)

	// One purchase row carrying the full total.
	var purchases []models.Purchase
	require.NoError(t, gdb.Where("user_id = ?", user.ID).Find(&purchases).Error)
	require.Len(t, purchases, 1)
	assert.InDelta(t, 29.0, purchases[0].TotalAmount, 0.001)

	// Cart drained.
	var count int64
	gdb.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutEmptyCart(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/orders/checkout", token, nil)
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Cart is empty", decodeBody(t, w)["message"])

	var count int64
	gdb.Model(&models.Purchase{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutConflictRollsBackEverything(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	gameA := createTestGame(t, gdb, "Hollow Depths", 20, 4)
	gameC := createTestGame(t, gdb, "Night Harvest", 15, 3)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": gameA.ID, "type": "buy"})
	requireStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": gameC.ID, "type": "rent"})
	requireStatus(t, w, http.StatusOK)

	// An active rental for C lands after the cart was built, e.g. a
	// checkout from another session.
	expiry := time.Now().Add(48 * time.Hour)
	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:     user.ID,
		GameID:     gameC.ID,
		Type:       models.AcquisitionRent,
		ExpiryDate: &expiry,
		DateAdded:  time.Now(),
	}).Error)

	w = doJSON(t, r, http.MethodPost, "/api/orders/checkout", token, nil)
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "You already have an active rental for Night Harvest", decodeBody(t, w)["message"])

	// Nothing from this checkout persists: game A's insert rolled back
	// with the rest, no purchase row, cart untouched.
	var libCount int64
	gdb.Model(&models.LibraryEntry{}).Where("user_id = ? AND game_id = ?", user.ID, gameA.ID).Count(&libCount)
	assert.Zero(t, libCount)

	var purchaseCount int64
	gdb.Model(&models.Purchase{}).Where("user_id = ?", user.ID).Count(&purchaseCount)
	assert.Zero(t, purchaseCount)

	var cartCount int64
	gdb.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Equal(t, int64(2), cartCount)
}

func TestCheckoutOwnedGameConflictNamesGame(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	gameD := createTestGame(t, gdb, "Iron Bastion", 25, 6)

	// Line enters the cart, then ownership materializes before checkout.
	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": gameD.ID, "type": "buy"})
	requireStatus(t, w, http.StatusOK)
	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:    user.ID,
		GameID:    gameD.ID,
		Type:      models.AcquisitionBuy,
		DateAdded: time.Now(),
	}).Error)

	w = doJSON(t, r, http.MethodPost, "/api/orders/checkout", token, nil)
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "You already own Iron Bastion", decodeBody(t, w)["message"])
}

func TestCheckoutExpiredRentalCanBeRenewed(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	game := createTestGame(t, gdb, "Hollow Depths", 20, 5)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:     user.ID,
		GameID:     game.ID,
		Type:       models.AcquisitionRent,
		ExpiryDate: &expired,
		DateAdded:  time.Now().AddDate(0, 0, -8),
	}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"gameId": game.ID, "type": "rent", "rentDuration": 7})
	requireStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/orders/checkout", token, nil)
	requireStatus(t, w, http.StatusOK)
	assert.InDelta(t, 5.0, decodeBody(t, w)["total"].(float64), 0.001)

	// History is append-only: the lapsed rental row stays alongside the
	// new one.
	var entries []models.LibraryEntry
	require.NoError(t, gdb.Where("user_id = ? AND game_id = ?", user.ID, game.ID).Find(&entries).Error)
	assert.Len(t, entries, 2)
}

func TestLibraryShowsOnlyActiveClaims(t *testing.T) {
	gdb := setupTestDB(t)
	r := setupRouter()
	user, token := createTestUser(t, gdb, "alice")
	owned := createTestGame(t, gdb, "Hollow Depths", 20, 5)
	lapsed := createTestGame(t, gdb, "Star Courier", 30, 5)

	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:    user.ID,
		GameID:    owned.ID,
		Type:      models.AcquisitionBuy,
		DateAdded: time.Now(),
	}).Error)
	expired := time.Now().Add(-time.Hour)
	require.NoError(t, gdb.Create(&models.LibraryEntry{
		UserID:     user.ID,
		GameID:     lapsed.ID,
		Type:       models.AcquisitionRent,
		ExpiryDate: &expired,
		DateAdded:  time.Now().AddDate(0, 0, -8),
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/user/library", token, nil)
	requireStatus(t, w, http.StatusOK)

	var views []LibraryEntryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Hollow Depths", views[0].Title)
}
