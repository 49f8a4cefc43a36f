package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB points the global handle at a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// In-memory sqlite lives per connection; keep the pool at one.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.CartItem{},
		&models.LibraryEntry{},
		&models.Purchase{},
		&models.Review{},
	))

	db.DB = gdb
	return gdb
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/api").Use(AuthMiddleware())
	{
		protected.POST("/cart", AddToCart)
		protected.GET("/cart", GetCart)
		protected.DELETE("/cart/:cartId", RemoveFromCart)
		protected.POST("/orders/checkout", Checkout)
		protected.GET("/user/library", GetLibrary)
	}
	return r
}

func createTestUser(t *testing.T, gdb *gorm.DB, username string) (models.User, string) {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     "user",
	}
	require.NoError(t, gdb.Create(&user).Error)

	token, err := GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func createTestGame(t *testing.T, gdb *gorm.DB, title string, price, rentalPrice float64) models.Game {
	t.Helper()

	game := models.Game{
		Title:       title,
		Genre:       "action",
		Price:       price,
		RentalPrice: rentalPrice,
	}
	require.NoError(t, gdb.Create(&game).Error)
	return game
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
