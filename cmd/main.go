package main

import (
	"crypto/tls"
	"net/http"
	"os"
	"time"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/handlers"
	"github.com/Naurose/Project-GameVault/middleware"
	"github.com/Naurose/Project-GameVault/monitoring"
	"github.com/Naurose/Project-GameVault/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.Log.Warn("No .env file found")
	}

	db.InitDB()

	if err := cache.InitRedis(); err != nil {
		utils.Log.Warn("Redis unavailable, caching disabled: ", err)
	} else {
		defer cache.CloseRedis()
	}

	monitoring.InitMetrics()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RemovePoweredBy())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", "./uploads")
	r.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	auth := r.Group("/api/auth").Use(middleware.RateLimit(20, time.Minute))
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}
	r.GET("/api/games", handlers.GetGames)
	r.GET("/api/games/:id", handlers.GetGameByID)
	r.GET("/api/games/:id/details", handlers.GetGameDetails)
	r.GET("/api/reviews", handlers.GetReviews)
	r.GET("/api/news", handlers.GetNews)
	r.GET("/api/news/:id", handlers.GetNewsArticle)

	protected := r.Group("/api").Use(handlers.AuthMiddleware())
	{
		protected.POST("/cart", handlers.AddToCart)
		protected.GET("/cart", handlers.GetCart)
		protected.DELETE("/cart/:cartId", handlers.RemoveFromCart)
		protected.POST("/orders/checkout", handlers.Checkout)
		protected.GET("/user/library", handlers.GetLibrary)
		protected.PUT("/user/update", handlers.UpdateProfile)
		protected.POST("/user/avatar", handlers.UploadAvatar)
		protected.PUT("/user/settings/2fa", handlers.Toggle2FA)
		protected.POST("/reviews", handlers.CreateReview)
		protected.DELETE("/reviews/:id", handlers.DeleteReview)
		protected.POST("/games", handlers.CreateGame)
		protected.PUT("/games/:id", handlers.UpdateGame)
		protected.DELETE("/games/:id", handlers.DeleteGame)
		protected.POST("/news", handlers.CreateNewsArticle)
		protected.DELETE("/news/:id", handlers.DeleteNewsArticle)
		protected.GET("/admin/stats", handlers.GetDashboardStats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	useHTTPS := os.Getenv("USE_HTTPS") == "true"
	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")

	if useHTTPS && certFile != "" && keyFile != "" {
		utils.Log.Info("Starting server with HTTPS on port ", port)

		tlsConfig := &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		}

		server := &http.Server{
			Addr:      ":" + port,
			Handler:   r,
			TLSConfig: tlsConfig,
		}

		if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
			utils.Log.Fatal("Failed to start HTTPS server: ", err)
		}
	} else {
		utils.Log.Info("Starting server with HTTP on port ", port)

		if err := r.Run(":" + port); err != nil {
			utils.Log.Fatal("Failed to start server: ", err)
		}
	}
}
