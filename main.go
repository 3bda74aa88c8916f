package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/craftyard/craftyard-api/config"
	"github.com/craftyard/craftyard-api/controllers"
	"github.com/craftyard/craftyard-api/middleware"
	"github.com/craftyard/craftyard-api/models"
	"github.com/craftyard/craftyard-api/services"
)

func main() {
	log.Println("Starting Craftyard marketplace API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.DeliveryPersonnel{},
		&models.Order{},
		&models.OrderHistory{},
		&models.PlatformProfit{},
		&models.WithdrawalRequest{},
		&models.Message{},
		&models.SiteSetting{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the settings service, with a Redis cache when configured
	var settingsCache *services.SettingsCache
	if cfg.RedisURL != "" {
		settingsCache, err = services.NewSettingsCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Redis unavailable, settings cache disabled: %v", err)
		}
	}
	services.InitSettingsService(db, settingsCache)

	// Initialize notification dispatch
	services.InitNotificationService()

	// Initialize S3-backed image storage when configured
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, image uploads disabled")
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures CORS, middleware, and all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)
	}

	authed := v1.Group("")
	authed.Use(middleware.EnsureValidToken(cfg))
	{
		// User profiles
		authed.POST("/users", controllers.CreateUser)
		authed.GET("/users/me", controllers.GetCurrentUser)

		// Orders and lifecycle
		authed.POST("/orders", controllers.CreateOrder)
		authed.GET("/orders", controllers.ListOrders)
		authed.GET("/orders/:id", controllers.GetOrder)
		authed.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		authed.GET("/orders/:id/history", controllers.ListOrderHistory)

		// Payment proofs
		authed.POST("/orders/:id/deposit-image", controllers.UploadDepositImage)
		authed.POST("/orders/:id/payment-proof", controllers.UploadPaymentProof)

		// Personnel assignment
		authed.POST("/orders/:id/assign-pickup", controllers.AssignPickup)
		authed.POST("/orders/:id/assign-delivery", controllers.AssignDelivery)
		authed.POST("/orders/bulk-assign-delivery", controllers.BulkAssignDelivery)

		// Order chat
		authed.POST("/orders/:id/messages", controllers.SendMessage)
		authed.GET("/orders/:id/messages", controllers.ListMessages)

		// Withdrawals
		authed.POST("/withdrawals", controllers.CreateWithdrawal)
		authed.GET("/withdrawals", controllers.ListWithdrawals)
		authed.POST("/withdrawals/:id/approve", controllers.ApproveWithdrawal)
		authed.POST("/withdrawals/:id/reject", controllers.RejectWithdrawal)

		// City configuration
		authed.GET("/cities", controllers.ListCities)
		authed.POST("/cities", controllers.CreateCity)
		authed.PUT("/cities/:id", controllers.UpdateCity)
		authed.DELETE("/cities/:id", controllers.DeleteCity)

		// Delivery personnel management
		authed.GET("/delivery-personnel", controllers.ListPersonnel)
		authed.POST("/delivery-personnel", controllers.CreatePersonnel)
		authed.PATCH("/delivery-personnel/:id/status", controllers.UpdatePersonnelStatus)
		authed.PATCH("/delivery-personnel/:id/availability", controllers.UpdatePersonnelAvailability)

		// Site settings
		authed.GET("/settings/withdrawal-bounds", controllers.GetWithdrawalBounds)
		authed.PUT("/settings/withdrawal-bounds", controllers.UpdateWithdrawalBounds)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Craftyard API is running",
	})
}
