package main

import (
	"log"
	"time"

	"events-api/internal/api"
	"events-api/internal/config"
	"events-api/internal/database"
	"events-api/internal/services"
	"events-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatal("Failed to initialize config:", err)
	}

	// Initialize logging
	logging.InitLogging()

	// Fail fast on missing payment/email settings
	if err := config.AppConfig.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Initialize database and Redis
	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	redisClient, err := database.ConnectRedis()
	if err != nil {
		log.Fatal("Failed to initialize Redis:", err)
	}
	defer database.Close(db, redisClient)

	// Wire services
	cfg := config.AppConfig
	store := database.NewStore(db)
	verifier := services.NewSignatureVerifier(cfg.LomiWebhookSecret)
	dispatcher := services.NewTicketEmailDispatcher(
		cfg.SendTicketEmailURL,
		cfg.EmailFunctionKey,
		time.Duration(cfg.EmailTimeoutSeconds)*time.Second,
	)

	handlers := &api.Handlers{
		Payments:    services.NewPaymentService(store, verifier, dispatcher),
		Tickets:     services.NewTicketService(store),
		Scans:       services.NewScanLimiter(redisClient, cfg.ScanCooldownSeconds),
		StaffAPIKey: cfg.StaffAPIKey,
	}

	// Set Gin mode
	gin.SetMode(cfg.Mode)

	// Create Gin engine
	r := gin.Default()

	// Setup routes
	api.SetupRoutes(r, handlers)

	// Start server
	port := cfg.Port
	logging.Infof("Starting server on port %s", port)

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
