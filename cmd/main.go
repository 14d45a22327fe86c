package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yururi-apps/schedule-coordination-backend/config"
	"github.com/yururi-apps/schedule-coordination-backend/database"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auditlog"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auth"
	"github.com/yururi-apps/schedule-coordination-backend/internal/event"
	"github.com/yururi-apps/schedule-coordination-backend/internal/notification"
	"github.com/yururi-apps/schedule-coordination-backend/internal/participation"
	"github.com/yururi-apps/schedule-coordination-backend/routes"
	"github.com/yururi-apps/schedule-coordination-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka (optional; email jobs fall back to direct sends)
	utils.InitializeKafka(cfg)

	// The notification service is built here so the Kafka consumer and the
	// HTTP layer share one instance
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, cfg)
	notification.StartKafkaConsumer(notificationService, cfg)

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&event.DateOption{},
		&event.VenueOption{},
		&participation.Participant{},
		&notification.NotificationLog{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, notificationService)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Server starting on port %s\n", port)
	if err := router.Run(":" + port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
