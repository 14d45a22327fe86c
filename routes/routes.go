package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yururi-apps/schedule-coordination-backend/config"
	"github.com/yururi-apps/schedule-coordination-backend/database"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auditlog"
	"github.com/yururi-apps/schedule-coordination-backend/internal/auth"
	"github.com/yururi-apps/schedule-coordination-backend/internal/event"
	"github.com/yururi-apps/schedule-coordination-backend/internal/notification"
	"github.com/yururi-apps/schedule-coordination-backend/internal/participation"
	"github.com/yururi-apps/schedule-coordination-backend/internal/reports"
	"github.com/yururi-apps/schedule-coordination-backend/middleware"

	_ "github.com/yururi-apps/schedule-coordination-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every module onto the router. NotifSvc is built in main so
// the Kafka consumer can share it.
func Setup(r *gin.Engine, cfg *config.Config, notifSvc notification.Service) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP for audit trails

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg, notifSvc)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)

		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
	}

	// ========== Participation ==========
	partRepo := participation.NewRepository(database.DB)
	partSvc := participation.NewService(partRepo, authRepo, notifSvc, auditSvc, cfg)
	partHandler := participation.NewHandler(partSvc)

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, partSvc, notifSvc, auditSvc, cfg)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Reports ==========
	reportSvc := reports.NewService(eventRepo, partSvc)
	reportHandler := reports.NewHandler(reportSvc)

	// Invitee-facing routes: a session OR a ?token= invitation grants access,
	// so authentication is optional and the gate decides downstream
	invitee := api.Group("/events")
	invitee.Use(middleware.OptionalAuth(cfg, authSvc))
	{
		invitee.GET("/:id", eventHandler.GetEvent)
		invitee.POST("/:id/responses", partHandler.SubmitResponses)
		invitee.POST("/:id/venue-vote", partHandler.VoteVenue)
	}

	// Creator-facing routes require a session
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.GET("/events", eventHandler.ListEvents)
		protected.POST("/events", eventHandler.CreateEvent)
		protected.PUT("/events/:id", eventHandler.UpdateEvent)
		protected.DELETE("/events/:id", eventHandler.DeleteEvent)

		protected.GET("/events/:id/export", reportHandler.ExportAttendance)

		auditRoutes := protected.Group("/auditlogs")
		{
			auditRoutes.GET("", auditHandler.GetAuditLogs)
			auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
		}
	}
}
