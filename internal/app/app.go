package app

import (
	"database/sql"
	"fmt"
	"log"

	"fillratedash/internal/config"
	"fillratedash/internal/handlers"
	"fillratedash/internal/repositories"
	"fillratedash/internal/routes"
	"fillratedash/internal/services"
	"fillratedash/internal/store/memory"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fillratedash/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	fillRateRepo := repositories.NewFillRateRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// Auth state lives in process memory; swap for a shared cache when the
	// dashboard ever runs more than one replica.
	authStore := memory.NewStore()
	otpService := services.NewOTPService(authStore, emailService, cfg.Auth.AllowedDomain)

	reportService := services.NewReportService(fillRateRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(otpService, cfg.Auth.SessionSecret)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	exportHandler := handlers.NewExportHandler(reportService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		dashboardHandler,
		feedbackHandler,
		exportHandler,
		cfg.Auth.SessionSecret,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
