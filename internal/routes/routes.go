package routes

import (
	"github.com/gin-gonic/gin"

	"fillratedash/internal/handlers"
	"fillratedash/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	feedbackHandler *handlers.FeedbackHandler,
	exportHandler *handlers.ExportHandler,
	sessionSecret string,
) *gin.Engine {

	api := r.Group("/api")

	// ---- public
	api.POST("/send-otp", authHandler.SendOTP)
	api.POST("/verify-otp", authHandler.VerifyOTP)
	api.POST("/logout", authHandler.Logout)
	api.GET("/verify-session", authHandler.VerifySession)

	// ---- protected
	protected := api.Group("", middleware.SessionGuard([]byte(sessionSecret)))
	{
		protected.GET("/dashboard-stats", dashboardHandler.GetStats)
		protected.GET("/low-fill-rate-data", dashboardHandler.GetLowFillRateData)
		protected.GET("/filter-options", dashboardHandler.GetFilterOptions)
		protected.GET("/filtered-data", dashboardHandler.GetFilteredData)

		protected.GET("/reasons", feedbackHandler.GetReasons)
		protected.POST("/submit-feedback", feedbackHandler.Submit)
		protected.GET("/feedback-history/:record_id", feedbackHandler.History)

		protected.GET("/export/xlsx", exportHandler.ExportXLSX)
		protected.GET("/export/pdf", exportHandler.ExportPDF)
	}

	return r
}
