package handlers

import (
	"net/http"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/middleware"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/models"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes registers the full API surface on the router.
func SetupRoutes(router *gin.Engine, db *gorm.DB, authService *services.AuthService, predictor *services.PredictorService) {
	authHandler := NewAuthHandler(db, authService)
	predictionHandler := NewPredictionHandler(db, predictor)
	analyticsHandler := NewAnalyticsHandler(services.NewAnalyticsService(db))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "OPD Prediction API",
		})
	})

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.RequireAuth(db, authService))
	authed.POST("/predict-opd", predictionHandler.PredictOPD)
	authed.GET("/doctor/analytics",
		middleware.RequireRole(models.RoleDoctor, models.RoleAdmin),
		analyticsHandler.DoctorAnalytics)
	authed.GET("/admin/analytics",
		middleware.RequireRole(models.RoleAdmin),
		analyticsHandler.AdminAnalytics)
}
