package handlers

import (
	"net/http"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// DoctorAnalytics serves the daily aggregate report. Route is gated to
// doctor and admin roles.
func (h *AnalyticsHandler) DoctorAnalytics(c *gin.Context) {
	report, err := h.analytics.DailySummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// AdminAnalytics serves the extended report. Route is gated to admin only.
func (h *AnalyticsHandler) AdminAnalytics(c *gin.Context) {
	report, err := h.analytics.AdminSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}
