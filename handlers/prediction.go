package handlers

import (
	"net/http"
	"time"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/middleware"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/models"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// nearbyHospitals is the static presentation-layer list attached to every
// prediction response.
var nearbyHospitals = []models.Hospital{
	{Name: "City General Hospital", Distance: "2.3 km", EstimatedWait: "15 mins", Rating: 4.5, AIRecommended: true},
	{Name: "Green Valley Medical Center", Distance: "3.8 km", EstimatedWait: "25 mins", Rating: 4.3, AIRecommended: false},
	{Name: "Sunrise Healthcare", Distance: "5.1 km", EstimatedWait: "20 mins", Rating: 4.7, AIRecommended: false},
}

type PredictionHandler struct {
	db        *gorm.DB
	predictor *services.PredictorService
}

func NewPredictionHandler(db *gorm.DB, predictor *services.PredictorService) *PredictionHandler {
	return &PredictionHandler{db: db, predictor: predictor}
}

type PredictRequest struct {
	Age        int      `json:"age" binding:"required,min=1,max=120"`
	Department string   `json:"department" binding:"required"`
	Symptoms   string   `json:"symptoms" binding:"required"`
	UserLat    *float64 `json:"user_lat"`
	UserLng    *float64 `json:"user_lng"`
}

type PredictResponse struct {
	RiskLevel            string            `json:"risk_level"`
	PredictedLoad        int               `json:"predicted_load"`
	CongestionConfidence float64           `json:"congestion_confidence"`
	BestVisitingTime     string            `json:"best_visiting_time"`
	Recommendation       string            `json:"recommendation"`
	NearbyHospitals      []models.Hospital `json:"nearby_hospitals"`
}

func (h *PredictionHandler) PredictOPD(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.predictor.Predict(c.Request.Context(), req.Age, req.Department, req.Symptoms)

	record := models.Prediction{
		UserEmail:            user.Email,
		Age:                  req.Age,
		Department:           req.Department,
		Symptoms:             req.Symptoms,
		RiskLevel:            result.RiskLevel,
		PredictedLoad:        result.PredictedLoad,
		CongestionConfidence: result.CongestionConfidence,
		BestVisitingTime:     result.BestVisitingTime,
		Recommendation:       result.Recommendation,
		Timestamp:            time.Now().UTC(),
	}
	if err := h.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to store prediction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store prediction"})
		return
	}

	c.JSON(http.StatusOK, PredictResponse{
		RiskLevel:            result.RiskLevel,
		PredictedLoad:        result.PredictedLoad,
		CongestionConfidence: result.CongestionConfidence,
		BestVisitingTime:     result.BestVisitingTime,
		Recommendation:       result.Recommendation,
		NearbyHospitals:      nearbyHospitals,
	})
}
