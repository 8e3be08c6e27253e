package models

import "time"

const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ValidRiskLevel reports whether r is one of the three enumerated levels.
func ValidRiskLevel(r string) bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Prediction is one stored OPD load forecast. Rows are insert-only; every row
// references the user that submitted the intake at creation time.
type Prediction struct {
	ID                   uint      `gorm:"column:id;primaryKey" json:"-"`
	UserEmail            string    `gorm:"column:user_email;index" json:"user_email"`
	Age                  int       `gorm:"column:age" json:"age"`
	Department           string    `gorm:"column:department" json:"department"`
	Symptoms             string    `gorm:"column:symptoms" json:"symptoms"`
	RiskLevel            string    `gorm:"column:risk_level" json:"risk_level"`
	PredictedLoad        int       `gorm:"column:predicted_load" json:"predicted_load"`
	CongestionConfidence float64   `gorm:"column:congestion_confidence" json:"congestion_confidence"`
	BestVisitingTime     string    `gorm:"column:best_visiting_time" json:"best_visiting_time"`
	Recommendation       string    `gorm:"column:recommendation" json:"recommendation"`
	Timestamp            time.Time `gorm:"column:ts;index" json:"timestamp"`
}

func (Prediction) TableName() string { return "predictions" }
