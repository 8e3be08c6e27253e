package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/services"

	"github.com/stretchr/testify/require"
)

func TestDoctorAnalyticsRoleGating(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubCompletion{})

	patientToken := registerUser(t, router, "p@x.com", "pw", "P", "patient")
	doctorToken := registerUser(t, router, "d@x.com", "pw", "D", "doctor")
	adminToken := registerUser(t, router, "ad@x.com", "pw", "AD", "admin")

	t.Run("patient forbidden", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/doctor/analytics", nil, patientToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("doctor allowed", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/doctor/analytics", nil, doctorToken)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/doctor/analytics", nil, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/doctor/analytics", nil, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminAnalyticsRoleGating(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubCompletion{})

	patientToken := registerUser(t, router, "p2@x.com", "pw", "P", "patient")
	doctorToken := registerUser(t, router, "d2@x.com", "pw", "D", "doctor")
	adminToken := registerUser(t, router, "ad2@x.com", "pw", "AD", "admin")

	t.Run("patient forbidden", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/admin/analytics", nil, patientToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("doctor forbidden", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/admin/analytics", nil, doctorToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/admin/analytics", nil, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var report services.AdminReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		require.Equal(t, "Operational", report.SystemStatus)
		require.Len(t, report.WeeklyTrends, 7)
	})
}

func TestDoctorAnalyticsReflectsPredictions(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubCompletion{err: errors.New("model disabled")})

	patientToken := registerUser(t, router, "p3@x.com", "pw", "P", "patient")
	doctorToken := registerUser(t, router, "d3@x.com", "pw", "D", "doctor")

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/predict-opd", map[string]interface{}{
			"age":        30,
			"department": "Cardiology",
			"symptoms":   "chest pain",
		}, patientToken)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/doctor/analytics", nil, doctorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var report services.DoctorReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	require.Equal(t, 3, report.PatientsToday)
	require.Equal(t, "chest pain", report.MostCommonSymptom)

	sum := 0
	for _, p := range report.RiskDistribution {
		sum += p.Value
	}
	require.Equal(t, report.PatientsToday, sum, "risk histogram must sum to the day's total")

	// Fallback predictions are all Medium risk.
	require.Equal(t, 0, report.HighRiskCases)
	require.Equal(t, "Low", report.OPDRiskLevel)
}
