package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/models"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router, _, authService := newTestRouter(t, &stubCompletion{})

	token := registerUser(t, router, "a@x.com", "pw", "A", "patient")

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "patient", claims.Role)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "pw",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Login successful", resp.Message)
	require.Equal(t, "a@x.com", resp.User.Email)
	require.Equal(t, "patient", resp.User.Role)

	claims, err = authService.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, "patient", claims.Role, "decoded role must match the registered role")
}

func TestRegisterDefaultsToPatientRole(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubCompletion{})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "b@x.com",
		"password": "pw",
		"name":     "B",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "patient", resp.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, db, _ := newTestRouter(t, &stubCompletion{})

	registerUser(t, router, "dup@x.com", "first-pw", "First", "patient")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "dup@x.com",
		"password": "second-pw",
		"name":     "Second",
		"role":     "doctor",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The first record must be unaltered.
	var user models.User
	require.NoError(t, db.Where("email = ?", "dup@x.com").First(&user).Error)
	require.Equal(t, "First", user.Name)
	require.Equal(t, "patient", user.Role)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "dup@x.com").Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubCompletion{})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad email", map[string]string{"email": "not-an-email", "password": "pw", "name": "X"}},
		{"missing password", map[string]string{"email": "x@x.com", "name": "X"}},
		{"unknown role", map[string]string{"email": "x@x.com", "password": "pw", "name": "X", "role": "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/register", tt.body, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, _, _ := newTestRouter(t, &stubCompletion{})

	registerUser(t, router, "c@x.com", "right-pw", "C", "patient")

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "c@x.com",
			"password": "wrong-pw",
		}, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "nobody@x.com",
			"password": "right-pw",
		}, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
