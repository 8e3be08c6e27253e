package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/models"
	"github.com/Devadharshani13/Smart-Hospital-Scheduling-with-AI/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserKey is where RequireAuth stores the resolved user in the gin context.
const CurrentUserKey = "currentUser"

// RequireAuth validates the bearer token and resolves it to a stored user.
// Missing/malformed header, expired or invalid token, and a vanished user all
// yield 401.
func RequireAuth(db *gorm.DB, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, services.ErrTokenExpired) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		var user models.User
		if err := db.Where("email = ?", claims.Email).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequireRole gates an endpoint to the given roles. Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
	}
}

// CurrentUser fetches the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
