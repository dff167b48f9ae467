package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
)

func requireRole(c *gin.Context, roles ...models.Role) bool {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return false
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID.(string)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		c.Abort()
		return false
	}

	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	c.Abort()
	return false
}

// AdminOnly restricts access to users with the admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireRole(c, models.RoleAdmin) {
			c.Next()
		}
	}
}

// TeacherOnly allows teachers and admins.
func TeacherOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireRole(c, models.RoleTeacher, models.RoleAdmin) {
			c.Next()
		}
	}
}
