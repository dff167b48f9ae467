package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
)

// GetProfile GET /users/:id
//
// Public profiles are limited to fields safe to show to other users.
func GetProfile(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"displayName": user.DisplayName,
		"photoURL":    user.PhotoURL,
		"role":        user.Role,
	})
}

type profileInput struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

// UpdateProfile PUT /users/me
func UpdateProfile(c *gin.Context) {
	userID := c.GetString("userId")

	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Display name cannot be empty"})
			return
		}
		user.DisplayName = *input.DisplayName
	}
	if input.PhotoURL != nil {
		user.PhotoURL = *input.PhotoURL
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type preferencesInput struct {
	DarkMode *bool `json:"darkMode"`
	Autoplay *bool `json:"autoplay"`
}

// UpdatePreferences PUT /users/me/preferences
func UpdatePreferences(c *gin.Context) {
	userID := c.GetString("userId")

	var input preferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.DarkMode != nil {
		updates["dark_mode"] = *input.DarkMode
	}
	if input.Autoplay != nil {
		updates["autoplay"] = *input.Autoplay
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"darkMode": user.DarkMode,
		"autoplay": user.Autoplay,
	})
}
