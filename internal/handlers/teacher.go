package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/internal/services"
)

// GetTeacherCourses GET /teacher/courses
//
// The teacher's own courses, regardless of status.
func GetTeacherCourses(c *gin.Context) {
	userID := c.GetString("userId")

	var courses []models.Course
	if err := database.DB.Where("instructor_id = ?", userID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// GetTeacherStudentProgress GET /teacher/students
func GetTeacherStudentProgress(c *gin.Context) {
	userID := c.GetString("userId")

	reports, err := services.TeacherStudentProgress(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": reports})
}

// GetTeacherRatingAnalytics GET /teacher/analytics/ratings
func GetTeacherRatingAnalytics(c *gin.Context) {
	userID := c.GetString("userId")

	analytics, err := services.GetTeacherRatingAnalytics(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, analytics)
}
