package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/internal/services"
	"gorm.io/gorm"
)

// GetLessons GET /courses/:id/lessons
func GetLessons(c *gin.Context) {
	courseID := c.Param("id")

	var lessons []models.Lesson
	if err := database.DB.Where("course_id = ?", courseID).
		Order("\"order\" asc").
		Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// GetLesson GET /courses/:id/lessons/:lessonId
func GetLesson(c *gin.Context) {
	var lesson models.Lesson
	if err := database.DB.Where("id = ? AND course_id = ?", c.Param("lessonId"), c.Param("id")).
		First(&lesson).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

type lessonInput struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	VideoURL    string            `json:"videoUrl"`
	Materials   []models.Material `json:"materials"`
	Duration    *int              `json:"duration"`
	Order       int64             `json:"order"`
}

// CreateLesson POST /courses/:id/lessons (owner)
//
// The lesson insert and the course lessons counter bump run in one
// transaction; the new_lesson fan-out runs after commit and tolerates
// partial delivery.
func CreateLesson(c *gin.Context) {
	course, ok := loadOwnedCourse(c)
	if !ok {
		return
	}

	var input lessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson := models.Lesson{
		CourseID:    course.ID,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		Materials:   input.Materials,
		Duration:    input.Duration,
		Order:       input.Order,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", course.ID).
			UpdateColumn("lessons", gorm.Expr("lessons + ?", 1)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}

	database.CacheInvalidate("courses:*")

	NotifyNewLesson(*course, lesson.Title)

	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

// UpdateLesson PUT /courses/:id/lessons/:lessonId (owner)
func UpdateLesson(c *gin.Context) {
	course, ok := loadOwnedCourse(c)
	if !ok {
		return
	}

	var lesson models.Lesson
	if err := database.DB.Where("id = ? AND course_id = ?", c.Param("lessonId"), course.ID).
		First(&lesson).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var input lessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson.Title = input.Title
	lesson.Description = input.Description
	lesson.VideoURL = input.VideoURL
	lesson.Materials = input.Materials
	lesson.Duration = input.Duration
	if input.Order != 0 {
		lesson.Order = input.Order
	}

	if err := database.DB.Save(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

// DeleteLesson DELETE /courses/:id/lessons/:lessonId (owner)
func DeleteLesson(c *gin.Context) {
	course, ok := loadOwnedCourse(c)
	if !ok {
		return
	}

	var lesson models.Lesson
	if err := database.DB.Where("id = ? AND course_id = ?", c.Param("lessonId"), course.ID).
		First(&lesson).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&lesson).Error; err != nil {
			return err
		}
		// Counter floors at zero
		return tx.Model(&models.Course{}).Where("id = ?", course.ID).
			UpdateColumn("lessons", gorm.Expr("CASE WHEN lessons > 0 THEN lessons - 1 ELSE 0 END")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}

	database.CacheInvalidate("courses:*")

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}

// CompleteLesson POST /courses/:id/lessons/:lessonId/complete
//
// Idempotent; the completion notification fires only on the transition
// from incomplete to complete.
func CompleteLesson(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	courseID := c.Param("id")
	lessonID := c.Param("lessonId")

	completedCourse, err := services.MarkLessonComplete(courseID, lessonID, userID.(string))
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}

	if completedCourse {
		var course models.Course
		if err := database.DB.First(&course, "id = ?", courseID).Error; err == nil {
			NotifyCourseCompletion(userID.(string), course)
		}
	}

	summary := services.GetUserProgress(courseID, userID.(string))
	c.JSON(http.StatusOK, gin.H{"progress": summary, "courseCompleted": completedCourse})
}

// GetProgress GET /courses/:id/progress
func GetProgress(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary := services.GetUserProgress(c.Param("id"), userID.(string))
	c.JSON(http.StatusOK, gin.H{"progress": summary})
}
