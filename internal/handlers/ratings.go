package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/internal/services"
)

// SubmitRating POST /courses/:id/ratings
func SubmitRating(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	courseID := c.Param("id")

	var input services.RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := services.SubmitRating(courseID, userID.(string), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, services.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		}
		return
	}

	database.CacheInvalidate("courses:*")
	PushCourseRatings(courseID)

	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

// DeleteRating DELETE /courses/:id/ratings/:ratingId
func DeleteRating(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	courseID := c.Param("id")
	ratingID := c.Param("ratingId")

	var rating models.Rating
	if err := database.DB.Where("id = ? AND course_id = ?", ratingID, courseID).First(&rating).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
		return
	}

	if rating.UserID != userID.(string) {
		var user models.User
		if err := database.DB.First(&user, "id = ?", userID.(string)).Error; err != nil || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
	}

	if err := services.DeleteRating(ratingID, courseID); err != nil {
		if errors.Is(err, services.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rating"})
		return
	}

	database.CacheInvalidate("courses:*")
	PushCourseRatings(courseID)

	c.JSON(http.StatusOK, gin.H{"message": "Rating deleted"})
}

// GetCourseRatings GET /courses/:id/ratings
func GetCourseRatings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ratings, err := services.CourseRatings(c.Param("id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

// GetCourseRatingStats GET /courses/:id/ratings/stats
func GetCourseRatingStats(c *gin.Context) {
	stats, err := services.CourseRatingStats(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rating stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetMyRating GET /courses/:id/ratings/me
func GetMyRating(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rating, err := services.GetUserRating(c.Param("id"), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

// GetRecentReviews GET /reviews/recent
func GetRecentReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	reviews, err := services.RecentReviews(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
