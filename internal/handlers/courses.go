package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/internal/services"
)

const courseListCacheKey = "courses:published"

// GetCourses GET /courses?category=
func GetCourses(c *gin.Context) {
	var courses []models.Course
	category := c.Query("category")

	// Only the unfiltered list is cached
	if category == "" {
		if err := database.CacheGet(courseListCacheKey, &courses); err == nil {
			c.JSON(http.StatusOK, gin.H{"courses": courses})
			return
		}
	}

	query := database.DB.Where("status = ?", models.CourseStatusPublished)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at desc").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	if category == "" {
		database.CacheSet(courseListCacheKey, courses, time.Minute)
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// GetCourse GET /courses/:id
func GetCourse(c *gin.Context) {
	courseID := c.Param("id")

	var course models.Course
	if err := database.DB.Preload("Instructor").First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if course.Instructor != nil {
		course.Instructor.Password = ""
	}

	// Personalized when a valid token was sent, false for anonymous browsing.
	enrolled := false
	if userID, exists := c.Get("userId"); exists {
		enrolled = services.IsEnrolled(course.ID, userID.(string))
	}

	c.JSON(http.StatusOK, gin.H{"course": course, "enrolled": enrolled})
}

type courseInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration"`
	Price       float64 `json:"price"`
	CoverImage  string  `json:"coverImage"`
}

// CreateCourse POST /courses (teacher)
func CreateCourse(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input courseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	course := models.Course{
		Title:              input.Title,
		Description:        input.Description,
		Category:           input.Category,
		Duration:           input.Duration,
		Price:              input.Price,
		CoverImage:         input.CoverImage,
		InstructorID:       userID.(string),
		Status:             models.CourseStatusPublished,
		RatingDistribution: map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}

	if err := database.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	database.CacheInvalidate("courses:*")

	c.JSON(http.StatusCreated, gin.H{"course": course})
}

// UpdateCourse PUT /courses/:id (owner or admin)
func UpdateCourse(c *gin.Context) {
	course, ok := loadOwnedCourse(c)
	if !ok {
		return
	}

	var input courseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Category = input.Category
	course.Duration = input.Duration
	course.Price = input.Price
	if input.CoverImage != "" {
		course.CoverImage = input.CoverImage
	}

	if err := database.DB.Save(course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}

	database.CacheInvalidate("courses:*")

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// DeleteCourse DELETE /courses/:id (owner or admin)
//
// Dependent lessons, enrollments and ratings are NOT removed; referential
// cleanup policy is an open product decision, kept explicit rather than
// cascading silently.
func DeleteCourse(c *gin.Context) {
	course, ok := loadOwnedCourse(c)
	if !ok {
		return
	}

	if err := database.DB.Delete(course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	database.CacheInvalidate("courses:*")

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// loadOwnedCourse fetches the :id course and authorizes the caller as its
// instructor or an admin.
func loadOwnedCourse(c *gin.Context) (*models.Course, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return nil, false
	}

	if course.InstructorID != userID.(string) {
		var user models.User
		if err := database.DB.First(&user, "id = ?", userID.(string)).Error; err != nil || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return nil, false
		}
	}

	return &course, true
}

// EnrollCourse POST /courses/:id/enroll
func EnrollCourse(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	courseID := c.Param("id")

	enrollment, created, err := services.Enroll(courseID, userID.(string))
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll"})
		return
	}

	// Notification failure must not roll back the enrollment.
	if created {
		var course models.Course
		if err := database.DB.First(&course, "id = ?", courseID).Error; err == nil {
			NotifyTeacherEnrollment(course, userID.(string))
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"enrollment": enrollment, "created": created})
}

// CheckEnrollment GET /courses/:id/enrollment
func CheckEnrollment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrolled := services.IsEnrolled(c.Param("id"), userID.(string))
	c.JSON(http.StatusOK, gin.H{"enrolled": enrolled})
}

// GetMyEnrollments GET /users/enrollments
func GetMyEnrollments(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollments, err := services.ListUserEnrollments(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch enrollments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

// GetTopRatedCourses GET /courses/top-rated
func GetTopRatedCourses(c *gin.Context) {
	courses, err := services.TopRatedCourses(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}
