package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"gorm.io/gorm"
)

// GetNotifications GET /notifications
func GetNotifications(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var notifications []models.Notification
	if err := database.DB.Where("recipient_id = ?", userID).Order("created_at desc").Limit(50).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetUnreadCount GET /notifications/unread-count
func GetUnreadCount(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var count int64
	database.DB.Model(&models.Notification{}).Where("recipient_id = ? AND read = ?", userID, false).Count(&count)

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead PUT /notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	notificationID := c.Param("id")

	var notification models.Notification
	if err := database.DB.First(&notification, "id = ?", notificationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notification.RecipientID != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	now := time.Now()
	notification.Read = true
	notification.ReadAt = &now
	database.DB.Save(&notification)

	PushNotificationSnapshot(notification.RecipientID)

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

// MarkAllNotificationsRead PUT /notifications/read-all
//
// Bulk query-then-update-each over the user's unread set, mirroring the
// per-document update model of the store; not a single atomic update.
func MarkAllNotificationsRead(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var unread []models.Notification
	if err := database.DB.Where("recipient_id = ? AND read = ?", userID, false).Find(&unread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	now := time.Now()
	for i := range unread {
		unread[i].Read = true
		unread[i].ReadAt = &now
		if err := database.DB.Save(&unread[i]).Error; err != nil {
			logger.Error().Err(err).Str("notification_id", unread[i].ID).Msg("Failed to mark notification read")
		}
	}

	PushNotificationSnapshot(userID.(string))

	c.JSON(http.StatusOK, gin.H{"message": "All marked as read", "updated": len(unread)})
}

// DeleteNotification DELETE /notifications/:id
func DeleteNotification(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	notificationID := c.Param("id")

	var notification models.Notification
	if err := database.DB.First(&notification, "id = ?", notificationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notification.RecipientID != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	database.DB.Delete(&notification)

	PushNotificationSnapshot(notification.RecipientID)

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// CreateNotification persists one notification and re-pushes the
// recipient's snapshot.
func CreateNotification(tx *gorm.DB, notification *models.Notification) error {
	if err := tx.Create(notification).Error; err != nil {
		logger.Error().Err(err).Str("recipient_id", notification.RecipientID).Msg("Failed to create notification")
		return err
	}

	PushNotificationSnapshot(notification.RecipientID)
	return nil
}

// NotifyTeacherEnrollment tells a course's instructor that a student
// enrolled. Failures here are logged, never propagated: a lost
// notification must not undo an enrollment.
func NotifyTeacherEnrollment(course models.Course, studentID string) {
	studentName := "New Student"
	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err == nil && student.DisplayName != "" {
		studentName = student.DisplayName
	}

	notification := models.Notification{
		Type:        models.NotificationTypeEnrollment,
		RecipientID: course.InstructorID,
		SenderID:    &studentID,
		CourseID:    &course.ID,
		Title:       "New Student Enrolled",
		Message:     studentName + " has enrolled in your course \"" + course.Title + "\"",
		Priority:    models.PriorityMedium,
		Data: map[string]interface{}{
			"courseId":    course.ID,
			"studentId":   studentID,
			"studentName": studentName,
		},
	}

	if err := CreateNotification(database.DB, &notification); err != nil {
		logger.Error().Err(err).Str("course_id", course.ID).Msg("Enrollment notification lost")
	}
}

// NotifyNewLesson fans a new_lesson notification out to every current
// enrollee of the course. A failed individual send is logged and skipped;
// the rest of the fan-out proceeds (partial delivery is accepted).
func NotifyNewLesson(course models.Course, lessonTitle string) {
	var enrollments []models.Enrollment
	if err := database.DB.Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil {
		logger.Error().Err(err).Str("course_id", course.ID).Msg("New lesson fan-out aborted")
		return
	}

	for _, enrollment := range enrollments {
		notification := models.Notification{
			Type:        models.NotificationTypeNewLesson,
			RecipientID: enrollment.UserID,
			CourseID:    &course.ID,
			Title:       "New Lesson Available",
			Message:     "A new lesson \"" + lessonTitle + "\" has been added to \"" + course.Title + "\"",
			Priority:    models.PriorityMedium,
			Data: map[string]interface{}{
				"courseId":    course.ID,
				"lessonTitle": lessonTitle,
			},
		}
		if err := CreateNotification(database.DB, &notification); err != nil {
			logger.Error().Err(err).Str("recipient_id", enrollment.UserID).Msg("New lesson notification lost")
		}
	}
}

// NotifyCourseCompletion congratulates a student who finished a course.
func NotifyCourseCompletion(userID string, course models.Course) {
	notification := models.Notification{
		Type:        models.NotificationTypeCompletion,
		RecipientID: userID,
		CourseID:    &course.ID,
		Title:       "Course Completed! 🎉",
		Message:     "Congratulations! You've completed \"" + course.Title + "\"",
		Priority:    models.PriorityHigh,
		Data: map[string]interface{}{
			"courseId":    course.ID,
			"courseTitle": course.Title,
		},
	}

	if err := CreateNotification(database.DB, &notification); err != nil {
		logger.Error().Err(err).Str("course_id", course.ID).Msg("Completion notification lost")
	}
}

// CreateCourseAnnouncement POST /courses/:id/announcements
//
// One high-priority notification per enrollment. Not transactional:
// a failure partway through leaves a subset of students notified.
func CreateCourseAnnouncement(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	courseID := c.Param("id")

	var input struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	if course.InstructorID != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the instructor can post announcements"})
		return
	}

	var enrollments []models.Enrollment
	if err := database.DB.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch enrollments"})
		return
	}

	instructorID := userID.(string)
	sent := 0
	for _, enrollment := range enrollments {
		notification := models.Notification{
			Type:        models.NotificationTypeAnnouncement,
			RecipientID: enrollment.UserID,
			SenderID:    &instructorID,
			CourseID:    &course.ID,
			Title:       "Course Announcement",
			Message:     input.Message,
			Priority:    models.PriorityHigh,
			Data: map[string]interface{}{
				"courseId": course.ID,
			},
		}
		if err := CreateNotification(database.DB, &notification); err != nil {
			logger.Error().Err(err).Str("recipient_id", enrollment.UserID).Msg("Announcement notification lost")
			continue
		}
		sent++
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Announcement sent", "recipients": sent})
}

// SendDirectMessage POST /notifications/direct
func SendDirectMessage(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// 1 message per 10 seconds per sender
	allowed, err := database.CheckRateLimit(userID.(string), 1, 10*time.Second)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before sending another message"})
		return
	}

	var input struct {
		RecipientID string `json:"recipientId" binding:"required"`
		Message     string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", input.RecipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	senderID := userID.(string)
	notification := models.Notification{
		Type:        models.NotificationTypeDirect,
		RecipientID: input.RecipientID,
		SenderID:    &senderID,
		Title:       "New Message",
		Message:     input.Message,
		Priority:    models.PriorityMedium,
		Data: map[string]interface{}{
			"senderId": senderID,
			"message":  input.Message,
		},
	}

	if err := CreateNotification(database.DB, &notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}
