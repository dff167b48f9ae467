package services

import (
	"errors"
	"math"
	"time"

	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"gorm.io/gorm"
)

// ProgressSummary is what the lesson player needs: the set of completed
// lessons and the derived percentage.
type ProgressSummary struct {
	CompletedLessons []string `json:"completedLessons"`
	Progress         int      `json:"progress"`
}

// MarkLessonComplete idempotently records lessonID as completed by userID.
// Re-marking an already completed lesson is a no-op. The returned flag is
// true only when this call transitioned the course from incomplete to
// complete, so the completion notification fires at most once per
// (course, user) for a given lesson count.
func MarkLessonComplete(courseID, lessonID, userID string) (completedCourse bool, err error) {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCourseNotFound
		}
		return false, err
	}

	var progress models.Progress
	lookupErr := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&progress).Error

	if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		progress = models.Progress{
			CourseID:         courseID,
			UserID:           userID,
			CompletedLessons: []string{lessonID},
			LastUpdated:      time.Now(),
		}
		if err := database.DB.Create(&progress).Error; err != nil {
			return false, err
		}
		return course.Lessons > 0 && int64(1) >= course.Lessons, nil
	}
	if lookupErr != nil {
		return false, lookupErr
	}

	if progress.HasLesson(lessonID) {
		return false, nil
	}

	wasComplete := course.Lessons > 0 && int64(len(progress.CompletedLessons)) >= course.Lessons

	progress.CompletedLessons = append(progress.CompletedLessons, lessonID)
	progress.LastUpdated = time.Now()
	if err := database.DB.Save(&progress).Error; err != nil {
		return false, err
	}

	isComplete := course.Lessons > 0 && int64(len(progress.CompletedLessons)) >= course.Lessons
	return isComplete && !wasComplete, nil
}

// GetUserProgress returns the user's progress in a course. A missing record
// yields the zero summary, never an error.
func GetUserProgress(courseID, userID string) ProgressSummary {
	summary := ProgressSummary{CompletedLessons: []string{}}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return summary
	}

	var progress models.Progress
	if err := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&progress).Error; err != nil {
		return summary
	}

	if progress.CompletedLessons != nil {
		summary.CompletedLessons = progress.CompletedLessons
	}
	summary.Progress = ProgressPercent(int64(len(summary.CompletedLessons)), course.Lessons)
	return summary
}

// IsLessonCompleted reports whether the user has completed one lesson.
func IsLessonCompleted(courseID, lessonID, userID string) bool {
	var progress models.Progress
	if err := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&progress).Error; err != nil {
		return false
	}
	return progress.HasLesson(lessonID)
}

// ProgressPercent derives round(completed/total*100) bounded to [0, 100],
// with 0 for an empty course.
func ProgressPercent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
