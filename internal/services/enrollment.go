package services

import (
	"errors"
	"log"
	"time"

	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"gorm.io/gorm"
)

var ErrCourseNotFound = errors.New("course not found")

// Enroll records userID as a student of courseID. The enrollment insert and
// the students counter bump run in one transaction, with the counter updated
// atomically in SQL rather than read-modify-write. Enrolling twice is not an
// error: the existing enrollment is returned and created is false.
func Enroll(courseID, userID string) (enrollment *models.Enrollment, created bool, err error) {
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCourseNotFound
		}
		return nil, false, err
	}

	// Advisory fast path; the composite unique index is the real guard.
	var existing models.Enrollment
	lookupErr := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&existing).Error
	if lookupErr == nil {
		return &existing, false, nil
	}
	if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return nil, false, lookupErr
	}

	row := models.Enrollment{
		CourseID:   courseID,
		UserID:     userID,
		EnrolledAt: time.Now(),
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", courseID).
			UpdateColumn("students", gorm.Expr("students + ?", 1)).Error
	})
	if err != nil {
		// A concurrent identical call can beat us to the insert; the unique
		// index rejects ours, so surface the winner instead of an error.
		var winner models.Enrollment
		if database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&winner).Error == nil {
			return &winner, false, nil
		}
		return nil, false, err
	}

	return &row, true, nil
}

// IsEnrolled is a pure existence query. Store errors are treated as
// "not enrolled" so callers can offer enrollment instead of blocking.
func IsEnrolled(courseID, userID string) bool {
	var count int64
	err := database.DB.Model(&models.Enrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	if err != nil {
		log.Printf("enrollment check failed for course %s user %s: %v", courseID, userID, err)
		return false
	}
	return count > 0
}

// ListUserEnrollments returns a user's enrollments with their courses joined.
func ListUserEnrollments(userID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := database.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

// StudentProgress is one enrolled student's standing in a course.
type StudentProgress struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PhotoURL           string    `json:"photoURL"`
	EnrolledAt         time.Time `json:"enrolledAt"`
	Completed          int       `json:"completed"`
	TotalLessons       int64     `json:"totalLessons"`
	ProgressPercentage int       `json:"progressPercentage"`
}

// CourseStudentReport pairs a course with the progress of everyone in it.
type CourseStudentReport struct {
	Course   models.Course     `json:"course"`
	Students []StudentProgress `json:"students"`
}

// TeacherStudentProgress joins, for every course owned by teacherID, every
// enrollment with the student's identity and progress record. This is a
// point-read fan-out over courses x enrollments; fine at small scale.
func TeacherStudentProgress(teacherID string) ([]CourseStudentReport, error) {
	var courses []models.Course
	if err := database.DB.Where("instructor_id = ?", teacherID).Find(&courses).Error; err != nil {
		return nil, err
	}

	reports := make([]CourseStudentReport, 0, len(courses))
	for _, course := range courses {
		var enrollments []models.Enrollment
		if err := database.DB.Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil {
			return nil, err
		}

		students := make([]StudentProgress, 0, len(enrollments))
		for _, enrollment := range enrollments {
			entry := StudentProgress{
				ID:           enrollment.UserID,
				Name:         "Unknown User",
				EnrolledAt:   enrollment.EnrolledAt,
				TotalLessons: course.Lessons,
			}

			var user models.User
			if err := database.DB.First(&user, "id = ?", enrollment.UserID).Error; err == nil {
				entry.Name = user.DisplayName
				entry.Email = user.Email
				entry.PhotoURL = user.PhotoURL
			}

			var progress models.Progress
			if err := database.DB.Where("course_id = ? AND user_id = ?", course.ID, enrollment.UserID).
				First(&progress).Error; err == nil {
				entry.Completed = len(progress.CompletedLessons)
			}
			entry.ProgressPercentage = ProgressPercent(int64(entry.Completed), course.Lessons)

			students = append(students, entry)
		}

		reports = append(reports, CourseStudentReport{Course: course, Students: students})
	}

	return reports, nil
}
