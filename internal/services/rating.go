package services

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrRatingNotFound = errors.New("rating not found")
)

// RatingInput is the payload of a submit/update.
type RatingInput struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review"`
	Title  string `json:"title"`
}

// RatingStats are the denormalized course-level aggregates.
type RatingStats struct {
	AverageRating      float64          `json:"averageRating"`
	TotalRatings       int64            `json:"totalRatings"`
	RatingDistribution map[string]int64 `json:"ratingDistribution"`
	TotalReviews       int64            `json:"totalReviews"`
}

func emptyDistribution() map[string]int64 {
	return map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
}

// roundTo1 rounds half-up to one decimal place.
func roundTo1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// SubmitRating upserts the caller's rating for a course. One row per
// (course, user): an existing row is updated in place, then the course
// aggregates are recomputed from the full rating set.
func SubmitRating(courseID, userID string, in RatingInput) (*models.Rating, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var rating models.Rating
	err := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&rating).Error
	switch {
	case err == nil:
		rating.Rating = in.Rating
		rating.Review = in.Review
		rating.Title = in.Title
		if err := database.DB.Save(&rating).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{
			CourseID: courseID,
			UserID:   userID,
			Rating:   in.Rating,
			Review:   in.Review,
			Title:    in.Title,
		}
		if err := database.DB.Create(&rating).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := RecomputeCourseRating(courseID); err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteRating removes a rating row and recomputes the course aggregates.
func DeleteRating(ratingID, courseID string) error {
	result := database.DB.Where("id = ? AND course_id = ?", ratingID, courseID).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return RecomputeCourseRating(courseID)
}

// CourseRatingStats computes aggregates over the full rating set of a
// course. Deliberately a full recompute, not incremental counters.
func CourseRatingStats(courseID string) (RatingStats, error) {
	stats := RatingStats{RatingDistribution: emptyDistribution()}

	var ratings []models.Rating
	if err := database.DB.Where("course_id = ?", courseID).Find(&ratings).Error; err != nil {
		return stats, err
	}
	if len(ratings) == 0 {
		return stats, nil
	}

	var sum int64
	for _, r := range ratings {
		sum += int64(r.Rating)
		if r.Rating >= 1 && r.Rating <= 5 {
			stats.RatingDistribution[strconv.Itoa(r.Rating)]++
		}
		if strings.TrimSpace(r.Review) != "" {
			stats.TotalReviews++
		}
	}

	stats.TotalRatings = int64(len(ratings))
	stats.AverageRating = roundTo1(float64(sum) / float64(stats.TotalRatings))
	return stats, nil
}

// RecomputeCourseRating writes the freshly computed aggregates back onto the
// course row.
func RecomputeCourseRating(courseID string) error {
	stats, err := CourseRatingStats(courseID)
	if err != nil {
		return err
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return err
	}

	now := time.Now()
	course.Rating = stats.AverageRating
	course.TotalRatings = stats.TotalRatings
	course.TotalReviews = stats.TotalReviews
	course.RatingDistribution = stats.RatingDistribution
	course.LastRatingUpdate = &now
	return database.DB.Save(&course).Error
}

// GetUserRating returns the caller's rating for a course, nil when absent.
func GetUserRating(courseID, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := database.DB.Where("course_id = ? AND user_id = ?", courseID, userID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// CourseRatings lists a course's ratings newest-first with the rater's
// display identity joined. A failed identity join falls back to a
// placeholder and never aborts the list.
func CourseRatings(courseID string, limit int) ([]models.Rating, error) {
	if limit <= 0 {
		limit = 50
	}

	var ratings []models.Rating
	if err := database.DB.Where("course_id = ?", courseID).
		Order("created_at desc").
		Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, err
	}

	for i := range ratings {
		var user models.User
		if err := database.DB.First(&user, "id = ?", ratings[i].UserID).Error; err != nil {
			log.Printf("rater lookup failed for rating %s: %v", ratings[i].ID, err)
			ratings[i].User = &models.User{DisplayName: "Anonymous User"}
			continue
		}
		user.Password = ""
		ratings[i].User = &user
	}

	return ratings, nil
}

// CourseRatingReport pairs a course with its computed stats.
type CourseRatingReport struct {
	Course models.Course `json:"course"`
	Stats  RatingStats   `json:"stats"`
}

// TeacherRatingAnalytics aggregates rating stats across all of a teacher's
// courses, including a rating-count-weighted overall average.
type TeacherRatingAnalytics struct {
	TotalCourses       int64                `json:"totalCourses"`
	TotalRatings       int64                `json:"totalRatings"`
	TotalReviews       int64                `json:"totalReviews"`
	AverageRating      float64              `json:"averageRating"`
	RatingDistribution map[string]int64     `json:"ratingDistribution"`
	Courses            []CourseRatingReport `json:"courses"`
}

func GetTeacherRatingAnalytics(teacherID string) (TeacherRatingAnalytics, error) {
	analytics := TeacherRatingAnalytics{
		RatingDistribution: emptyDistribution(),
		Courses:            []CourseRatingReport{},
	}

	var courses []models.Course
	if err := database.DB.Where("instructor_id = ?", teacherID).Find(&courses).Error; err != nil {
		return analytics, err
	}

	var weightedSum float64
	for _, course := range courses {
		stats, err := CourseRatingStats(course.ID)
		if err != nil {
			return analytics, err
		}

		analytics.TotalCourses++
		analytics.TotalRatings += stats.TotalRatings
		analytics.TotalReviews += stats.TotalReviews
		for star, count := range stats.RatingDistribution {
			analytics.RatingDistribution[star] += count
		}
		weightedSum += stats.AverageRating * float64(stats.TotalRatings)

		analytics.Courses = append(analytics.Courses, CourseRatingReport{Course: course, Stats: stats})
	}

	if analytics.TotalRatings > 0 {
		analytics.AverageRating = roundTo1(weightedSum / float64(analytics.TotalRatings))
	}
	return analytics, nil
}

// RecentReviews returns the latest written reviews across all courses, with
// reviewer and course joined best-effort.
type ReviewEntry struct {
	models.Rating
	CourseTitle string `json:"courseTitle"`
}

func RecentReviews(limit int) ([]ReviewEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var ratings []models.Rating
	if err := database.DB.Where("review <> ''").
		Order("created_at desc").
		Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, err
	}

	entries := make([]ReviewEntry, 0, len(ratings))
	for _, r := range ratings {
		entry := ReviewEntry{Rating: r, CourseTitle: "Unknown Course"}

		var user models.User
		if err := database.DB.First(&user, "id = ?", r.UserID).Error; err == nil {
			user.Password = ""
			entry.User = &user
		} else {
			entry.User = &models.User{DisplayName: "Anonymous User"}
		}

		var course models.Course
		if err := database.DB.First(&course, "id = ?", r.CourseID).Error; err == nil {
			entry.CourseTitle = course.Title
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// TopRatedCourses lists rated courses best-first.
func TopRatedCourses(limit int) ([]models.Course, error) {
	if limit <= 0 {
		limit = 10
	}
	var courses []models.Course
	err := database.DB.Where("rating > 0").
		Order("rating desc").
		Order("total_ratings desc").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}
