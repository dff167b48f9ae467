package services

import (
	"testing"

	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMarkLessonComplete_Idempotent(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c1_prog", Title: "Go", InstructorID: "t", Lessons: 3})

	completed, err := MarkLessonComplete("c1_prog", "l1", "u1_prog")
	assert.NoError(t, err)
	assert.False(t, completed)

	// Re-marking the same lesson changes nothing
	completed, err = MarkLessonComplete("c1_prog", "l1", "u1_prog")
	assert.NoError(t, err)
	assert.False(t, completed)

	summary := GetUserProgress("c1_prog", "u1_prog")
	assert.Equal(t, []string{"l1"}, summary.CompletedLessons)
	assert.Equal(t, 33, summary.Progress)

	assert.True(t, IsLessonCompleted("c1_prog", "l1", "u1_prog"))
	assert.False(t, IsLessonCompleted("c1_prog", "l2", "u1_prog"))
}

func TestMarkLessonComplete_TransitionFiresOnce(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c2_prog", Title: "SQL", InstructorID: "t", Lessons: 2})

	completed, err := MarkLessonComplete("c2_prog", "l1", "u2_prog")
	assert.NoError(t, err)
	assert.False(t, completed)

	// Final lesson crosses the threshold
	completed, err = MarkLessonComplete("c2_prog", "l2", "u2_prog")
	assert.NoError(t, err)
	assert.True(t, completed)

	// Extra lesson beyond the count must not re-fire
	completed, err = MarkLessonComplete("c2_prog", "l3", "u2_prog")
	assert.NoError(t, err)
	assert.False(t, completed)
}

func TestMarkLessonComplete_SingleLessonCourse(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c3_prog", Title: "Intro", InstructorID: "t", Lessons: 1})

	completed, err := MarkLessonComplete("c3_prog", "only", "u3_prog")
	assert.NoError(t, err)
	assert.True(t, completed)
}

func TestMarkLessonComplete_EmptyCourseNeverCompletes(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c4_prog", Title: "Empty", InstructorID: "t", Lessons: 0})

	completed, err := MarkLessonComplete("c4_prog", "l1", "u4_prog")
	assert.NoError(t, err)
	assert.False(t, completed)
}

func TestMarkLessonComplete_CourseNotFound(t *testing.T) {
	SetupTestDB()

	_, err := MarkLessonComplete("missing", "l1", "u5_prog")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetUserProgress_DefaultsWhenAbsent(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c6_prog2", Title: "Go", InstructorID: "t", Lessons: 5})

	summary := GetUserProgress("c6_prog2", "never_enrolled")
	assert.Equal(t, []string{}, summary.CompletedLessons)
	assert.Equal(t, 0, summary.Progress)

	// Unknown course also yields the zero summary
	summary = GetUserProgress("missing", "whoever")
	assert.Equal(t, []string{}, summary.CompletedLessons)
	assert.Equal(t, 0, summary.Progress)
}

func TestProgressPercent_Bounds(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(0, 0))
	assert.Equal(t, 0, ProgressPercent(3, 0))
	assert.Equal(t, 0, ProgressPercent(0, 10))
	assert.Equal(t, 33, ProgressPercent(1, 3))
	assert.Equal(t, 67, ProgressPercent(2, 3))
	assert.Equal(t, 100, ProgressPercent(3, 3))
	// More completions than lessons (lesson deleted after completion) clamps
	assert.Equal(t, 100, ProgressPercent(5, 3))
}
