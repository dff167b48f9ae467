package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestSubmitRating_UpdatesCourseAggregates(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c1_rh", Title: "Go", InstructorID: "t1_rh"})

	body, _ := json.Marshal(gin.H{"rating": 4, "review": "Good pacing", "title": "Recommended"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/courses/c1_rh/ratings", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "c1_rh"}}
	c.Set("userId", "u1_rh")

	SubmitRating(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var course models.Course
	database.DB.First(&course, "id = ?", "c1_rh")
	assert.Equal(t, 4.0, course.Rating)
	assert.Equal(t, int64(1), course.TotalRatings)
	assert.Equal(t, int64(1), course.TotalReviews)
}

func TestSubmitRating_OutOfRangeRejected(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c2_rh", Title: "Go", InstructorID: "t2_rh"})

	body, _ := json.Marshal(gin.H{"rating": 9})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/courses/c2_rh/ratings", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "c2_rh"}}
	c.Set("userId", "u2_rh")

	SubmitRating(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRating_AdminOverride(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "admin_rh", DisplayName: "Admin", Email: "admin_rh@example.com", Role: models.RoleAdmin})
	database.DB.Create(&models.Course{ID: "c3_rh", Title: "Go", InstructorID: "t3_rh"})

	rating, err := services.SubmitRating("c3_rh", "u3_rh", services.RatingInput{Rating: 1, Review: "spam"})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/courses/c3_rh/ratings/"+rating.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: "c3_rh"}, {Key: "ratingId", Value: rating.ID}}
	c.Set("userId", "admin_rh")

	DeleteRating(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.Rating{}).Where("course_id = ?", "c3_rh").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteRating_StrangerForbidden(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c4_rh", Title: "Go", InstructorID: "t4_rh"})

	rating, err := services.SubmitRating("c4_rh", "owner_rh", services.RatingInput{Rating: 5})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/courses/c4_rh/ratings/"+rating.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: "c4_rh"}, {Key: "ratingId", Value: rating.ID}}
	c.Set("userId", "stranger_rh")

	DeleteRating(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetCourseRatingStats(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c5_rh", Title: "Go", InstructorID: "t5_rh"})
	_, _ = services.SubmitRating("c5_rh", "ua_rh", services.RatingInput{Rating: 5})
	_, _ = services.SubmitRating("c5_rh", "ub_rh", services.RatingInput{Rating: 4, Review: "nice"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/courses/c5_rh/ratings/stats", nil)
	c.Params = gin.Params{{Key: "id", Value: "c5_rh"}}

	GetCourseRatingStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Stats services.RatingStats `json:"stats"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 4.5, response.Stats.AverageRating)
	assert.Equal(t, int64(2), response.Stats.TotalRatings)
	assert.Equal(t, int64(1), response.Stats.TotalReviews)
}
