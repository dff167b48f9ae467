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
	"github.com/learnhub/learnhub-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	SetupTestDB()

	body, _ := json.Marshal(gin.H{
		"displayName": "New User",
		"email":       "new_auth@example.com",
		"password":    "supersecret",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, models.RoleStudent, response.User.Role)

	// Token resolves back to the created user
	claims, err := utils.ValidateToken(response.Token)
	assert.NoError(t, err)
	assert.Equal(t, response.User.ID, claims.UserID)

	// Password never leaks through the JSON surface
	assert.NotContains(t, w.Body.String(), "supersecret")

	// Login with the same credentials
	body, _ = json.Marshal(gin.H{"email": "new_auth@example.com", "password": "supersecret"})
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	SetupTestDB()

	body, _ := json.Marshal(gin.H{
		"displayName": "Victim",
		"email":       "victim_auth@example.com",
		"password":    "rightpassword",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	Register(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	body, _ = json.Marshal(gin.H{"email": "victim_auth@example.com", "password": "wrongpassword"})
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	SetupTestDB()

	register := func() *httptest.ResponseRecorder {
		body, _ := json.Marshal(gin.H{
			"displayName": "Dup",
			"email":       "dup_auth@example.com",
			"password":    "password123",
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
		c.Request.Header.Set("Content-Type", "application/json")
		Register(c)
		return w
	}

	assert.Equal(t, http.StatusCreated, register().Code)
	assert.Equal(t, http.StatusConflict, register().Code)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	SetupTestDB()

	body, _ := json.Marshal(gin.H{
		"displayName": "Short",
		"email":       "short_auth@example.com",
		"password":    "abc",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "me_auth", DisplayName: "Me", Email: "me_auth@example.com"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/auth/me", nil)
	c.Set("userId", "me_auth")

	Me(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User models.User `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "me_auth", response.User.ID)
}
