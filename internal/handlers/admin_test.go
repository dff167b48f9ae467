package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAdminGetStats(t *testing.T) {
	SetupTestDB()

	for _, seed := range []struct {
		id   string
		role models.Role
	}{
		{"admin1_stats", models.RoleAdmin},
		{"t1_stats", models.RoleTeacher},
		{"t2_stats", models.RoleTeacher},
		{"s1_stats", models.RoleStudent},
		{"s2_stats", models.RoleStudent},
		{"s3_stats", models.RoleStudent},
		{"s4_stats", models.RoleStudent},
		{"s5_stats", models.RoleStudent},
	} {
		database.DB.Create(&models.User{ID: seed.id, DisplayName: seed.id, Email: seed.id + "@example.com", Role: seed.role})
	}

	database.DB.Create(&models.Course{ID: "c1_stats", Title: "A", InstructorID: "t1_stats"})
	database.DB.Create(&models.Course{ID: "c2_stats", Title: "B", InstructorID: "t1_stats"})
	database.DB.Create(&models.Course{ID: "c3_stats", Title: "C", InstructorID: "t2_stats", Status: models.CourseStatusPending})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/admin/stats", nil)
	c.Set("userId", "admin1_stats")

	AdminGetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalUsers     int64 `json:"totalUsers"`
		TotalStudents  int64 `json:"totalStudents"`
		TotalTeachers  int64 `json:"totalTeachers"`
		TotalCourses   int64 `json:"totalCourses"`
		PendingCourses int64 `json:"pendingCourses"`
		ActiveUsers    int64 `json:"activeUsers"`
	}
	json.Unmarshal(w.Body.Bytes(), &stats)

	assert.Equal(t, int64(8), stats.TotalUsers)
	assert.Equal(t, int64(5), stats.TotalStudents)
	assert.Equal(t, int64(2), stats.TotalTeachers)
	assert.Equal(t, int64(3), stats.TotalCourses)
	assert.Equal(t, int64(1), stats.PendingCourses)
	// round(8 * 0.6) = 5
	assert.Equal(t, int64(5), stats.ActiveUsers)
}

func TestAdminGetRecentActivity(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "t1_act", DisplayName: "Ada", Email: "t1_act@example.com", Role: models.RoleTeacher})

	// Old user outside the 7-day window
	old := models.User{ID: "old_act", DisplayName: "Old", Email: "old_act@example.com"}
	database.DB.Create(&old)
	database.DB.Model(&old).UpdateColumn("created_at", time.Now().AddDate(0, 0, -30))

	database.DB.Create(&models.Course{ID: "c1_act", Title: "Fresh Course", InstructorID: "t1_act"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/admin/activity", nil)

	AdminGetRecentActivity(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Activity []struct {
			Type     string `json:"type"`
			Title    string `json:"title"`
			Subtitle string `json:"subtitle"`
		} `json:"activity"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Len(t, response.Activity, 2)
	types := map[string]string{}
	for _, item := range response.Activity {
		types[item.Type] = item.Title
	}
	assert.Equal(t, "Ada", types["user_joined"])
	assert.Equal(t, "Fresh Course", types["course_created"])
}

func TestAdminUpdateUserRole(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "admin2_role", DisplayName: "Admin", Email: "admin2_role@example.com", Role: models.RoleAdmin})
	database.DB.Create(&models.User{ID: "target_role", DisplayName: "Target", Email: "target_role@example.com", Role: models.RoleStudent})

	body, _ := json.Marshal(gin.H{"role": "teacher"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/api/admin/users/target_role/role", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "target_role"}}
	c.Set("userId", "admin2_role")

	AdminUpdateUserRole(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	database.DB.First(&user, "id = ?", "target_role")
	assert.Equal(t, models.RoleTeacher, user.Role)

	// Audit trail written
	var entry models.AdminAuditLog
	assert.NoError(t, database.DB.Where("action = ?", models.ActionUpdateUserRole).First(&entry).Error)
	assert.Equal(t, "admin2_role", entry.AdminID)
	assert.Equal(t, "target_role", entry.TargetID)
	assert.Contains(t, entry.Details, "teacher")
}

func TestAdminUpdateUserRole_RejectsUnknownRole(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "target2_role", DisplayName: "Target", Email: "target2_role@example.com"})

	body, _ := json.Marshal(gin.H{"role": "superuser"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/api/admin/users/target2_role/role", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "target2_role"}}
	c.Set("userId", "admin3_role")

	AdminUpdateUserRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminDeleteUser_LeavesRelatedRows(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "victim_del", DisplayName: "Victim", Email: "victim_del@example.com"})
	database.DB.Create(&models.Course{ID: "c1_del", Title: "Go", InstructorID: "t_del"})
	database.DB.Create(&models.Enrollment{CourseID: "c1_del", UserID: "victim_del"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/admin/users/victim_del", nil)
	c.Params = gin.Params{{Key: "id", Value: "victim_del"}}
	c.Set("userId", "admin4_del")

	AdminDeleteUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var userCount int64
	database.DB.Model(&models.User{}).Where("id = ?", "victim_del").Count(&userCount)
	assert.Equal(t, int64(0), userCount)

	// No cascade: the enrollment survives and resolves via fallbacks
	var enrollmentCount int64
	database.DB.Model(&models.Enrollment{}).Where("user_id = ?", "victim_del").Count(&enrollmentCount)
	assert.Equal(t, int64(1), enrollmentCount)
}

func TestAdminDeleteUser_CannotDeleteSelf(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "admin5_del", DisplayName: "Admin", Email: "admin5_del@example.com", Role: models.RoleAdmin})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/api/admin/users/admin5_del", nil)
	c.Params = gin.Params{{Key: "id", Value: "admin5_del"}}
	c.Set("userId", "admin5_del")

	AdminDeleteUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUpdateCourseStatus(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Course{ID: "c2_del", Title: "Pending", InstructorID: "t_status", Status: models.CourseStatusPending})

	body, _ := json.Marshal(gin.H{"status": "published"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/api/admin/courses/c2_del/status", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "c2_del"}}
	c.Set("userId", "admin6_status")

	AdminUpdateCourseStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var course models.Course
	database.DB.First(&course, "id = ?", "c2_del")
	assert.Equal(t, models.CourseStatusPublished, course.Status)

	var entry models.AdminAuditLog
	assert.NoError(t, database.DB.Where("action = ?", models.ActionUpdateCourseStatus).First(&entry).Error)
	assert.Equal(t, "c2_del", entry.TargetID)
}

func TestAdminListCourses_UnknownInstructorFallback(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "t2_list", DisplayName: "Known Teacher", Email: "t2_list@example.com", Role: models.RoleTeacher})
	database.DB.Create(&models.Course{ID: "c3_list", Title: "Known", InstructorID: "t2_list"})
	database.DB.Create(&models.Course{ID: "c4_list", Title: "Orphan", InstructorID: "deleted_teacher"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/admin/courses", nil)

	AdminListCourses(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Courses []struct {
			ID             string `json:"id"`
			InstructorName string `json:"instructorName"`
		} `json:"courses"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Len(t, response.Courses, 2)
	names := map[string]string{}
	for _, course := range response.Courses {
		names[course.ID] = course.InstructorName
	}
	assert.Equal(t, "Known Teacher", names["c3_list"])
	assert.Equal(t, "Unknown Instructor", names["c4_list"])
}
