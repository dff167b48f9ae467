package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/config"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing. The shared
// cache keeps one DB per process, so tables are wiped on every call.
func SetupTestDB() {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Progress{},
		&models.Rating{},
		&models.Notification{},
		&models.AdminAuditLog{},
	)
	for _, table := range []string{"users", "courses", "lessons", "enrollments", "progress", "ratings", "notifications", "admin_audit_logs"} {
		database.DB.Exec("DELETE FROM " + table)
	}
}
