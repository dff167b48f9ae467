package services

import (
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite DB for testing. The shared
// cache keeps one DB per process, so tables are wiped on every call.
func SetupTestDB() {
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
	)
	for _, table := range []string{"users", "courses", "lessons", "enrollments", "progress", "ratings", "notifications"} {
		database.DB.Exec("DELETE FROM " + table)
	}
}
