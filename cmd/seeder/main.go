package main

import (
	"fmt"
	"log"

	"github.com/learnhub/learnhub-backend/internal/config"
	"github.com/learnhub/learnhub-backend/internal/database"
	"github.com/learnhub/learnhub-backend/internal/models"
	"github.com/learnhub/learnhub-backend/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
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

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	log.Println("👤 Seeding users...")
	teacher := models.User{
		DisplayName: "Ada Moreno",
		Email:       "ada@learnhub.dev",
		Password:    string(hash),
		Role:        models.RoleTeacher,
	}
	if err := database.DB.Where("email = ?", teacher.Email).FirstOrCreate(&teacher).Error; err != nil {
		log.Fatalf("❌ Failed to seed teacher: %v", err)
	}

	student := models.User{
		DisplayName: "Sam Okafor",
		Email:       "sam@learnhub.dev",
		Password:    string(hash),
		Role:        models.RoleStudent,
	}
	if err := database.DB.Where("email = ?", student.Email).FirstOrCreate(&student).Error; err != nil {
		log.Fatalf("❌ Failed to seed student: %v", err)
	}

	admin := models.User{
		DisplayName: "LearnHub Admin",
		Email:       "admin@learnhub.dev",
		Password:    string(hash),
		Role:        models.RoleAdmin,
	}
	if err := database.DB.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}

	log.Println("📚 Seeding courses and lessons...")
	courses := []struct {
		title       string
		description string
		category    string
		duration    string
		lessons     []string
	}{
		{
			title:       "Go for Backend Developers",
			description: "Build production HTTP services in Go, from routing to graceful shutdown.",
			category:    "Programming",
			duration:    "6-8 hours",
			lessons:     []string{"Setting Up Your Workspace", "HTTP Servers From Scratch", "Working With Databases", "Deploying To Production"},
		},
		{
			title:       "Practical SQL",
			description: "Queries, indexes and data modeling for application developers.",
			category:    "Databases",
			duration:    "4-6 hours",
			lessons:     []string{"SELECT And Friends", "Joins Explained", "Indexing Strategies"},
		},
	}

	for _, seed := range courses {
		course := models.Course{
			Title:        seed.title,
			InstructorID: teacher.ID,
		}
		result := database.DB.Where("title = ? AND instructor_id = ?", seed.title, teacher.ID).FirstOrCreate(&course)
		if result.Error != nil {
			log.Fatalf("❌ Failed to seed course %q: %v", seed.title, result.Error)
		}
		if result.RowsAffected == 0 {
			continue // already seeded
		}

		course.Description = seed.description
		course.Category = seed.category
		course.Duration = seed.duration
		course.Status = models.CourseStatusPublished
		course.Lessons = int64(len(seed.lessons))
		database.DB.Save(&course)

		for i, title := range seed.lessons {
			lesson := models.Lesson{
				CourseID: course.ID,
				Title:    title,
				Order:    int64(i + 1),
			}
			if err := database.DB.Create(&lesson).Error; err != nil {
				log.Fatalf("❌ Failed to seed lesson %q: %v", title, err)
			}
		}

		if _, _, err := services.Enroll(course.ID, student.ID); err != nil {
			log.Fatalf("❌ Failed to seed enrollment: %v", err)
		}
	}

	fmt.Println("✅ Seed complete. Login with ada@learnhub.dev / sam@learnhub.dev / admin@learnhub.dev (password123)")
}
