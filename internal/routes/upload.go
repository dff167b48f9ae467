package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

func RegisterUploadRoutes(r gin.IRouter) {
	r.Use(middleware.AuthMiddleware())

	r.POST("/profile-photo", handlers.UploadProfilePhoto)

	teacher := r.Group("")
	teacher.Use(middleware.TeacherOnly())
	{
		teacher.POST("/course-cover", handlers.UploadCourseCover)
		teacher.POST("/lesson-video", handlers.UploadLessonVideo)
		teacher.POST("/lesson-material", handlers.UploadLessonMaterial)
	}
}
