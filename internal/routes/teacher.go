package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

func RegisterTeacherRoutes(r gin.IRouter) {
	r.Use(middleware.AuthMiddleware(), middleware.TeacherOnly())

	r.GET("/courses", handlers.GetTeacherCourses)
	r.GET("/students", handlers.GetTeacherStudentProgress)
	r.GET("/analytics/ratings", handlers.GetTeacherRatingAnalytics)
}
