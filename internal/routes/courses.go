package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

func RegisterCourseRoutes(r gin.IRouter) {
	// Public browse
	r.GET("", handlers.GetCourses)
	r.GET("/top-rated", handlers.GetTopRatedCourses)
	r.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetCourse)
	r.GET("/:id/lessons", handlers.GetLessons)
	r.GET("/:id/lessons/:lessonId", handlers.GetLesson)
	r.GET("/:id/ratings", handlers.GetCourseRatings)
	r.GET("/:id/ratings/stats", handlers.GetCourseRatingStats)

	// Authoring (teacher or admin)
	r.POST("", middleware.AuthMiddleware(), middleware.TeacherOnly(), handlers.CreateCourse)
	r.PUT("/:id", middleware.AuthMiddleware(), middleware.TeacherOnly(), handlers.UpdateCourse)
	r.DELETE("/:id", middleware.AuthMiddleware(), middleware.TeacherOnly(), handlers.DeleteCourse)
	r.POST("/:id/lessons", middleware.AuthMiddleware(), middleware.TeacherOnly(), handlers.CreateLesson)
	r.PUT("/:id/lessons/:lessonId", middleware.AuthMiddleware(), middleware.TeacherOnly(), handlers.UpdateLesson)
	r.DELETE("/:id/lessons/:lessonId", middleware.AuthMiddleware(), middleware.TeacherOnly(), handlers.DeleteLesson)
	r.POST("/:id/announcements", middleware.AuthMiddleware(), middleware.TeacherOnly(), handlers.CreateCourseAnnouncement)

	// Enrollment and progress
	r.POST("/:id/enroll", middleware.AuthMiddleware(), handlers.EnrollCourse)
	r.GET("/:id/enrollment", middleware.AuthMiddleware(), handlers.CheckEnrollment)
	r.GET("/:id/progress", middleware.AuthMiddleware(), handlers.GetProgress)
	r.POST("/:id/lessons/:lessonId/complete", middleware.AuthMiddleware(), handlers.CompleteLesson)

	// Ratings
	r.POST("/:id/ratings", middleware.AuthMiddleware(), handlers.SubmitRating)
	r.DELETE("/:id/ratings/:ratingId", middleware.AuthMiddleware(), handlers.DeleteRating)
	r.GET("/:id/ratings/me", middleware.AuthMiddleware(), handlers.GetMyRating)
}
