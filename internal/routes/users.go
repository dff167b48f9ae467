package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	r.GET("/:id", handlers.GetProfile)

	r.PUT("/me", middleware.AuthMiddleware(), handlers.UpdateProfile)
	r.PUT("/me/preferences", middleware.AuthMiddleware(), handlers.UpdatePreferences)
	r.GET("/me/enrollments", middleware.AuthMiddleware(), handlers.GetMyEnrollments)
}
