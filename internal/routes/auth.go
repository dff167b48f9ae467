package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", middleware.AuthRateLimit(), handlers.Register)
	r.POST("/login", middleware.AuthRateLimit(), handlers.Login)

	// OAuth
	r.GET("/google", handlers.GoogleLogin)
	r.GET("/google/callback", handlers.GoogleCallback)

	r.GET("/me", middleware.AuthMiddleware(), handlers.Me)
}
