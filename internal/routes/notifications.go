package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

func RegisterNotificationRoutes(r gin.IRouter) {
	r.Use(middleware.AuthMiddleware())

	r.GET("", handlers.GetNotifications)
	r.GET("/unread-count", handlers.GetUnreadCount)
	r.PUT("/:id/read", handlers.MarkNotificationRead)
	r.PUT("/read-all", handlers.MarkAllNotificationsRead)
	r.DELETE("/:id", handlers.DeleteNotification)

	r.POST("/direct", handlers.SendDirectMessage)
}
