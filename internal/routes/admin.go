package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/handlers"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

func RegisterAdminRoutes(r gin.IRouter) {
	r.Use(middleware.AuthMiddleware(), middleware.AdminOnly())

	r.GET("/stats", handlers.AdminGetStats)
	r.GET("/activity", handlers.AdminGetRecentActivity)

	r.GET("/users", handlers.AdminListUsers)
	r.PUT("/users/:id/role", handlers.AdminUpdateUserRole)
	r.DELETE("/users/:id", handlers.AdminDeleteUser)

	r.GET("/courses", handlers.AdminListCourses)
	r.PUT("/courses/:id/status", handlers.AdminUpdateCourseStatus)
	r.DELETE("/courses/:id", handlers.AdminDeleteCourse)

	r.GET("/audit-logs", handlers.AdminGetAuditLogs)
}
