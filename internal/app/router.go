package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// public routes, no login required
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)

		// certificate verification is deliberately unauthenticated
		public.GET("/certificates/verify/:code", c.certificate.Verify)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.POST("/enrollments", c.enrollment.Enroll)
		authGroup.GET("/enrollments", c.enrollment.ListEnrollments)
		authGroup.PUT("/enrollments/:id/progress", c.enrollment.UpdateProgress)
		authGroup.PUT("/enrollments/:id/complete", c.enrollment.Complete)

		authGroup.POST("/certificates", c.certificate.Issue)
		authGroup.GET("/certificates", c.certificate.ListCertificates)

		authGroup.GET("/notifications", c.notification.ListNotifications)
		authGroup.PUT("/notifications/:id/read", c.notification.MarkRead)

		teacherGroup := authGroup.Group("")
		teacherGroup.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacherGroup.POST("/courses", c.course.CreateCourse)
			teacherGroup.DELETE("/courses/:id", c.course.DeleteCourse)
		}

		adminGroup := authGroup.Group("")
		adminGroup.Use(middleware.RoleMiddleware(model.Admin))
		{
			adminGroup.PUT("/certificates/:id/revoke", c.certificate.Revoke)
		}
	}
}
