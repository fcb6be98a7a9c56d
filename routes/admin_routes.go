package routes

import (
	"sayohat/controllers"
	"sayohat/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(r *gin.Engine) {
	admins := controllers.NewAdminController()
	tourists := controllers.NewTouristController()
	arrivals := controllers.NewArrivalController()
	reports := controllers.NewReportController()

	adminGroup := r.Group("/admin", middleware.AdminAuthMiddleware())
	{
		adminGroup.GET("/admins", admins.List)
		adminGroup.POST("/admins", admins.Create)
		adminGroup.PUT("/admins/:id", admins.Update)
		adminGroup.DELETE("/admins/:id", admins.Delete)

		adminGroup.GET("/tourists", tourists.List)
		adminGroup.GET("/tourists/:id", tourists.Get)
		adminGroup.PUT("/tourists/:id", tourists.Update)
		adminGroup.DELETE("/tourists/:id", tourists.Delete)

		adminGroup.GET("/arrivals", arrivals.List)
		adminGroup.GET("/arrivals/:id", arrivals.Get)
		adminGroup.POST("/arrivals", arrivals.Create)
		adminGroup.PUT("/arrivals/:id", arrivals.Update)
		adminGroup.DELETE("/arrivals/:id", arrivals.Delete)

		adminGroup.GET("/reports/overview", reports.Overview)
	}
}
