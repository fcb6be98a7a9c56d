package routes

import (
	"sayohat/controllers"
	"sayohat/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.Engine) {
	tourists := controllers.NewTouristController()
	preferences := controllers.NewPreferenceController()

	userGroup := r.Group("/user", middleware.TouristAuthMiddleware())
	{
		userGroup.GET("/profile", tourists.Profile)
		userGroup.PUT("/profile", tourists.UpdateProfile)
		userGroup.GET("/preferences", preferences.Get)
		userGroup.PUT("/preferences", preferences.Update)
		userGroup.POST("/track-action", preferences.TrackAction)
	}
}
