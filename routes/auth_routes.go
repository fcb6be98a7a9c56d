package routes

import (
	"sayohat/controllers"
	"sayohat/middleware"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine) {
	touristAuth := controllers.NewTouristAuthController(utils.GetRedis())
	adminAuth := controllers.NewAdminAuthController()

	auth := r.Group("/auth")
	{
		auth.POST("/register", touristAuth.Register)
		auth.POST("/login", touristAuth.Login)
		auth.POST("/logout", middleware.TouristAuthMiddleware(), touristAuth.Logout)
		auth.POST("/forgot-password", touristAuth.ForgotPassword)
		auth.POST("/reset-password", touristAuth.ResetPassword)
		auth.GET("/google", touristAuth.GoogleLogin)
		auth.GET("/google/callback", touristAuth.GoogleCallback)
		auth.POST("/google/complete", touristAuth.GoogleComplete)
	}

	adminAuthGroup := r.Group("/admin/auth")
	{
		adminAuthGroup.POST("/login", adminAuth.Login)
		adminAuthGroup.POST("/logout", middleware.AdminAuthMiddleware(), adminAuth.Logout)
	}
}
