package routes

import (
	"sayohat/controllers"
	"sayohat/middleware"

	"github.com/gin-gonic/gin"
)

func SetupDiscoveryRoutes(r *gin.Engine) {
	search := controllers.NewSearchController()
	recommendations := controllers.NewRecommendationController()

	searchGroup := r.Group("/search")
	{
		searchGroup.GET("/attractions", search.Attractions)
		searchGroup.GET("/accommodations", search.Accommodations)
	}

	recGroup := r.Group("/user/recommendations", middleware.TouristAuthMiddleware())
	{
		recGroup.GET("/activities", recommendations.Activities)
		recGroup.GET("/attractions", recommendations.Attractions)
	}
}
