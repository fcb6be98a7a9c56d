package routes

import (
	"sayohat/controllers"
	"sayohat/middleware"
	"sayohat/models"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers the three catalog entities. Reads are public,
// writes and image upload require an admin session, ratings and comments a
// tourist session.
func SetupCatalogRoutes(r *gin.Engine) {
	attractions := controllers.NewAttractionController()
	activities := controllers.NewActivityController()
	accommodations := controllers.NewAccommodationController()

	type catalogEntity struct {
		path       string
		targetType string
		list       gin.HandlerFunc
		get        gin.HandlerFunc
		create     gin.HandlerFunc
		update     gin.HandlerFunc
		remove     gin.HandlerFunc
		upload     gin.HandlerFunc
	}

	entities := []catalogEntity{
		{"/attractions", models.TargetAttraction, attractions.List, attractions.Get, attractions.Create, attractions.Update, attractions.Delete, attractions.UploadImage},
		{"/activities", models.TargetActivity, activities.List, activities.Get, activities.Create, activities.Update, activities.Delete, activities.UploadImage},
		{"/accommodations", models.TargetAccommodation, accommodations.List, accommodations.Get, accommodations.Create, accommodations.Update, accommodations.Delete, accommodations.UploadImage},
	}

	for _, e := range entities {
		ratings := controllers.NewRatingController(e.targetType)
		comments := controllers.NewCommentController(e.targetType)

		g := r.Group(e.path)
		{
			g.GET("", e.list)
			g.GET("/:id", e.get)
			g.GET("/:id/comments", comments.List)

			tourist := g.Group("", middleware.TouristAuthMiddleware())
			{
				tourist.GET("/:id/rating", ratings.GetRating)
				tourist.POST("/:id/rating", ratings.AddRating)
				tourist.POST("/:id/comments", comments.Create)
			}
		}

		admin := r.Group("/admin"+e.path, middleware.AdminAuthMiddleware())
		{
			admin.POST("", e.create)
			admin.PUT("/:id", e.update)
			admin.DELETE("/:id", e.remove)
			admin.POST("/:id/image", e.upload)
		}
	}
}
