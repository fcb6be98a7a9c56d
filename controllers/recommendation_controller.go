package controllers

import (
	"net/http"

	"sayohat/services"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	service *services.RecommendationService
}

func NewRecommendationController() *RecommendationController {
	return &RecommendationController{service: services.NewRecommendationService(utils.GetDB())}
}

const defaultRecommendLimit = 10

func recommendLimit(c *gin.Context) int {
	limit := utils.ParseIntSafe(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = defaultRecommendLimit
	}
	if limit > 50 {
		limit = 50
	}
	return limit
}

// GET /user/recommendations/activities
func (rc *RecommendationController) Activities(c *gin.Context) {
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	items, err := rc.service.RecommendActivities(touristID, recommendLimit(c))
	if err != nil {
		utils.LogError(err, "recommend activities")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to build recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": items})
}

// GET /user/recommendations/attractions
func (rc *RecommendationController) Attractions(c *gin.Context) {
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	items, err := rc.service.RecommendAttractions(touristID, recommendLimit(c))
	if err != nil {
		utils.LogError(err, "recommend attractions")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to build recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": items})
}
