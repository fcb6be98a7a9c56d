package controllers

import (
	"net/http"
	"strings"

	"sayohat/services"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	service *services.SearchService
}

func NewSearchController() *SearchController {
	return &SearchController{service: services.NewSearchService(utils.GetDB())}
}

// filtersFromQuery builds the filter bag from query params. Categories may
// arrive repeated (?category=a&category=b) or comma-separated.
func filtersFromQuery(c *gin.Context) services.SearchFilters {
	page, pageSize := utils.ParsePagination(c)

	var categories []string
	for _, v := range c.QueryArray("category") {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				categories = append(categories, part)
			}
		}
	}

	return services.SearchFilters{
		Query:      c.Query("q"),
		Categories: categories,
		Region:     c.Query("region"),
		PriceMin:   utils.ParseFloatSafe(c.Query("price_min")),
		PriceMax:   utils.ParseFloatSafe(c.Query("price_max")),
		MinRating:  utils.ParseFloatSafe(c.Query("min_rating")),
		Latitude:   utils.ParseFloatSafe(c.Query("lat")),
		Longitude:  utils.ParseFloatSafe(c.Query("lon")),
		RadiusKm:   utils.ParseFloatSafe(c.Query("radius_km")),
		SortBy:     c.DefaultQuery("sort_by", "rating"),
		SortDir:    c.DefaultQuery("sort_dir", "desc"),
		Page:       page,
		PageSize:   pageSize,
	}
}

// GET /search/attractions
func (sc *SearchController) Attractions(c *gin.Context) {
	result, err := sc.service.SearchAttractions(filtersFromQuery(c))
	if err != nil {
		utils.LogError(err, "search attractions")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// GET /search/accommodations
func (sc *SearchController) Accommodations(c *gin.Context) {
	result, err := sc.service.SearchAccommodations(filtersFromQuery(c))
	if err != nil {
		utils.LogError(err, "search accommodations")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
