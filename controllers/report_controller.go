package controllers

import (
	"net/http"
	"strings"

	"sayohat/services"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	service *services.ReportService
}

func NewReportController() *ReportController {
	return &ReportController{service: services.NewReportService(utils.GetDB())}
}

// GET /admin/reports/overview?window=month
func (rc *ReportController) Overview(c *gin.Context) {
	window := strings.ToLower(c.DefaultQuery("window", "month"))
	if !services.ValidReportWindow(window) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "window must be one of: week, month, quarter, year"})
		return
	}

	overview, err := rc.service.GetOverview(window)
	if err != nil {
		utils.LogError(err, "report overview")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": overview})
}
