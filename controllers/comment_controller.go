package controllers

import (
	"net/http"
	"strings"

	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommentController serves the comment sub-resource of one catalog entity,
// registered per target kind like RatingController.
type CommentController struct {
	db         *gorm.DB
	targetType string
}

func NewCommentController(targetType string) *CommentController {
	return &CommentController{db: utils.GetDB(), targetType: targetType}
}

type commentPayload struct {
	Transportation string `json:"transportation" binding:"required"`
	Fee            string `json:"fee" binding:"required"`
	Services       string `json:"services" binding:"required"`
	RoadProblems   string `json:"road_problems" binding:"required"`
	PriceChange    string `json:"price_change" binding:"required"`
	Other          string `json:"other"`
}

// renderCommentBody concatenates the structured fields into the free-text
// display form. Label order is fixed; the optional field is appended only
// when present.
func renderCommentBody(p commentPayload) string {
	parts := []string{
		"Transportation: " + p.Transportation,
		"Fee: " + p.Fee,
		"Services: " + p.Services,
		"Road problems: " + p.RoadProblems,
		"Price change: " + p.PriceChange,
	}
	if strings.TrimSpace(p.Other) != "" {
		parts = append(parts, "Other: "+p.Other)
	}
	return strings.Join(parts, "\n")
}

func (cc *CommentController) targetExists(id uint) (bool, error) {
	var count int64
	var err error
	switch cc.targetType {
	case models.TargetAttraction:
		err = cc.db.Model(&models.Attraction{}).Where("id = ?", id).Count(&count).Error
	case models.TargetActivity:
		err = cc.db.Model(&models.Activity{}).Where("id = ?", id).Count(&count).Error
	case models.TargetAccommodation:
		err = cc.db.Model(&models.Accommodation{}).Where("id = ?", id).Count(&count).Error
	}
	return count > 0, err
}

// POST /<entity>/:id/comments
func (cc *CommentController) Create(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	var req commentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	exists, err := cc.targetExists(id)
	if err != nil {
		utils.LogError(err, "comment target check")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to check target"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": cc.targetType + " not found"})
		return
	}

	comment := models.Comment{
		TouristID:      touristID,
		Transportation: req.Transportation,
		Fee:            req.Fee,
		Services:       req.Services,
		RoadProblems:   req.RoadProblems,
		PriceChange:    req.PriceChange,
		Other:          req.Other,
		Body:           renderCommentBody(req),
	}
	switch cc.targetType {
	case models.TargetAttraction:
		comment.AttractionID = &id
	case models.TargetActivity:
		comment.ActivityID = &id
	case models.TargetAccommodation:
		comment.AccommodationID = &id
	}

	if err := cc.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&comment).Error
	}); err != nil {
		utils.LogError(err, "comment create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": comment})
}

// GET /<entity>/:id/comments
func (cc *CommentController) List(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, pageSize := utils.ParsePagination(c)

	column := map[string]string{
		models.TargetAttraction:    "attraction_id",
		models.TargetActivity:      "activity_id",
		models.TargetAccommodation: "accommodation_id",
	}[cc.targetType]

	q := cc.db.Model(&models.Comment{}).Where(column+" = ?", id)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.LogError(err, "comment list count")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to count comments"})
		return
	}

	var comments []models.Comment
	if err := q.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&comments).Error; err != nil {
		utils.LogError(err, "comment list")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": paginated(page, pageSize, total, comments)})
}
