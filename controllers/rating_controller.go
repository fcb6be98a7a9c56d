package controllers

import (
	"net/http"

	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RatingController serves the rating sub-resource of one catalog entity.
// The same handlers are registered under /attractions, /activities and
// /accommodations with the matching target type.
type RatingController struct {
	db         *gorm.DB
	targetType string
}

func NewRatingController(targetType string) *RatingController {
	return &RatingController{db: utils.GetDB(), targetType: targetType}
}

func (rc *RatingController) targetExists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	var err error
	switch rc.targetType {
	case models.TargetAttraction:
		err = tx.Model(&models.Attraction{}).Where("id = ?", id).Count(&count).Error
	case models.TargetActivity:
		err = tx.Model(&models.Activity{}).Where("id = ?", id).Count(&count).Error
	case models.TargetAccommodation:
		err = tx.Model(&models.Accommodation{}).Where("id = ?", id).Count(&count).Error
	}
	return count > 0, err
}

func (rc *RatingController) aggregate(id uint) (avg float64, count int64) {
	var row struct {
		Avg   float64
		Count int64
	}
	rc.db.Model(&models.Rating{}).
		Where("target_type = ? AND target_id = ?", rc.targetType, id).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Scan(&row)
	return row.Avg, row.Count
}

// GET /<entity>/:id/rating
// Returns the caller's own score plus the aggregate.
func (rc *RatingController) GetRating(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}

	exists, err := rc.targetExists(rc.db, id)
	if err != nil {
		utils.LogError(err, "rating target check")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to check target"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": rc.targetType + " not found"})
		return
	}

	var own *int
	var rating models.Rating
	if err := rc.db.Where("tourist_id = ? AND target_type = ? AND target_id = ?", touristID, rc.targetType, id).
		First(&rating).Error; err == nil {
		own = &rating.Score
	}

	avg, count := rc.aggregate(id)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"own_score":     own,
		"avg_rating":    avg,
		"ratings_count": count,
	}})
}

type addRatingRequest struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

// POST /<entity>/:id/rating
// Upsert keyed by (tourist, target): submitting twice updates the same row.
func (rc *RatingController) AddRating(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	var req addRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	err := rc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := rc.targetExists(tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return gorm.ErrRecordNotFound
		}

		var rating models.Rating
		err = tx.Where("tourist_id = ? AND target_type = ? AND target_id = ?", touristID, rc.targetType, id).
			First(&rating).Error
		if err == gorm.ErrRecordNotFound {
			rating = models.Rating{
				TouristID:  touristID,
				TargetType: rc.targetType,
				TargetID:   id,
				Score:      req.Score,
			}
			return tx.Create(&rating).Error
		}
		if err != nil {
			return err
		}
		rating.Score = req.Score
		return tx.Save(&rating).Error
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": rc.targetType + " not found"})
		return
	}
	if err != nil {
		utils.LogError(err, "rating upsert")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to save rating"})
		return
	}

	avg, count := rc.aggregate(id)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"own_score":     req.Score,
		"avg_rating":    avg,
		"ratings_count": count,
	}})
}
