package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityController struct {
	db *gorm.DB
}

func NewActivityController() *ActivityController {
	return &ActivityController{db: utils.GetDB()}
}

var activitySortFields = map[string]string{
	"name":       "activities.name",
	"price":      "activities.price",
	"capacity":   "activities.capacity",
	"views":      "activities.views",
	"created_at": "activities.created_at",
	"rating":     "avg_rating",
}

type activityRow struct {
	models.Activity
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int64   `json:"ratings_count"`
}

// GET /activities
// Query: ?category=&season=&search=&requires_booking=&sort_by=&sort_dir=&page=&page_size=
func (ac *ActivityController) List(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	q := ac.db.Model(&models.Activity{}).
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = activities.id AND ratings.deleted_at IS NULL",
			models.TargetActivity).
		Where("activities.is_active = ?", true).
		Group("activities.id")

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("LOWER(activities.category) = ?", strings.ToLower(category))
	}
	if season := strings.TrimSpace(c.Query("season")); season != "" {
		q = q.Where("LOWER(activities.season) = ?", strings.ToLower(season))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		p := "%" + strings.ToLower(search) + "%"
		q = q.Where("(activities.name ILIKE ? OR activities.description ILIKE ?)", p, p)
	}
	if v := c.Query("requires_booking"); v == "true" || v == "false" {
		q = q.Where("activities.requires_booking = ?", v == "true")
	}

	var total int64
	countQ := ac.db.Table("(?) AS matched", q.Session(&gorm.Session{}).Select("activities.id"))
	if err := countQ.Count(&total).Error; err != nil {
		utils.LogError(err, "activity list count")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to count activities"})
		return
	}

	sortCol, ok := activitySortFields[c.DefaultQuery("sort_by", "created_at")]
	if !ok {
		sortCol = "activities.created_at"
	}
	dir := "DESC"
	if c.Query("sort_dir") == "asc" {
		dir = "ASC"
	}

	var rows []activityRow
	if err := q.Select("activities.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count").
		Order(sortCol + " " + dir + ", activities.id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		utils.LogError(err, "activity list")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": paginated(page, pageSize, total, rows)})
}

// GET /activities/:id
func (ac *ActivityController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var row activityRow
	err := ac.db.Model(&models.Activity{}).
		Select("activities.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count").
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = activities.id AND ratings.deleted_at IS NULL",
			models.TargetActivity).
		Where("activities.id = ?", id).
		Group("activities.id").
		First(&row).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "activity not found"})
		return
	}

	ac.db.Model(&models.Activity{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	row.Views++

	c.JSON(http.StatusOK, gin.H{"success": true, "result": row})
}

type activityPayload struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" binding:"required"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Price           float64  `json:"price"`
	Capacity        int      `json:"capacity" binding:"required,min=1"`
	IsRecurring     bool     `json:"is_recurring"`
	RequiresBooking bool     `json:"requires_booking"`
	Season          string   `json:"season"`
	Tags            []string `json:"tags"`
	IsActive        *bool    `json:"is_active"`
}

// POST /admin/activities
func (ac *ActivityController) Create(c *gin.Context) {
	var req activityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	tags, _ := json.Marshal(req.Tags)
	activity := models.Activity{
		Name:            req.Name,
		Description:     req.Description,
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Price:           req.Price,
		Capacity:        req.Capacity,
		IsRecurring:     req.IsRecurring,
		RequiresBooking: req.RequiresBooking,
		Season:          strings.ToLower(strings.TrimSpace(req.Season)),
		Tags:            datatypes.JSON(tags),
		IsActive:        true,
	}
	if req.IsActive != nil {
		activity.IsActive = *req.IsActive
	}

	if err := ac.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&activity).Error
	}); err != nil {
		utils.LogError(err, "activity create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create activity"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": activity})
}

// PUT /admin/activities/:id
func (ac *ActivityController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req activityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	var activity models.Activity
	if err := ac.db.First(&activity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "activity not found"})
		return
	}

	tags, _ := json.Marshal(req.Tags)
	activity.Name = req.Name
	activity.Description = req.Description
	activity.Category = strings.ToLower(strings.TrimSpace(req.Category))
	activity.Latitude = req.Latitude
	activity.Longitude = req.Longitude
	activity.Price = req.Price
	activity.Capacity = req.Capacity
	activity.IsRecurring = req.IsRecurring
	activity.RequiresBooking = req.RequiresBooking
	activity.Season = strings.ToLower(strings.TrimSpace(req.Season))
	activity.Tags = datatypes.JSON(tags)
	if req.IsActive != nil {
		activity.IsActive = *req.IsActive
	}

	if err := ac.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&activity).Error
	}); err != nil {
		utils.LogError(err, "activity update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": activity})
}

// DELETE /admin/activities/:id
func (ac *ActivityController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var activity models.Activity
	if err := ac.db.First(&activity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "activity not found"})
		return
	}

	err := ac.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetActivity, id).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Activity{}, id).Error
	})
	if err != nil {
		utils.LogError(err, "activity delete")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to delete activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"id": id}})
}

// POST /admin/activities/:id/image
func (ac *ActivityController) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var activity models.Activity
	if err := ac.db.First(&activity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "activity not found"})
		return
	}

	file, ok := readImageForm(c)
	if !ok {
		return
	}
	url, err := saveUploadedImage(c, file, "activities")
	if err != nil {
		utils.LogError(err, "activity image upload")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to save file"})
		return
	}

	if err := ac.db.Model(&activity).Update("image_url", url).Error; err != nil {
		utils.LogError(err, "activity image save")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"url": url}})
}
