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

type AttractionController struct {
	db *gorm.DB
}

func NewAttractionController() *AttractionController {
	return &AttractionController{db: utils.GetDB()}
}

var attractionSortFields = map[string]string{
	"name":       "attractions.name",
	"entry_fee":  "attractions.entry_fee",
	"views":      "attractions.views",
	"created_at": "attractions.created_at",
	"rating":     "avg_rating",
}

type attractionRow struct {
	models.Attraction
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int64   `json:"ratings_count"`
}

// GET /attractions
// Query: ?category=&region=&search=&sort_by=&sort_dir=&page=&page_size=
func (ac *AttractionController) List(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	q := ac.db.Model(&models.Attraction{}).
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = attractions.id AND ratings.deleted_at IS NULL",
			models.TargetAttraction).
		Where("attractions.is_active = ?", true).
		Group("attractions.id")

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("LOWER(attractions.category) = ?", strings.ToLower(category))
	}
	if region := strings.TrimSpace(c.Query("region")); region != "" {
		q = q.Where("LOWER(attractions.region) = ?", strings.ToLower(region))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		p := "%" + strings.ToLower(search) + "%"
		q = q.Where("(attractions.name ILIKE ? OR attractions.description ILIKE ?)", p, p)
	}

	var total int64
	countQ := ac.db.Table("(?) AS matched", q.Session(&gorm.Session{}).Select("attractions.id"))
	if err := countQ.Count(&total).Error; err != nil {
		utils.LogError(err, "attraction list count")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to count attractions"})
		return
	}

	sortCol, ok := attractionSortFields[c.DefaultQuery("sort_by", "created_at")]
	if !ok {
		sortCol = "attractions.created_at"
	}
	dir := "DESC"
	if c.Query("sort_dir") == "asc" {
		dir = "ASC"
	}

	var rows []attractionRow
	if err := q.Select("attractions.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count").
		Order(sortCol + " " + dir + ", attractions.id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		utils.LogError(err, "attraction list")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch attractions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": paginated(page, pageSize, total, rows)})
}

// GET /attractions/:id
// Public detail view. Reading it bumps the views counter; the increment is
// pushed into SQL so concurrent reads cannot lose updates.
func (ac *AttractionController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var row attractionRow
	err := ac.db.Model(&models.Attraction{}).
		Select("attractions.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count").
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = attractions.id AND ratings.deleted_at IS NULL",
			models.TargetAttraction).
		Where("attractions.id = ?", id).
		Group("attractions.id").
		First(&row).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "attraction not found"})
		return
	}

	ac.db.Model(&models.Attraction{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	row.Views++

	c.JSON(http.StatusOK, gin.H{"success": true, "result": row})
}

type attractionPayload struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required"`
	Region       string   `json:"region" binding:"required"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	EntryFee     float64  `json:"entry_fee"`
	OpeningHours string   `json:"opening_hours"`
	Tags         []string `json:"tags"`
	IsActive     *bool    `json:"is_active"`
}

// POST /admin/attractions
func (ac *AttractionController) Create(c *gin.Context) {
	var req attractionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	tags, _ := json.Marshal(req.Tags)
	attraction := models.Attraction{
		Name:         req.Name,
		Description:  req.Description,
		Category:     strings.ToLower(strings.TrimSpace(req.Category)),
		Region:       req.Region,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		EntryFee:     req.EntryFee,
		OpeningHours: req.OpeningHours,
		Tags:         datatypes.JSON(tags),
		IsActive:     true,
	}
	if req.IsActive != nil {
		attraction.IsActive = *req.IsActive
	}

	if err := ac.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&attraction).Error
	}); err != nil {
		utils.LogError(err, "attraction create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create attraction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": attraction})
}

// PUT /admin/attractions/:id
func (ac *AttractionController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req attractionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	var attraction models.Attraction
	if err := ac.db.First(&attraction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "attraction not found"})
		return
	}

	tags, _ := json.Marshal(req.Tags)
	attraction.Name = req.Name
	attraction.Description = req.Description
	attraction.Category = strings.ToLower(strings.TrimSpace(req.Category))
	attraction.Region = req.Region
	attraction.Latitude = req.Latitude
	attraction.Longitude = req.Longitude
	attraction.EntryFee = req.EntryFee
	attraction.OpeningHours = req.OpeningHours
	attraction.Tags = datatypes.JSON(tags)
	if req.IsActive != nil {
		attraction.IsActive = *req.IsActive
	}

	if err := ac.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&attraction).Error
	}); err != nil {
		utils.LogError(err, "attraction update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update attraction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": attraction})
}

// DELETE /admin/attractions/:id
// Dependent ratings and comments go first, then the row, all in one
// transaction: a failure partway leaves nothing half-deleted.
func (ac *AttractionController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var attraction models.Attraction
	if err := ac.db.First(&attraction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "attraction not found"})
		return
	}

	err := ac.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetAttraction, id).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attraction_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Attraction{}, id).Error
	})
	if err != nil {
		utils.LogError(err, "attraction delete")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to delete attraction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"id": id}})
}

// POST /admin/attractions/:id/image
func (ac *AttractionController) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var attraction models.Attraction
	if err := ac.db.First(&attraction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "attraction not found"})
		return
	}

	file, ok := readImageForm(c)
	if !ok {
		return
	}
	url, err := saveUploadedImage(c, file, "attractions")
	if err != nil {
		utils.LogError(err, "attraction image upload")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to save file"})
		return
	}

	if err := ac.db.Model(&attraction).Update("image_url", url).Error; err != nil {
		utils.LogError(err, "attraction image save")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update attraction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"url": url}})
}
