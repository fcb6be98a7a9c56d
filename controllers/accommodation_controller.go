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

var accommodationTypes = map[string]bool{
	"hotel":      true,
	"guesthouse": true,
	"hostel":     true,
	"apartment":  true,
}

type AccommodationController struct {
	db *gorm.DB
}

func NewAccommodationController() *AccommodationController {
	return &AccommodationController{db: utils.GetDB()}
}

var accommodationSortFields = map[string]string{
	"name":       "accommodations.name",
	"price":      "accommodations.price_per_night",
	"rooms":      "accommodations.rooms",
	"views":      "accommodations.views",
	"created_at": "accommodations.created_at",
	"rating":     "avg_rating",
}

type accommodationRow struct {
	models.Accommodation
	AvgRating    float64 `json:"avg_rating"`
	RatingsCount int64   `json:"ratings_count"`
}

// GET /accommodations
// Query: ?type=&region=&search=&price_min=&price_max=&sort_by=&sort_dir=&page=&page_size=
func (ac *AccommodationController) List(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	q := ac.db.Model(&models.Accommodation{}).
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = accommodations.id AND ratings.deleted_at IS NULL",
			models.TargetAccommodation).
		Where("accommodations.is_active = ?", true).
		Group("accommodations.id")

	if t := strings.ToLower(strings.TrimSpace(c.Query("type"))); t != "" {
		if !accommodationTypes[t] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "type must be one of: hotel, guesthouse, hostel, apartment"})
			return
		}
		q = q.Where("accommodations.type = ?", t)
	}
	if region := strings.TrimSpace(c.Query("region")); region != "" {
		q = q.Where("LOWER(accommodations.region) = ?", strings.ToLower(region))
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		p := "%" + strings.ToLower(search) + "%"
		q = q.Where("(accommodations.name ILIKE ? OR accommodations.description ILIKE ?)", p, p)
	}
	if v := utils.ParseFloatSafe(c.Query("price_min")); v > 0 {
		q = q.Where("accommodations.price_per_night >= ?", v)
	}
	if v := utils.ParseFloatSafe(c.Query("price_max")); v > 0 {
		q = q.Where("accommodations.price_per_night <= ?", v)
	}

	var total int64
	countQ := ac.db.Table("(?) AS matched", q.Session(&gorm.Session{}).Select("accommodations.id"))
	if err := countQ.Count(&total).Error; err != nil {
		utils.LogError(err, "accommodation list count")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to count accommodations"})
		return
	}

	sortCol, ok := accommodationSortFields[c.DefaultQuery("sort_by", "created_at")]
	if !ok {
		sortCol = "accommodations.created_at"
	}
	dir := "DESC"
	if c.Query("sort_dir") == "asc" {
		dir = "ASC"
	}

	var rows []accommodationRow
	if err := q.Select("accommodations.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count").
		Order(sortCol + " " + dir + ", accommodations.id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		utils.LogError(err, "accommodation list")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch accommodations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": paginated(page, pageSize, total, rows)})
}

// GET /accommodations/:id
func (ac *AccommodationController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var row accommodationRow
	err := ac.db.Model(&models.Accommodation{}).
		Select("accommodations.*, COALESCE(AVG(ratings.score), 0) AS avg_rating, COUNT(ratings.id) AS ratings_count").
		Joins("LEFT JOIN ratings ON ratings.target_type = ? AND ratings.target_id = accommodations.id AND ratings.deleted_at IS NULL",
			models.TargetAccommodation).
		Where("accommodations.id = ?", id).
		Group("accommodations.id").
		First(&row).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "accommodation not found"})
		return
	}

	ac.db.Model(&models.Accommodation{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	row.Views++

	c.JSON(http.StatusOK, gin.H{"success": true, "result": row})
}

type accommodationPayload struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Type          string   `json:"type" binding:"required"`
	Region        string   `json:"region" binding:"required"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	PricePerNight float64  `json:"price_per_night"`
	Rooms         int      `json:"rooms"`
	Amenities     []string `json:"amenities"`
	IsActive      *bool    `json:"is_active"`
}

// POST /admin/accommodations
func (ac *AccommodationController) Create(c *gin.Context) {
	var req accommodationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	t := strings.ToLower(strings.TrimSpace(req.Type))
	if !accommodationTypes[t] {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "validation failed",
			"fields": gin.H{"type": "type must be one of: hotel, guesthouse, hostel, apartment"}})
		return
	}

	amenities, _ := json.Marshal(req.Amenities)
	accommodation := models.Accommodation{
		Name:          req.Name,
		Description:   req.Description,
		Type:          t,
		Region:        req.Region,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		PricePerNight: req.PricePerNight,
		Rooms:         req.Rooms,
		Amenities:     datatypes.JSON(amenities),
		IsActive:      true,
	}
	if req.IsActive != nil {
		accommodation.IsActive = *req.IsActive
	}

	if err := ac.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&accommodation).Error
	}); err != nil {
		utils.LogError(err, "accommodation create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create accommodation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": accommodation})
}

// PUT /admin/accommodations/:id
func (ac *AccommodationController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req accommodationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	t := strings.ToLower(strings.TrimSpace(req.Type))
	if !accommodationTypes[t] {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "validation failed",
			"fields": gin.H{"type": "type must be one of: hotel, guesthouse, hostel, apartment"}})
		return
	}

	var accommodation models.Accommodation
	if err := ac.db.First(&accommodation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "accommodation not found"})
		return
	}

	amenities, _ := json.Marshal(req.Amenities)
	accommodation.Name = req.Name
	accommodation.Description = req.Description
	accommodation.Type = t
	accommodation.Region = req.Region
	accommodation.Address = req.Address
	accommodation.Latitude = req.Latitude
	accommodation.Longitude = req.Longitude
	accommodation.PricePerNight = req.PricePerNight
	accommodation.Rooms = req.Rooms
	accommodation.Amenities = datatypes.JSON(amenities)
	if req.IsActive != nil {
		accommodation.IsActive = *req.IsActive
	}

	if err := ac.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&accommodation).Error
	}); err != nil {
		utils.LogError(err, "accommodation update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update accommodation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": accommodation})
}

// DELETE /admin/accommodations/:id
func (ac *AccommodationController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var accommodation models.Accommodation
	if err := ac.db.First(&accommodation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "accommodation not found"})
		return
	}

	err := ac.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetAccommodation, id).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("accommodation_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Accommodation{}, id).Error
	})
	if err != nil {
		utils.LogError(err, "accommodation delete")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to delete accommodation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"id": id}})
}

// POST /admin/accommodations/:id/image
func (ac *AccommodationController) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var accommodation models.Accommodation
	if err := ac.db.First(&accommodation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "accommodation not found"})
		return
	}

	file, ok := readImageForm(c)
	if !ok {
		return
	}
	url, err := saveUploadedImage(c, file, "accommodations")
	if err != nil {
		utils.LogError(err, "accommodation image upload")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to save file"})
		return
	}

	if err := ac.db.Model(&accommodation).Update("image_url", url).Error; err != nil {
		utils.LogError(err, "accommodation image save")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update accommodation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"url": url}})
}
