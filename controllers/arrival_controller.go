package controllers

import (
	"net/http"
	"strings"
	"time"

	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ArrivalController struct {
	db *gorm.DB
}

func NewArrivalController() *ArrivalController {
	return &ArrivalController{db: utils.GetDB()}
}

var arrivalSortFields = map[string]string{
	"arrival_date": "arrival_date",
	"entry_point":  "entry_point",
	"group_size":   "group_size",
	"created_at":   "created_at",
}

// GET /admin/arrivals
// Query: ?tourist_id=&entry_point=&from=&to=&sort_by=&sort_dir=&page=&page_size=
// from/to are YYYY-MM-DD and bound the arrival date.
func (ac *ArrivalController) List(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	q := ac.db.Model(&models.Arrival{})
	if v := utils.ParseIntSafe(c.Query("tourist_id")); v > 0 {
		q = q.Where("tourist_id = ?", v)
	}
	if ep := strings.TrimSpace(c.Query("entry_point")); ep != "" {
		q = q.Where("LOWER(entry_point) = ?", strings.ToLower(ep))
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "from must be YYYY-MM-DD"})
			return
		}
		q = q.Where("arrival_date >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "to must be YYYY-MM-DD"})
			return
		}
		q = q.Where("arrival_date < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.LogError(err, "arrival list count")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to count arrivals"})
		return
	}

	sortCol, ok := arrivalSortFields[c.DefaultQuery("sort_by", "arrival_date")]
	if !ok {
		sortCol = "arrival_date"
	}
	dir := "DESC"
	if c.Query("sort_dir") == "asc" {
		dir = "ASC"
	}

	var arrivals []models.Arrival
	if err := q.Order(sortCol + " " + dir + ", id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&arrivals).Error; err != nil {
		utils.LogError(err, "arrival list")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch arrivals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": paginated(page, pageSize, total, arrivals)})
}

// GET /admin/arrivals/:id
func (ac *ArrivalController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var arrival models.Arrival
	if err := ac.db.First(&arrival, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "arrival not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": arrival})
}

type arrivalPayload struct {
	TouristID     uint    `json:"tourist_id" binding:"required"`
	ArrivalDate   string  `json:"arrival_date" binding:"required"` // YYYY-MM-DD
	DepartureDate *string `json:"departure_date"`
	EntryPoint    string  `json:"entry_point" binding:"required"`
	Purpose       string  `json:"purpose"`
	GroupSize     int     `json:"group_size"`
}

func (p arrivalPayload) toModel() (models.Arrival, string) {
	arrival := models.Arrival{
		TouristID:  p.TouristID,
		EntryPoint: p.EntryPoint,
		Purpose:    strings.ToLower(strings.TrimSpace(p.Purpose)),
		GroupSize:  p.GroupSize,
	}
	if arrival.GroupSize < 1 {
		arrival.GroupSize = 1
	}
	if arrival.Purpose == "" {
		arrival.Purpose = "leisure"
	}

	t, err := time.Parse("2006-01-02", p.ArrivalDate)
	if err != nil {
		return arrival, "arrival_date must be YYYY-MM-DD"
	}
	arrival.ArrivalDate = t

	if p.DepartureDate != nil && *p.DepartureDate != "" {
		d, err := time.Parse("2006-01-02", *p.DepartureDate)
		if err != nil {
			return arrival, "departure_date must be YYYY-MM-DD"
		}
		if d.Before(arrival.ArrivalDate) {
			return arrival, "departure_date must not precede arrival_date"
		}
		arrival.DepartureDate = &d
	}
	return arrival, ""
}

// POST /admin/arrivals
func (ac *ArrivalController) Create(c *gin.Context) {
	var req arrivalPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	arrival, msg := req.toModel()
	if msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": msg})
		return
	}

	err := ac.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tourist{}).Where("id = ?", arrival.TouristID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&arrival).Error
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "tourist not found"})
		return
	}
	if err != nil {
		utils.LogError(err, "arrival create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create arrival"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": arrival})
}

// PUT /admin/arrivals/:id
func (ac *ArrivalController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req arrivalPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	updated, msg := req.toModel()
	if msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": msg})
		return
	}

	var arrival models.Arrival
	if err := ac.db.First(&arrival, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "arrival not found"})
		return
	}

	arrival.TouristID = updated.TouristID
	arrival.ArrivalDate = updated.ArrivalDate
	arrival.DepartureDate = updated.DepartureDate
	arrival.EntryPoint = updated.EntryPoint
	arrival.Purpose = updated.Purpose
	arrival.GroupSize = updated.GroupSize

	if err := ac.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&arrival).Error
	}); err != nil {
		utils.LogError(err, "arrival update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update arrival"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": arrival})
}

// DELETE /admin/arrivals/:id
func (ac *ArrivalController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var arrival models.Arrival
	if err := ac.db.First(&arrival, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "arrival not found"})
		return
	}
	if err := ac.db.Delete(&models.Arrival{}, id).Error; err != nil {
		utils.LogError(err, "arrival delete")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to delete arrival"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"id": id}})
}
