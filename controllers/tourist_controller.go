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

type TouristController struct {
	db *gorm.DB
}

func NewTouristController() *TouristController {
	return &TouristController{db: utils.GetDB()}
}

// GET /admin/tourists
// Query: ?search=&nationality=&page=&page_size=
func (tc *TouristController) List(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	q := tc.db.Model(&models.Tourist{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?", pattern, pattern)
	}
	if nat := strings.TrimSpace(c.Query("nationality")); nat != "" {
		q = q.Where("LOWER(nationality) = ?", strings.ToLower(nat))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.LogError(err, "tourist list count")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to count tourists"})
		return
	}

	var tourists []models.Tourist
	if err := q.Order("created_at DESC, id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&tourists).Error; err != nil {
		utils.LogError(err, "tourist list")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch tourists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": paginated(page, pageSize, total, tourists)})
}

// GET /admin/tourists/:id
func (tc *TouristController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var tourist models.Tourist
	if err := tc.db.First(&tourist, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "tourist not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": tourist})
}

type touristUpdatePayload struct {
	FullName    *string  `json:"full_name"`
	Nationality *string  `json:"nationality"`
	Language    *string  `json:"language"`
	Hobbies     []string `json:"hobbies"`
}

func applyTouristUpdate(tourist *models.Tourist, req touristUpdatePayload) error {
	if req.FullName != nil {
		tourist.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Nationality != nil {
		tourist.Nationality = strings.TrimSpace(*req.Nationality)
	}
	if req.Language != nil {
		tourist.Language = strings.TrimSpace(*req.Language)
	}
	if req.Hobbies != nil {
		raw, err := json.Marshal(req.Hobbies)
		if err != nil {
			return err
		}
		tourist.Hobbies = datatypes.JSON(raw)
	}
	return nil
}

// PUT /admin/tourists/:id
func (tc *TouristController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req touristUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	var tourist models.Tourist
	if err := tc.db.First(&tourist, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "tourist not found"})
		return
	}
	if err := applyTouristUpdate(&tourist, req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "invalid hobbies"})
		return
	}
	if err := tc.db.Save(&tourist).Error; err != nil {
		utils.LogError(err, "tourist update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update tourist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": tourist})
}

// DELETE /admin/tourists/:id
// Removes the tourist together with the rows that reference them.
func (tc *TouristController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var tourist models.Tourist
	if err := tc.db.First(&tourist, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "tourist not found"})
		return
	}

	err := tc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tourist_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tourist_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tourist_id = ?", id).Delete(&models.Arrival{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tourist_id = ?", id).Delete(&models.UserPreference{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tourist_id = ?", id).Delete(&models.TouristSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tourist{}, id).Error
	})
	if err != nil {
		utils.LogError(err, "tourist delete")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to delete tourist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"id": id}})
}

// GET /user/profile
func (tc *TouristController) Profile(c *gin.Context) {
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	var tourist models.Tourist
	if err := tc.db.First(&tourist, touristID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "tourist not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": tourist})
}

// PUT /user/profile
func (tc *TouristController) UpdateProfile(c *gin.Context) {
	touristID := currentTouristID(c)
	if touristID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	var req touristUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	var tourist models.Tourist
	if err := tc.db.First(&tourist, touristID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "tourist not found"})
		return
	}
	if err := applyTouristUpdate(&tourist, req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "invalid hobbies"})
		return
	}
	if err := tc.db.Save(&tourist).Error; err != nil {
		utils.LogError(err, "profile update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": tourist})
}
