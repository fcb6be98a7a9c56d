package controllers

import (
	"net/http"
	"strings"

	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	db *gorm.DB
}

func NewAdminController() *AdminController {
	return &AdminController{db: utils.GetDB()}
}

var adminRoles = map[string]bool{
	"superadmin": true,
	"manager":    true,
}

// GET /admin/admins
func (ac *AdminController) List(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	var total int64
	if err := ac.db.Model(&models.Admin{}).Count(&total).Error; err != nil {
		utils.LogError(err, "admin list count")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to count admins"})
		return
	}

	var admins []models.Admin
	if err := ac.db.Order("created_at ASC, id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&admins).Error; err != nil {
		utils.LogError(err, "admin list")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to fetch admins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": paginated(page, pageSize, total, admins)})
}

type adminCreatePayload struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// POST /admin/admins
func (ac *AdminController) Create(c *gin.Context) {
	var req adminCreatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = "manager"
	}
	if !adminRoles[role] {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "role must be superadmin or manager"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var count int64
	if err := ac.db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.LogError(err, "admin create lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create admin"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "result": nil, "error": "admin with this email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError(err, "admin create hash")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create admin"})
		return
	}

	admin := models.Admin{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := ac.db.Create(&admin).Error; err != nil {
		utils.LogError(err, "admin create")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to create admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": admin})
}

type adminUpdatePayload struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// PUT /admin/admins/:id
func (ac *AdminController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req adminUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	var admin models.Admin
	if err := ac.db.First(&admin, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "admin not found"})
		return
	}

	if req.FullName != nil {
		admin.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !adminRoles[role] {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "role must be superadmin or manager"})
			return
		}
		admin.Role = role
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "password must be at least 8 characters"})
			return
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.LogError(err, "admin update hash")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update admin"})
			return
		}
		admin.Password = hash
	}

	if err := ac.db.Save(&admin).Error; err != nil {
		utils.LogError(err, "admin update")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to update admin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": admin})
}

// DELETE /admin/admins/:id
// An admin cannot remove their own account: that would orphan the session
// that authorized the request.
func (ac *AdminController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if selfID, exists := c.Get("admin_id"); exists {
		if v, okCast := selfID.(int); okCast && uint(v) == id {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "result": nil, "error": "cannot delete own account"})
			return
		}
	}

	var admin models.Admin
	if err := ac.db.First(&admin, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "admin not found"})
		return
	}

	err := ac.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", id).Delete(&models.AdminSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Admin{}, id).Error
	})
	if err != nil {
		utils.LogError(err, "admin delete")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "failed to delete admin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"id": id}})
}
