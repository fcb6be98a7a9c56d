package controllers

import (
	"net/http"
	"time"

	"sayohat/services"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
)

type AdminAuthController struct {
	sessions *services.SessionService
}

func NewAdminAuthController() *AdminAuthController {
	return &AdminAuthController{sessions: services.NewSessionService(utils.GetDB())}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /admin/auth/login
func (ac *AdminAuthController) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	session, err := ac.sessions.LoginAdmin(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if err == services.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Invalid email or password"})
			return
		}
		utils.LogError(err, "admin login")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{
		"session_id": session.ID,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}})
}

// POST /admin/auth/logout
func (ac *AdminAuthController) Logout(c *gin.Context) {
	sessionID := c.GetString("admin_session_id")
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Not authenticated"})
		return
	}
	if err := ac.sessions.LogoutAdmin(sessionID); err != nil {
		utils.LogError(err, "admin logout")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "result": nil, "error": "Failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": gin.H{"logout": true}})
}
