package middleware

import (
	"net/http"
	"strings"
	"time"

	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
)

// Sliding window applied to admin sessions on every successful check.
const AdminSessionTTL = 2 * time.Hour

// ExtractBearerToken pulls the credential out of the Authorization header.
// Both "Bearer <token>" and a bare "<token>" are accepted; the web admin
// legacy client sends X-Session-ID instead, which wins when allowLegacy is set.
func ExtractBearerToken(c *gin.Context, allowLegacy bool) string {
	if allowLegacy {
		if v := strings.TrimSpace(c.GetHeader("X-Session-ID")); v != "" {
			return v
		}
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return header
}

func unauthorized(c *gin.Context, msg string) {
	// logout:true tells the client to drop its stored token and re-login.
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": msg, "logout": true})
	c.Abort()
}

// AdminAuthMiddleware resolves an admin session by its id (the uuid primary
// key), rejects expired rows and slides the expiry forward. Lookup failures of
// any kind are logged and answered with 401: auth errs closed, never 500.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		token := ExtractBearerToken(c, true)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Missing Authorization header"})
			c.Abort()
			return
		}

		db := utils.GetDB()
		var session models.AdminSession
		if err := db.Where("id = ?", token).First(&session).Error; err != nil {
			utils.LogError(err, "admin session lookup")
			unauthorized(c, "Session not found")
			return
		}
		now := time.Now()
		if !session.ExpiresAt.After(now) {
			unauthorized(c, "Session expired")
			return
		}

		newExpiry := now.Add(AdminSessionTTL)
		if err := db.Model(&models.AdminSession{}).Where("id = ?", session.ID).
			Updates(map[string]interface{}{"expires_at": newExpiry, "last_activity_at": now}).Error; err != nil {
			utils.LogError(err, "admin session slide")
			unauthorized(c, "Session not found")
			return
		}
		c.Header("X-Session-Expires", newExpiry.Format(time.RFC3339))

		c.Set("admin_id", int(session.AdminID))
		c.Set("admin_session_id", session.ID)
		c.Next()
	}
}

// TouristAuthMiddleware resolves a tourist session by its token column.
// Tourist sessions do not slide; only last activity is touched.
func TouristAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		token := ExtractBearerToken(c, false)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": "Missing Authorization header"})
			c.Abort()
			return
		}

		db := utils.GetDB()
		var session models.TouristSession
		if err := db.Where("token = ?", token).First(&session).Error; err != nil {
			utils.LogError(err, "tourist session lookup")
			unauthorized(c, "Session not found")
			return
		}
		if !session.ExpiresAt.After(time.Now()) {
			unauthorized(c, "Session expired")
			return
		}

		db.Model(&models.TouristSession{}).Where("id = ?", session.ID).
			UpdateColumn("last_activity_at", time.Now())

		c.Set("tourist_id", int(session.TouristID))
		c.Set("tourist_session_token", session.Token)
		c.Next()
	}
}
