package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"sayohat/database"
	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openTestDB connects to the database named by TEST_DATABASE_DSN, falling back
// to the docker-compose defaults. Tests are skipped when no database answers.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=sayohat password=sayohat dbname=sayohat_test port=5432 sslmode=disable"
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	utils.SetDB(db)
	return db
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func seedAdmin(t *testing.T, db *gorm.DB) models.Admin {
	t.Helper()
	admin := models.Admin{
		FullName: "Auth Test Admin",
		Email:    fmt.Sprintf("admin-%d@test.local", time.Now().UnixNano()),
		Password: "unused",
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	t.Cleanup(func() {
		db.Where("admin_id = ?", admin.ID).Delete(&models.AdminSession{})
		db.Unscoped().Delete(&admin)
	})
	return admin
}

func seedTourist(t *testing.T, db *gorm.DB) models.Tourist {
	t.Helper()
	email := fmt.Sprintf("tourist-%d@test.local", time.Now().UnixNano())
	tourist := models.Tourist{FullName: "Auth Test Tourist", Email: &email}
	if err := db.Create(&tourist).Error; err != nil {
		t.Fatalf("seed tourist: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("tourist_id = ?", tourist.ID).Delete(&models.TouristSession{})
		db.Unscoped().Delete(&tourist)
	})
	return tourist
}

func TestAdminAuthExpiredSessionRejected(t *testing.T) {
	db := openTestDB(t)
	admin := seedAdmin(t, db)

	now := time.Now()
	session := models.AdminSession{
		ID:             uuid.NewString(),
		AdminID:        admin.ID,
		ExpiresAt:      now.Add(-time.Minute),
		LastActivityAt: now.Add(-3 * time.Hour),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	r := protectedRouter(AdminAuthMiddleware())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+session.ID)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
	assert.Contains(t, w.Body.String(), `"logout":true`)

	// expired rows must stay expired: the middleware must not slide them
	var after models.AdminSession
	assert.NoError(t, db.First(&after, "id = ?", session.ID).Error)
	assert.False(t, after.ExpiresAt.After(time.Now()))
}

func TestAdminAuthLiveSessionSlides(t *testing.T) {
	db := openTestDB(t)
	admin := seedAdmin(t, db)

	now := time.Now()
	session := models.AdminSession{
		ID:             uuid.NewString(),
		AdminID:        admin.ID,
		ExpiresAt:      now.Add(10 * time.Minute),
		LastActivityAt: now,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	r := protectedRouter(AdminAuthMiddleware())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("X-Session-ID", session.ID)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Session-Expires"))

	var after models.AdminSession
	assert.NoError(t, db.First(&after, "id = ?", session.ID).Error)
	assert.True(t, after.ExpiresAt.After(now.Add(AdminSessionTTL-time.Minute)))
}

func TestTouristAuthExpiredSessionRejected(t *testing.T) {
	db := openTestDB(t)
	tourist := seedTourist(t, db)

	now := time.Now()
	session := models.TouristSession{
		Token:          utils.GenerateSessionToken(),
		TouristID:      tourist.ID,
		ExpiresAt:      now.Add(-time.Minute),
		LastActivityAt: now.Add(-time.Hour),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	r := protectedRouter(TouristAuthMiddleware())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
	assert.Contains(t, w.Body.String(), `"logout":true`)
}

func TestTouristAuthLiveSessionAccepted(t *testing.T) {
	db := openTestDB(t)
	tourist := seedTourist(t, db)

	now := time.Now()
	session := models.TouristSession{
		Token:          utils.GenerateSessionToken(),
		TouristID:      tourist.ID,
		ExpiresAt:      now.Add(24 * time.Hour),
		LastActivityAt: now.Add(-time.Hour),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	r := protectedRouter(TouristAuthMiddleware())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// tourist sessions never slide, only the activity stamp moves
	var after models.TouristSession
	assert.NoError(t, db.First(&after, "token = ?", session.Token).Error)
	assert.WithinDuration(t, session.ExpiresAt, after.ExpiresAt, time.Second)
	assert.True(t, after.LastActivityAt.After(session.LastActivityAt))
}
