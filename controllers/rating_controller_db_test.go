package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"sayohat/database"
	"sayohat/models"
	"sayohat/utils"

	"github.com/gin-gonic/gin"
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

func seedRatingFixtures(t *testing.T, db *gorm.DB) (models.Tourist, models.Attraction) {
	t.Helper()

	email := fmt.Sprintf("rater-%d@test.local", time.Now().UnixNano())
	tourist := models.Tourist{FullName: "Rating Test Tourist", Email: &email}
	if err := db.Create(&tourist).Error; err != nil {
		t.Fatalf("seed tourist: %v", err)
	}
	attraction := models.Attraction{
		Name:     fmt.Sprintf("Rating Test Attraction %d", time.Now().UnixNano()),
		Category: "history",
		Region:   "Samarkand",
	}
	if err := db.Create(&attraction).Error; err != nil {
		t.Fatalf("seed attraction: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("tourist_id = ?", tourist.ID).Delete(&models.Rating{})
		db.Unscoped().Delete(&attraction)
		db.Unscoped().Delete(&tourist)
	})
	return tourist, attraction
}

// ratingRouter mounts the handlers behind a stub that plants the caller id the
// way the session middleware does.
func ratingRouter(touristID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rc := NewRatingController(models.TargetAttraction)
	r := gin.New()
	auth := func(c *gin.Context) { c.Set("tourist_id", int(touristID)) }
	r.GET("/attractions/:id/rating", auth, rc.GetRating)
	r.POST("/attractions/:id/rating", auth, rc.AddRating)
	return r
}

func postRating(r *gin.Engine, attractionID uint, score int) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	body := fmt.Sprintf(`{"score": %d}`, score)
	req := httptest.NewRequest("POST", fmt.Sprintf("/attractions/%d/rating", attractionID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddRatingUpsertsSingleRow(t *testing.T) {
	db := openTestDB(t)
	tourist, attraction := seedRatingFixtures(t, db)
	r := ratingRouter(tourist.ID)

	w := postRating(r, attraction.ID, 4)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"own_score":4`)

	// second submit for the same target must update, not duplicate
	w = postRating(r, attraction.ID, 2)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"own_score":2`)

	var ratings []models.Rating
	err := db.Where("tourist_id = ? AND target_type = ? AND target_id = ?",
		tourist.ID, models.TargetAttraction, attraction.ID).Find(&ratings).Error
	assert.NoError(t, err)
	if assert.Len(t, ratings, 1) {
		assert.Equal(t, 2, ratings[0].Score)
	}

	// the read side reports the updated score and a count of one
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", fmt.Sprintf("/attractions/%d/rating", attraction.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"own_score":2`)
	assert.Contains(t, w.Body.String(), `"ratings_count":1`)
}

func TestAddRatingUnknownTargetIs404(t *testing.T) {
	db := openTestDB(t)
	tourist, _ := seedRatingFixtures(t, db)
	r := ratingRouter(tourist.ID)

	w := postRating(r, 999999999, 5)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Rating{}).Where("tourist_id = ?", tourist.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddRatingScoreOutOfRangeIs422(t *testing.T) {
	db := openTestDB(t)
	tourist, attraction := seedRatingFixtures(t, db)
	r := ratingRouter(tourist.ID)

	w := postRating(r, attraction.ID, 6)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
