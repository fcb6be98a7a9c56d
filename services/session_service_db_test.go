package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"sayohat/database"
	"sayohat/models"
	"sayohat/utils"

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

func TestCreateTouristSessionExpiresPriorOnes(t *testing.T) {
	db := openTestDB(t)

	email := fmt.Sprintf("session-%d@test.local", time.Now().UnixNano())
	tourist := models.Tourist{FullName: "Session Test Tourist", Email: &email}
	if err := db.Create(&tourist).Error; err != nil {
		t.Fatalf("seed tourist: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("tourist_id = ?", tourist.ID).Delete(&models.TouristSession{})
		db.Unscoped().Delete(&tourist)
	})

	svc := NewSessionService(db)

	first, err := svc.CreateTouristSession(tourist.ID, "10.0.0.1", "test-agent")
	assert.NoError(t, err)
	second, err := svc.CreateTouristSession(tourist.ID, "10.0.0.2", "test-agent")
	assert.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// a new login kills every earlier live session of the same tourist
	var live int64
	err = db.Model(&models.TouristSession{}).
		Where("tourist_id = ? AND expires_at > ?", tourist.ID, time.Now()).
		Count(&live).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), live)

	var stale models.TouristSession
	assert.NoError(t, db.First(&stale, "token = ?", first.Token).Error)
	assert.False(t, stale.ExpiresAt.After(time.Now()))
}

func TestLogoutTouristExpiresSession(t *testing.T) {
	db := openTestDB(t)

	email := fmt.Sprintf("logout-%d@test.local", time.Now().UnixNano())
	tourist := models.Tourist{FullName: "Logout Test Tourist", Email: &email}
	if err := db.Create(&tourist).Error; err != nil {
		t.Fatalf("seed tourist: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("tourist_id = ?", tourist.ID).Delete(&models.TouristSession{})
		db.Unscoped().Delete(&tourist)
	})

	svc := NewSessionService(db)
	session, err := svc.CreateTouristSession(tourist.ID, "10.0.0.1", "test-agent")
	assert.NoError(t, err)

	assert.NoError(t, svc.LogoutTourist(session.Token))

	var after models.TouristSession
	assert.NoError(t, db.First(&after, "token = ?", session.Token).Error)
	assert.False(t, after.ExpiresAt.After(time.Now()))
}
