package database

import (
	"sayohat/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Tourist{},
		&models.AdminSession{},
		&models.TouristSession{},
		&models.Attraction{},
		&models.Activity{},
		&models.Accommodation{},
		&models.Arrival{},
		&models.Rating{},
		&models.Comment{},
		&models.UserPreference{},
	); err != nil {
		return err
	}

	// A comment must point at exactly one catalog row. AutoMigrate cannot
	// express the one-of, so the CHECK is added by hand.
	if err := db.Exec(`
		DO $$ BEGIN
			ALTER TABLE comments ADD CONSTRAINT chk_comment_single_target CHECK (
				(attraction_id IS NOT NULL)::int +
				(activity_id IS NOT NULL)::int +
				(accommodation_id IS NOT NULL)::int = 1
			);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		DO $$ BEGIN
			ALTER TABLE ratings ADD CONSTRAINT chk_rating_score CHECK (score BETWEEN 1 AND 5);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$
	`).Error; err != nil {
		return err
	}

	return nil
}
