package database

import (
	"log"
	"os"

	"sayohat/models"
	"sayohat/utils"

	"gorm.io/gorm"
)

// SeedAdmin creates the initial superadmin when the admins table is empty.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.Admin{
		FullName: "Administrator",
		Email:    email,
		Password: hash,
		Role:     "superadmin",
	}
	return db.Create(&admin).Error
}
