package models

import "gorm.io/gorm"

type Admin struct {
	gorm.Model
	FullName string `json:"full_name"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:manager"` // "superadmin" | "manager"
}
