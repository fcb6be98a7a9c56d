package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tourist struct {
	gorm.Model
	FullName    string         `json:"full_name"`
	Email       *string        `json:"email" gorm:"uniqueIndex"`
	Phone       *string        `json:"phone" gorm:"uniqueIndex"`
	Password    string         `json:"-"`
	Nationality string         `json:"nationality"`
	Language    string         `json:"language" gorm:"default:en"`
	Hobbies     datatypes.JSON `json:"hobbies" gorm:"type:jsonb"` // category keywords, e.g. ["diving","history"]
	GoogleID    *string        `json:"-"`
}
