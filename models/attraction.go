package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Attraction struct {
	gorm.Model
	Name         string         `json:"name" gorm:"type:varchar(255);not null;index"`
	Description  string         `json:"description" gorm:"type:text"`
	Category     string         `json:"category" gorm:"type:varchar(50);index"`
	Region       string         `json:"region" gorm:"type:varchar(100);index"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	EntryFee     float64        `json:"entry_fee"`
	OpeningHours string         `json:"opening_hours"`
	Tags         datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	ImageURL     string         `json:"image_url"`
	Views        int64          `json:"views" gorm:"default:0"`
	IsActive     bool           `json:"is_active" gorm:"default:true;index"`
}
