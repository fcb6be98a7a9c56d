package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Accommodation struct {
	gorm.Model
	Name          string         `json:"name" gorm:"type:varchar(255);not null;index"`
	Description   string         `json:"description" gorm:"type:text"`
	Type          string         `json:"type" gorm:"type:varchar(50);index"` // hotel | guesthouse | hostel | apartment
	Region        string         `json:"region" gorm:"type:varchar(100);index"`
	Address       string         `json:"address"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	PricePerNight float64        `json:"price_per_night"`
	Rooms         int            `json:"rooms"`
	Amenities     datatypes.JSON `json:"amenities" gorm:"type:jsonb"`
	ImageURL      string         `json:"image_url"`
	Views         int64          `json:"views" gorm:"default:0"`
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`
}
