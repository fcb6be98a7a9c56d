package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Activity struct {
	gorm.Model
	Name            string         `json:"name" gorm:"type:varchar(255);not null;index"`
	Description     string         `json:"description" gorm:"type:text"`
	Category        string         `json:"category" gorm:"type:varchar(50);index"`
	Latitude        float64        `json:"latitude"`
	Longitude       float64        `json:"longitude"`
	Price           float64        `json:"price"`
	Capacity        int            `json:"capacity"`
	IsRecurring     bool           `json:"is_recurring" gorm:"default:false"`
	RequiresBooking bool           `json:"requires_booking" gorm:"default:false"`
	Season          string         `json:"season" gorm:"type:varchar(50)"`
	Tags            datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	ImageURL        string         `json:"image_url"`
	Views           int64          `json:"views" gorm:"default:0"`
	IsActive        bool           `json:"is_active" gorm:"default:true;index"`
}
