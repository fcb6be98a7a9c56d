package models

import (
	"time"

	"gorm.io/gorm"
)

type Arrival struct {
	gorm.Model
	TouristID     uint       `json:"tourist_id" gorm:"not null;index"`
	ArrivalDate   time.Time  `json:"arrival_date" gorm:"index"`
	DepartureDate *time.Time `json:"departure_date"`
	EntryPoint    string     `json:"entry_point" gorm:"type:varchar(100);index"`
	Purpose       string     `json:"purpose" gorm:"type:varchar(50)"` // leisure | business | transit | other
	GroupSize     int        `json:"group_size" gorm:"default:1"`

	Tourist Tourist `json:"-" gorm:"foreignKey:TouristID;references:ID"`
}
