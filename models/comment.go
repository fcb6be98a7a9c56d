package models

import "gorm.io/gorm"

// Comment attaches to exactly one catalog row through a typed foreign key per
// kind (a CHECK constraint in the migration enforces the one-of). The five
// structured fields are required on write; Body keeps their fixed-order
// free-text rendering for display.
type Comment struct {
	gorm.Model
	TouristID       uint  `json:"tourist_id" gorm:"not null;index"`
	AttractionID    *uint `json:"attraction_id" gorm:"index"`
	ActivityID      *uint `json:"activity_id" gorm:"index"`
	AccommodationID *uint `json:"accommodation_id" gorm:"index"`

	Transportation string `json:"transportation" gorm:"type:text"`
	Fee            string `json:"fee" gorm:"type:text"`
	Services       string `json:"services" gorm:"type:text"`
	RoadProblems   string `json:"road_problems" gorm:"type:text"`
	PriceChange    string `json:"price_change" gorm:"type:text"`
	Other          string `json:"other" gorm:"type:text"`

	Body string `json:"body" gorm:"type:text"`

	Tourist Tourist `json:"-" gorm:"foreignKey:TouristID;references:ID"`
}

// TargetType reports which typed foreign key is set.
func (c *Comment) TargetType() string {
	switch {
	case c.AttractionID != nil:
		return TargetAttraction
	case c.ActivityID != nil:
		return TargetActivity
	case c.AccommodationID != nil:
		return TargetAccommodation
	}
	return ""
}
