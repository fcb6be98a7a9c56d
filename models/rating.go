package models

import "gorm.io/gorm"

// Rateable target kinds. Shared by ratings, comments and preference tracking.
const (
	TargetAttraction    = "attraction"
	TargetActivity      = "activity"
	TargetAccommodation = "accommodation"
)

func ValidTargetType(t string) bool {
	return t == TargetAttraction || t == TargetActivity || t == TargetAccommodation
}

// Rating is unique per (tourist, target): writes go through an upsert and the
// composite index makes a lost race fail instead of inserting a duplicate.
type Rating struct {
	gorm.Model
	TouristID  uint   `json:"tourist_id" gorm:"not null;uniqueIndex:idx_rating_target"`
	TargetType string `json:"target_type" gorm:"type:varchar(20);not null;uniqueIndex:idx_rating_target"`
	TargetID   uint   `json:"target_id" gorm:"not null;uniqueIndex:idx_rating_target"`
	Score      int    `json:"score" gorm:"not null"` // 1..5

	Tourist Tourist `json:"-" gorm:"foreignKey:TouristID;references:ID"`
}
