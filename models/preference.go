package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Caps applied when preference arrays are written. History grows on every
// tracked action, so it is trimmed to the most recent entries.
const (
	MaxInterests        = 50
	MaxActionHistory    = 100
	MaxViewedCategories = 50
)

type UserPreference struct {
	gorm.Model
	TouristID        uint           `json:"tourist_id" gorm:"uniqueIndex;not null"`
	Interests        datatypes.JSON `json:"interests" gorm:"type:jsonb"`
	ActionHistory    datatypes.JSON `json:"action_history" gorm:"type:jsonb"`
	ViewedCategories datatypes.JSON `json:"viewed_categories" gorm:"type:jsonb"`

	Tourist Tourist `json:"-" gorm:"foreignKey:TouristID;references:ID"`
}

// TrackedAction is one entry of UserPreference.ActionHistory.
type TrackedAction struct {
	Action     string `json:"action"` // view | rate | comment | search
	TargetType string `json:"target_type"`
	TargetID   uint   `json:"target_id"`
	At         string `json:"at"` // RFC3339
}
