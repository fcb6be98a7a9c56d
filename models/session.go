package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminSession is keyed by its uuid: the session id itself is the credential.
// Admin sessions are short-lived and slide forward on every authorized request.
type AdminSession struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID        uint      `json:"admin_id" gorm:"not null;index"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"index"`
	LastActivityAt time.Time `json:"last_activity_at"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	CreatedAt      time.Time `json:"created_at"`

	Admin Admin `json:"-" gorm:"foreignKey:AdminID;references:ID"`
}

// TouristSession stores the credential in a token column instead of the
// primary key. The two session tables intentionally differ: the mobile and
// the admin clients grew their auth independently and both lookups are kept.
type TouristSession struct {
	gorm.Model
	Token          string    `json:"token" gorm:"uniqueIndex;not null"`
	TouristID      uint      `json:"tourist_id" gorm:"not null;index"`
	ExpiresAt      time.Time `json:"expires_at" gorm:"index"`
	LastActivityAt time.Time `json:"last_activity_at"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`

	Tourist Tourist `json:"-" gorm:"foreignKey:TouristID;references:ID"`
}
