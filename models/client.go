package models

import (
	"gorm.io/gorm"
)

// Client is a salon customer. NoShowCount and Blocked are mutated only by the
// appointment lifecycle engine, never by handlers.
type Client struct {
	gorm.Model
	SalonID     uint   `json:"salon_id" gorm:"not null;uniqueIndex:idx_salon_phone,priority:1"`
	Name        string `json:"name" gorm:"not null"`
	Phone       string `json:"phone" gorm:"uniqueIndex:idx_salon_phone,priority:2"`
	Email       string `json:"email"`
	NoShowCount int    `json:"no_show_count" gorm:"default:0"`
	Blocked     bool   `json:"blocked" gorm:"default:false"`
}
