package models

import (
	"gorm.io/gorm"
)

// Service is a catalog entry. DurationMin is the default span used when a
// booking request does not override it per line item.
type Service struct {
	gorm.Model
	SalonID     uint    `json:"salon_id" gorm:"index;not null"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" gorm:"not null"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2)"`
	Active      bool    `json:"active" gorm:"default:true"`
}
