package models

import (
	"time"

	"gorm.io/gorm"
)

// Salon holds the per-salon scheduling configuration. Every other row in the
// system is scoped to exactly one salon via SalonID.
type Salon struct {
	gorm.Model
	Name     string `json:"name"`
	Address  string `json:"address"`
	Timezone string `json:"timezone" gorm:"default:'UTC'"`

	// Scheduling configuration, loaded with the salon.
	SlotGranularityMin     int  `json:"slot_granularity_min" gorm:"default:15"`
	MinAdvanceBookingHours int  `json:"min_advance_booking_hours" gorm:"default:1"`
	MinCancelNoticeHours   int  `json:"min_cancel_notice_hours" gorm:"default:4"`
	MaxNoShows             int  `json:"max_no_shows" gorm:"default:3"`
	AutoConfirm            bool `json:"auto_confirm"`
}

// Location resolves the salon's timezone, falling back to UTC.
func (s *Salon) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
