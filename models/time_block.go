package models

import (
	"time"

	"gorm.io/gorm"
)

const week = 7 * 24 * time.Hour

// TimeBlock is an explicit unavailability window for a professional (day off,
// vacation). Weekly blocks repeat on the same weekday and time every week.
type TimeBlock struct {
	gorm.Model
	SalonID        uint      `json:"salon_id" gorm:"index;not null"`
	ProfessionalID uint      `json:"professional_id" gorm:"index;not null"`
	StartTime      time.Time `json:"start_time" gorm:"not null"`
	EndTime        time.Time `json:"end_time" gorm:"not null"`
	Weekly         bool      `json:"weekly" gorm:"default:false"`
	Reason         string    `json:"reason"`
}

// Occurrences returns the block intervals that could touch the interval
// starting at ref. A one-off block yields its stored interval; a weekly block
// yields the occurrences in the surrounding weeks, shifted by whole weeks
// from the stored start.
func (b *TimeBlock) Occurrences(ref time.Time) [][2]time.Time {
	if !b.Weekly {
		return [][2]time.Time{{b.StartTime, b.EndTime}}
	}
	span := b.EndTime.Sub(b.StartTime)
	n := ref.Sub(b.StartTime) / week
	occs := make([][2]time.Time, 0, 3)
	for _, k := range []time.Duration{n - 1, n, n + 1} {
		start := b.StartTime.Add(k * week)
		occs = append(occs, [2]time.Time{start, start.Add(span)})
	}
	return occs
}
