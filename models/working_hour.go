package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// WorkSchedule describes one weekday of a professional's working hours, with
// an optional break carved out. At most one row per (professional, weekday).
// Times are "HH:MM" in the salon's timezone.
type WorkSchedule struct {
	gorm.Model
	SalonID        uint         `json:"salon_id" gorm:"index;not null"`
	ProfessionalID uint         `json:"professional_id" gorm:"not null;uniqueIndex:idx_prof_weekday,priority:1"`
	Weekday        time.Weekday `json:"weekday" gorm:"not null;uniqueIndex:idx_prof_weekday,priority:2"`
	Active         bool         `json:"active" gorm:"default:true"`
	StartTime      string       `json:"start_time"` // "HH:MM", 24h
	EndTime        string       `json:"end_time"`
	BreakStart     *string      `json:"break_start"`
	BreakEnd       *string      `json:"break_end"`
}

// MinuteOfDay parses an "HH:MM" schedule time into minutes since midnight.
func MinuteOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
