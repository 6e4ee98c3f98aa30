package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Conflict is one existing booking or block that collides with a proposed
// interval.
type Conflict struct {
	Appointment *models.Appointment
	Block       *models.TimeBlock
}

// ConflictDetector decides whether a proposed interval collides with a
// professional's existing appointments and time blocks, and separately
// whether it fits the professional's work schedule.
type ConflictDetector struct {
	store ScheduleStore
}

func NewConflictDetector(store ScheduleStore) *ConflictDetector {
	return &ConflictDetector{store: store}
}

// FindConflicts returns every occupying appointment and block occurrence of
// the professional overlapping [start, end). An empty result means the slot
// is free.
func (d *ConflictDetector) FindConflicts(ctx context.Context, professionalID uint, start, end time.Time) ([]Conflict, error) {
	appointments, err := d.store.FindConflicts(ctx, professionalID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying appointment conflicts: %w", err)
	}
	conflicts := make([]Conflict, 0, len(appointments))
	for i := range appointments {
		conflicts = append(conflicts, Conflict{Appointment: &appointments[i]})
	}

	blocks, err := d.store.FindBlocks(ctx, professionalID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying time blocks: %w", err)
	}
	for i := range blocks {
		for _, occ := range blocks[i].Occurrences(start) {
			if Overlaps(start, end, occ[0], occ[1]) {
				conflicts = append(conflicts, Conflict{Block: &blocks[i]})
				break
			}
		}
	}
	return conflicts, nil
}

// CheckWorkingHours verifies that [start, end) lies entirely within the
// professional's active schedule for that weekday and does not touch the
// break. Times are compared as minutes of day in loc, the salon's timezone.
// An interval ending exactly at closing, or exactly when the break starts,
// is allowed.
func (d *ConflictDetector) CheckWorkingHours(ctx context.Context, professionalID uint, start, end time.Time, loc *time.Location) error {
	localStart := start.In(loc)
	localEnd := end.In(loc)

	schedule, err := d.store.FindWorkSchedule(ctx, professionalID, localStart.Weekday())
	if err != nil {
		return fmt.Errorf("querying work schedule: %w", err)
	}
	if schedule == nil || !schedule.Active {
		return ErrOutsideWorkingHours
	}

	workStart, err := models.MinuteOfDay(schedule.StartTime)
	if err != nil {
		return err
	}
	workEnd, err := models.MinuteOfDay(schedule.EndTime)
	if err != nil {
		return err
	}

	if !localEnd.After(localStart) {
		return ErrOutsideWorkingHours
	}
	startMin := localStart.Hour()*60 + localStart.Minute()
	endMin := startMin + int(localEnd.Sub(localStart)/time.Minute)
	// An appointment spilling past midnight never fits one day's hours; the
	// comparison against workEnd below rejects it since endMin exceeds 24*60.
	if startMin < workStart || endMin > workEnd {
		return ErrOutsideWorkingHours
	}

	if schedule.BreakStart != nil && schedule.BreakEnd != nil {
		breakStart, err := models.MinuteOfDay(*schedule.BreakStart)
		if err != nil {
			return err
		}
		breakEnd, err := models.MinuteOfDay(*schedule.BreakEnd)
		if err != nil {
			return err
		}
		if startMin < breakEnd && breakStart < endMin {
			return ErrOutsideWorkingHours
		}
	}
	return nil
}
