package scheduling

import (
	"context"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// FreeSlots returns the start times on the given day at which a booking of
// length duration would fit the professional's work schedule without
// overlapping existing appointments, blocks or the break. Slots step by the
// salon's granularity and past slots are skipped.
func FreeSlots(ctx context.Context, store ScheduleStore, clock Clock, salon *models.Salon, professionalID uint, day time.Time, duration time.Duration) ([]time.Time, error) {
	loc := salon.Location()
	day = day.In(loc)

	schedule, err := store.FindWorkSchedule(ctx, professionalID, day.Weekday())
	if err != nil {
		return nil, err
	}
	if schedule == nil || !schedule.Active {
		return nil, nil
	}
	workStart, err := models.MinuteOfDay(schedule.StartTime)
	if err != nil {
		return nil, err
	}
	workEnd, err := models.MinuteOfDay(schedule.EndTime)
	if err != nil {
		return nil, err
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	windowStart := midnight.Add(time.Duration(workStart) * time.Minute)
	windowEnd := midnight.Add(time.Duration(workEnd) * time.Minute)

	busy := make([][2]time.Time, 0)
	appointments, err := store.FindConflicts(ctx, professionalID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		busy = append(busy, [2]time.Time{a.StartTime, a.EndTime})
	}
	blocks, err := store.FindBlocks(ctx, professionalID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		busy = append(busy, b.Occurrences(windowStart)...)
	}
	if schedule.BreakStart != nil && schedule.BreakEnd != nil {
		breakStart, err := models.MinuteOfDay(*schedule.BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnd, err := models.MinuteOfDay(*schedule.BreakEnd)
		if err != nil {
			return nil, err
		}
		busy = append(busy, [2]time.Time{
			midnight.Add(time.Duration(breakStart) * time.Minute),
			midnight.Add(time.Duration(breakEnd) * time.Minute),
		})
	}

	step := time.Duration(salon.SlotGranularityMin) * time.Minute
	if step <= 0 {
		step = 15 * time.Minute
	}
	now := clock.Now()

	var slots []time.Time
	for t := windowStart; !t.Add(duration).After(windowEnd); t = t.Add(step) {
		if t.Before(now) {
			continue
		}
		if !overlapsAny(t, t.Add(duration), busy) {
			slots = append(slots, t)
		}
	}
	return slots, nil
}

func overlapsAny(start, end time.Time, busy [][2]time.Time) bool {
	for _, b := range busy {
		if Overlaps(start, end, b[0], b[1]) {
			return true
		}
	}
	return false
}
