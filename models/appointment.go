package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCanceled   AppointmentStatus = "canceled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// ErrInvalidTransition is returned for any lifecycle move the state machine
// does not allow, including every move out of a terminal state.
var ErrInvalidTransition = errors.New("invalid appointment transition")

// transitions lists the allowed lifecycle moves. Terminal states (completed,
// canceled, no_show) have no entry.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusInProgress, StatusCanceled, StatusNoShow},
	StatusInProgress: {
		StatusCompleted,
	},
}

// Appointment belongs to one salon, one client and one professional. EndTime
// is derived from the line items at booking time and persisted so conflict
// queries are plain interval comparisons.
type Appointment struct {
	gorm.Model
	SalonID        uint         `json:"salon_id" gorm:"index;not null"`
	ClientID       uint         `json:"client_id" gorm:"index;not null"`
	Client         Client       `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProfessionalID uint         `json:"professional_id" gorm:"index;not null"`
	Professional   Professional `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`

	StartTime time.Time         `json:"start_time" gorm:"index;not null"`
	EndTime   time.Time         `json:"end_time" gorm:"not null"`
	Status    AppointmentStatus `json:"status" gorm:"index;default:'pending'"`

	CancelReason   string   `json:"cancel_reason,omitempty"`
	OverrideAmount *float64 `json:"override_amount,omitempty" gorm:"type:decimal(10,2)"`

	Reminder24hSent bool `json:"reminder_24h_sent" gorm:"default:false"`
	Reminder2hSent  bool `json:"reminder_2h_sent" gorm:"default:false"`

	Items []ServiceLineItem `json:"items" gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE"`
}

// ServiceLineItem is one ordered service within an appointment. Sequence
// values for one appointment form a contiguous 1..N range. Line items are
// immutable after creation; a reschedule replaces the whole set.
type ServiceLineItem struct {
	gorm.Model
	AppointmentID uint    `json:"appointment_id" gorm:"index;not null;uniqueIndex:idx_appt_seq,priority:1"`
	ServiceID     uint    `json:"service_id" gorm:"not null"`
	Service       Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Sequence      int     `json:"sequence" gorm:"not null;uniqueIndex:idx_appt_seq,priority:2"`
	DurationMin   int     `json:"duration_min" gorm:"not null"`
	PrepGapMin    int     `json:"prep_gap_min" gorm:"default:0"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if !a.EndTime.After(a.StartTime) {
		return fmt.Errorf("appointment end %s must be after start %s", a.EndTime, a.StartTime)
	}
	return nil
}

// Terminal reports whether the appointment can no longer change status.
func (a *Appointment) Terminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// Occupying reports whether the appointment still holds its time slot for
// conflict purposes. Canceled and no-show slots are free to rebook.
func (a *Appointment) Occupying() bool {
	return a.Status != StatusCanceled && a.Status != StatusNoShow
}

// CanTransition validates a lifecycle move without applying it.
func (a *Appointment) CanTransition(next AppointmentStatus) error {
	for _, allowed := range transitions[a.Status] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
}

// Transition applies a validated lifecycle move in memory. Persistence and
// side effects belong to the scheduling engine.
func (a *Appointment) Transition(next AppointmentStatus) error {
	if err := a.CanTransition(next); err != nil {
		return err
	}
	a.Status = next
	return nil
}
