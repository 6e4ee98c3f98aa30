package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// Lifecycle drives appointments through their state machine and applies the
// side effects transitions carry.
type Lifecycle struct {
	store Store
	clock Clock
}

func NewLifecycle(store Store, clock Clock) *Lifecycle {
	return &Lifecycle{store: store, clock: clock}
}

func (l *Lifecycle) Confirm(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return l.transition(ctx, appointmentID, models.StatusConfirmed, func(Store, *models.Appointment) error { return nil })
}

func (l *Lifecycle) Start(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return l.transition(ctx, appointmentID, models.StatusInProgress, func(Store, *models.Appointment) error { return nil })
}

func (l *Lifecycle) Complete(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return l.transition(ctx, appointmentID, models.StatusCompleted, func(Store, *models.Appointment) error { return nil })
}

// Cancel moves the appointment to CANCELED with the given reason. When the
// cancellation comes from the client, the salon's minimum notice period is
// enforced.
func (l *Lifecycle) Cancel(ctx context.Context, appointmentID uint, reason string, byClient bool) (*models.Appointment, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation requires a reason", models.ErrInvalidTransition)
	}
	return l.transition(ctx, appointmentID, models.StatusCanceled, func(tx Store, a *models.Appointment) error {
		if byClient {
			salon, err := tx.FindSalon(ctx, a.SalonID)
			if err != nil {
				return err
			}
			notice := time.Duration(salon.MinCancelNoticeHours) * time.Hour
			if l.clock.Now().Add(notice).After(a.StartTime) {
				return ErrTooShortNotice
			}
		}
		a.CancelReason = reason
		return nil
	})
}

func (l *Lifecycle) transition(ctx context.Context, appointmentID uint, next models.AppointmentStatus, prepare func(Store, *models.Appointment) error) (*models.Appointment, error) {
	var result *models.Appointment
	err := l.store.Transact(ctx, func(tx Store) error {
		appointment, err := tx.FindAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if err := appointment.CanTransition(next); err != nil {
			return err
		}
		if err := prepare(tx, appointment); err != nil {
			return err
		}
		appointment.Status = next
		if err := tx.SaveAppointment(ctx, appointment); err != nil {
			return err
		}
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
