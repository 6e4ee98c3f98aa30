package scheduling

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// Reminder window geometry. Each half-width exceeds half the sweep cadence
// (30m cadence for 24h, 15m for 2h), so consecutive sweeps overlap and no
// appointment can fall between them.
const (
	Reminder24hOffset    = 24 * time.Hour
	Reminder24hHalfWidth = 15 * time.Minute
	Reminder2hOffset     = 2 * time.Hour
	Reminder2hHalfWidth  = 7 * time.Minute

	// A queued claim untouched for this long belongs to a sweep that died
	// between claiming and dispatching; the next sweep may take it over.
	reminderStaleAfter = 15 * time.Minute
)

// ReminderSweeper sends one kind of reminder. Eligibility is gated by the
// appointment's sent flag for the kind; the flag is monotonic and set only
// after a confirmed successful dispatch. Each reminder also claims a message
// row under a deterministic idempotency key before dispatching, so two
// overlapping sweep invocations cannot both send.
type ReminderSweeper struct {
	store     Store
	sender    NotificationSender
	clock     Clock
	kind      ReminderKind
	offset    time.Duration
	halfWidth time.Duration
}

func NewReminderSweeper(store Store, sender NotificationSender, clock Clock, kind ReminderKind) *ReminderSweeper {
	s := &ReminderSweeper{store: store, sender: sender, clock: clock, kind: kind}
	switch kind {
	case Reminder2h:
		s.offset, s.halfWidth = Reminder2hOffset, Reminder2hHalfWidth
	default:
		s.offset, s.halfWidth = Reminder24hOffset, Reminder24hHalfWidth
	}
	return s
}

// Run executes one sweep. Dispatch failures leave the flag unset so the
// appointment stays eligible on the next sweep within the window; failures
// are isolated per appointment.
func (s *ReminderSweeper) Run(ctx context.Context) error {
	now := s.clock.Now()
	windowStart := now.Add(s.offset - s.halfWidth)
	windowEnd := now.Add(s.offset + s.halfWidth)

	appointments, err := s.store.FindNeedingReminder(ctx, s.kind, windowStart, windowEnd)
	if err != nil {
		return err
	}
	for i := range appointments {
		if err := s.remind(ctx, appointments[i].ID); err != nil {
			log.Printf("%s reminder sweep: appointment %d: %v", s.kind, appointments[i].ID, err)
		}
	}
	return nil
}

func (s *ReminderSweeper) remind(ctx context.Context, appointmentID uint) error {
	message, err := s.claim(ctx, appointmentID)
	if err != nil || message == nil {
		return err
	}

	// Dispatch outside any transaction; no row lock is held across the
	// network call.
	providerID, sendErr := s.sender.Send(ctx, message.Recipient, message.Subject, message.Body)
	message.Attempts++
	if sendErr != nil {
		message.Status = models.MessageFailed
		message.LastError = sendErr.Error()
		if err := s.store.SaveMessage(ctx, message); err != nil {
			return err
		}
		return sendErr
	}

	now := s.clock.Now()
	message.Status = models.MessageSent
	message.ProviderID = providerID
	message.LastError = ""
	message.SentAt = &now

	return s.store.Transact(ctx, func(tx Store) error {
		appointment, err := tx.FindAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		s.setFlag(appointment)
		if err := tx.SaveAppointment(ctx, appointment); err != nil {
			return err
		}
		return tx.SaveMessage(ctx, message)
	})
}

// claim checks eligibility under lock and takes ownership of the reminder's
// message row. A nil message with nil error means another invocation owns
// the reminder, or it is no longer due.
func (s *ReminderSweeper) claim(ctx context.Context, appointmentID uint) (*models.OutboundMessage, error) {
	var claimed *models.OutboundMessage
	err := s.store.Transact(ctx, func(tx Store) error {
		appointment, err := tx.FindAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if appointment.Status != models.StatusConfirmed || s.flagSet(appointment) {
			return nil
		}
		client, err := tx.GetClient(ctx, appointment.ClientID)
		if err != nil {
			return err
		}
		salon, err := tx.FindSalon(ctx, appointment.SalonID)
		if err != nil {
			return err
		}

		key := fmt.Sprintf("appt-%d-reminder-%s", appointmentID, s.kind)
		existing, err := tx.FindMessageByKey(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			// A fresh queued row belongs to a concurrent invocation
			// mid-dispatch; a failed one, or a queued one sitting past the
			// stale cutoff (crash between claim and dispatch), may be taken
			// over for another attempt.
			stale := existing.Status == models.MessageQueued &&
				s.clock.Now().Sub(existing.UpdatedAt) >= reminderStaleAfter
			if existing.Status != models.MessageFailed && !stale {
				return nil
			}
			existing.Status = models.MessageQueued
			if err := tx.SaveMessage(ctx, existing); err != nil {
				return err
			}
			claimed = existing
			return nil
		}

		message := &models.OutboundMessage{
			SalonID:        appointment.SalonID,
			AppointmentID:  &appointment.ID,
			Kind:           s.messageKind(),
			Recipient:      client.Email,
			Subject:        "Appointment reminder",
			Body: fmt.Sprintf("Hi %s, this is a reminder of your appointment on %s.",
				client.Name, appointment.StartTime.In(salon.Location()).Format("Mon 02 Jan 15:04")),
			IdempotencyKey: key,
		}
		if err := tx.SaveMessage(ctx, message); err != nil {
			return err
		}
		claimed = message
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (s *ReminderSweeper) flagSet(a *models.Appointment) bool {
	if s.kind == Reminder2h {
		return a.Reminder2hSent
	}
	return a.Reminder24hSent
}

func (s *ReminderSweeper) setFlag(a *models.Appointment) {
	if s.kind == Reminder2h {
		a.Reminder2hSent = true
		return
	}
	a.Reminder24hSent = true
}

func (s *ReminderSweeper) messageKind() models.MessageKind {
	if s.kind == Reminder2h {
		return models.MessageReminder2h
	}
	return models.MessageReminder24h
}
